package realtime

import (
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// chanSink collects deliveries for assertions; failing toggles a sink
// that refuses every payload.
type chanSink struct {
	mu       sync.Mutex
	payloads [][]byte
	failing  bool
}

func (s *chanSink) Send(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("sink closed")
	}
	s.payloads = append(s.payloads, payload)
	return nil
}

func (s *chanSink) received() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.payloads...)
}

func Test_Publish_Reaches_Only_Room_Members(t *testing.T) {
	req := require.New(t)
	broker := NewBroker(slog.Default())
	room := uuid.New()

	member := &chanSink{}
	outsider := &chanSink{}
	broker.Attach("member", member)
	broker.Attach("outsider", outsider)
	broker.Subscribe("member", room)

	delivered := broker.Publish(room, []byte("hello"))
	req.Equal(1, delivered)
	req.Len(member.received(), 1)
	req.Empty(outsider.received())
}

func Test_Publish_Fans_Out_To_Every_Device(t *testing.T) {
	req := require.New(t)
	broker := NewBroker(slog.Default())
	room := uuid.New()

	// Same user on two devices: two connections, two deliveries.
	phone := &chanSink{}
	laptop := &chanSink{}
	broker.Attach("user-phone", phone)
	broker.Attach("user-laptop", laptop)
	broker.Subscribe("user-phone", room)
	broker.Subscribe("user-laptop", room)

	delivered := broker.Publish(room, []byte("ping"))
	req.Equal(2, delivered)
	req.Len(phone.received(), 1)
	req.Len(laptop.received(), 1)
}

func Test_Subscribe_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	broker := NewBroker(slog.Default())
	room := uuid.New()

	sink := &chanSink{}
	broker.Attach("conn", sink)
	broker.Subscribe("conn", room)
	broker.Subscribe("conn", room)

	delivered := broker.Publish(room, []byte("once"))
	req.Equal(1, delivered)
	req.Len(sink.received(), 1)
}

func Test_Subscribe_Unknown_Connection_Is_Noop(t *testing.T) {
	req := require.New(t)
	broker := NewBroker(slog.Default())
	room := uuid.New()

	broker.Subscribe("ghost", room)

	req.Equal(0, broker.Publish(room, []byte("anyone?")))
}

func Test_Unsubscribe_Stops_Delivery(t *testing.T) {
	req := require.New(t)
	broker := NewBroker(slog.Default())
	room := uuid.New()

	sink := &chanSink{}
	broker.Attach("conn", sink)
	broker.Subscribe("conn", room)
	broker.Unsubscribe("conn", room)

	req.Equal(0, broker.Publish(room, []byte("gone")))
	req.Empty(sink.received())
}

func Test_UnsubscribeAll_Clears_Every_Room(t *testing.T) {
	req := require.New(t)
	broker := NewBroker(slog.Default())
	roomA := uuid.New()
	roomB := uuid.New()

	sink := &chanSink{}
	broker.Attach("conn", sink)
	broker.Subscribe("conn", roomA)
	broker.Subscribe("conn", roomB)

	broker.UnsubscribeAll("conn")

	req.Equal(0, broker.Publish(roomA, []byte("a")))
	req.Equal(0, broker.Publish(roomB, []byte("b")))
}

func Test_Publish_Skips_Failing_Members(t *testing.T) {
	req := require.New(t)
	broker := NewBroker(slog.Default())
	room := uuid.New()

	healthy := &chanSink{}
	broken := &chanSink{failing: true}
	broker.Attach("healthy", healthy)
	broker.Attach("broken", broken)
	broker.Subscribe("healthy", room)
	broker.Subscribe("broken", room)

	delivered := broker.Publish(room, []byte("best effort"))
	req.Equal(1, delivered)
	req.Len(healthy.received(), 1)
}

func Test_Concurrent_Publish_And_Membership_Churn(t *testing.T) {
	req := require.New(t)
	broker := NewBroker(slog.Default())
	room := uuid.New()

	stable := &chanSink{}
	broker.Attach("stable", stable)
	broker.Subscribe("stable", room)

	const publishers = 8
	const churners = 8
	var wg sync.WaitGroup

	for range churners {
		wg.Add(1)
		go func() {
			defer wg.Done()
			connID := uuid.NewString()
			sink := &chanSink{}
			for range 50 {
				broker.Attach(connID, sink)
				broker.Subscribe(connID, room)
				broker.UnsubscribeAll(connID)
				broker.Detach(connID)
			}
		}()
	}
	for range publishers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				broker.Publish(room, []byte("churn"))
			}
		}()
	}
	wg.Wait()

	// The stable member never unsubscribed and must have seen every publish.
	req.Len(stable.received(), publishers*50)
}
