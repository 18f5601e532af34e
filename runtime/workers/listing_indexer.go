package workers

import (
	"context"
	"log/slog"

	"imobiliare/repositories"
	"imobiliare/services"
)

// ListingIndexerWorker drains the index queue and applies each command
// to the search index. Indexing runs off the request path on purpose: a
// slow or briefly failing index delays searchability, never the write.
type ListingIndexerWorker struct {
	log      *slog.Logger
	listings repositories.IListingRepository
	queue    <-chan services.IndexCommand
}

func NewListingIndexerWorker(log *slog.Logger, listings repositories.IListingRepository, queue <-chan services.IndexCommand) *ListingIndexerWorker {
	return &ListingIndexerWorker{log: log, listings: listings, queue: queue}
}

func (w *ListingIndexerWorker) Run(ctx context.Context) error {
	w.log.Info("Starting listing indexer worker")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-w.queue:
			w.apply(cmd)
		}
	}
}

func (w *ListingIndexerWorker) apply(cmd services.IndexCommand) {
	var err error
	if cmd.Remove {
		err = w.listings.Deindex(cmd.Listing.ID)
	} else {
		err = w.listings.Index(cmd.Listing)
	}
	if err != nil {
		w.log.Error("Failed to apply index command",
			"listing_id", cmd.Listing.ID,
			"remove", cmd.Remove,
			"error", err)
		return
	}
	w.log.Debug("Applied index command", "listing_id", cmd.Listing.ID, "remove", cmd.Remove)
}
