//go:generate go run go.uber.org/mock/mockgen -source=listing.go -destination=../mocks/mock_listing_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"imobiliare/domain"
	"imobiliare/errors"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
)

type IListingRepository interface {
	Save(listing domain.Listing) error
	Delete(listing domain.Listing) error
	GetByID(id string) (domain.Listing, error)
	ListByOwner(ownerID string) ([]domain.Listing, error)
	Index(listing domain.Listing) error
	Deindex(id string) error
	Search(ctx context.Context, query ListingQuery) ([]domain.Listing, error)
}

// ListingRepository pairs BadgerDB (source of truth, "listing:{id}" docs plus
// a "listing:owner:{user}:{id}" index) with a Bluge index for filtered search.
// Index and Deindex are driven by the background indexer worker, never by the
// request path, so search lags writes by at most one queue drain.
type ListingRepository struct {
	db     *badger.DB
	writer *bluge.Writer
	log    *slog.Logger
}

func NewListingRepository(db *badger.DB, writer *bluge.Writer, log *slog.Logger) *ListingRepository {
	return &ListingRepository{db: db, writer: writer, log: log}
}

// ListingQuery mirrors the catalogue filters. Nil bounds are open.
type ListingQuery struct {
	Category   string
	County     string
	City       string
	PriceMin   *float64
	PriceMax   *float64
	SurfaceMin *float64
	SurfaceMax *float64
	Rooms      *int
	Limit      int
}

const defaultSearchLimit = 50

type diskListing struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    domain.Category `json:"category"`
	Price       float64         `json:"price"`
	Surface     float64         `json:"surface"`
	Rooms       int             `json:"rooms"`
	County      string          `json:"county"`
	City        string          `json:"city"`
	Images      []string        `json:"images,omitempty"`
	OwnerID     string          `json:"owner_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

func listingKey(id string) []byte {
	return []byte("listing:" + id)
}

func listingOwnerKey(ownerID, id string) []byte {
	return []byte(fmt.Sprintf("listing:owner:%s:%s", ownerID, id))
}

func (r *ListingRepository) Save(listing domain.Listing) error {
	data, err := json.Marshal(fromListing(listing))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(listingKey(listing.ID), data); err != nil {
			return err
		}
		return txn.Set(listingOwnerKey(listing.OwnerID, listing.ID), nil)
	})
}

func (r *ListingRepository) Delete(listing domain.Listing) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(listingKey(listing.ID)); err != nil {
			return err
		}
		return txn.Delete(listingOwnerKey(listing.OwnerID, listing.ID))
	})
}

func (r *ListingRepository) GetByID(id string) (domain.Listing, error) {
	var listing domain.Listing
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		listing, err = getListingTxn(txn, id)
		return err
	})
	return listing, err
}

func (r *ListingRepository) ListByOwner(ownerID string) ([]domain.Listing, error) {
	var listings []domain.Listing
	err := r.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("listing:owner:%s:", ownerID)
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := string(it.Item().Key()[len(prefixStr):])
			listing, err := getListingTxn(txn, id)
			if err != nil {
				return err
			}
			listings = append(listings, listing)
		}
		return nil
	})
	return listings, err
}

// Index makes the listing searchable. Keyword fields carry exact filters,
// numeric fields carry the range filters and the recency sort key.
func (r *ListingRepository) Index(listing domain.Listing) error {
	doc := bluge.NewDocument(listing.ID).
		AddField(bluge.NewKeywordField("category", string(listing.Category))).
		AddField(bluge.NewKeywordField("county", listing.County)).
		AddField(bluge.NewTextField("city", listing.City)).
		AddField(bluge.NewNumericField("price", listing.Price)).
		AddField(bluge.NewNumericField("surface", listing.Surface)).
		AddField(bluge.NewNumericField("rooms", float64(listing.Rooms))).
		AddField(bluge.NewNumericField("created", float64(listing.CreatedAt.UnixNano())).Sortable())
	return r.writer.Update(doc.ID(), doc)
}

func (r *ListingRepository) Deindex(id string) error {
	return r.writer.Delete(bluge.Identifier(id))
}

// Search runs the filter query against Bluge and resolves hits through
// Badger. Hits whose document vanished between indexing and resolution
// (a deleted listing not yet deindexed) are skipped.
func (r *ListingRepository) Search(ctx context.Context, query ListingQuery) ([]domain.Listing, error) {
	reader, err := r.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			r.log.Warn("Failed to close search reader", "error", err)
		}
	}()

	limit := query.Limit
	if limit <= 0 || limit > defaultSearchLimit {
		limit = defaultSearchLimit
	}
	request := bluge.NewTopNSearch(limit, buildQuery(query)).
		SortBy([]string{"-created"})

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var ids []string
	match, err := iterator.Next()
	for err == nil && match != nil {
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				ids = append(ids, string(value))
			}
			return true
		})
		if visitErr != nil {
			return nil, visitErr
		}
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, err
	}

	var listings []domain.Listing
	err = r.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			listing, err := getListingTxn(txn, id)
			if goerrors.Is(err, errors.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			listings = append(listings, listing)
		}
		return nil
	})
	return listings, err
}

func buildQuery(query ListingQuery) bluge.Query {
	boolean := bluge.NewBooleanQuery()
	matched := false

	if query.Category != "" {
		boolean.AddMust(bluge.NewTermQuery(query.Category).SetField("category"))
		matched = true
	}
	if query.County != "" {
		boolean.AddMust(bluge.NewTermQuery(query.County).SetField("county"))
		matched = true
	}
	if query.City != "" {
		boolean.AddMust(bluge.NewMatchQuery(query.City).SetField("city"))
		matched = true
	}
	if query.PriceMin != nil || query.PriceMax != nil {
		boolean.AddMust(numericRange("price", query.PriceMin, query.PriceMax))
		matched = true
	}
	if query.SurfaceMin != nil || query.SurfaceMax != nil {
		boolean.AddMust(numericRange("surface", query.SurfaceMin, query.SurfaceMax))
		matched = true
	}
	if query.Rooms != nil {
		rooms := float64(*query.Rooms)
		boolean.AddMust(bluge.NewNumericRangeInclusiveQuery(rooms, rooms, true, true).SetField("rooms"))
		matched = true
	}
	if !matched {
		return bluge.NewMatchAllQuery()
	}
	return boolean
}

func numericRange(field string, min, max *float64) bluge.Query {
	lo := math.Inf(-1)
	hi := math.Inf(1)
	if min != nil {
		lo = *min
	}
	if max != nil {
		hi = *max
	}
	return bluge.NewNumericRangeInclusiveQuery(lo, hi, true, true).SetField(field)
}

func getListingTxn(txn *badger.Txn, id string) (domain.Listing, error) {
	item, err := txn.Get(listingKey(id))
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Listing{}, errors.ErrNotFound
	}
	if err != nil {
		return domain.Listing{}, err
	}
	var dl diskListing
	if err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &dl)
	}); err != nil {
		return domain.Listing{}, err
	}
	return toListing(dl), nil
}

func fromListing(l domain.Listing) diskListing {
	return diskListing{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Category:    l.Category,
		Price:       l.Price,
		Surface:     l.Surface,
		Rooms:       l.Rooms,
		County:      l.County,
		City:        l.City,
		Images:      l.Images,
		OwnerID:     l.OwnerID,
		CreatedAt:   l.CreatedAt.UTC(),
	}
}

func toListing(dl diskListing) domain.Listing {
	return domain.Listing{
		ID:          dl.ID,
		Title:       dl.Title,
		Description: dl.Description,
		Category:    dl.Category,
		Price:       dl.Price,
		Surface:     dl.Surface,
		Rooms:       dl.Rooms,
		County:      dl.County,
		City:        dl.City,
		Images:      dl.Images,
		OwnerID:     dl.OwnerID,
		CreatedAt:   dl.CreatedAt.UTC(),
	}
}
