//go:generate go run go.uber.org/mock/mockgen -source=listing_service.go -destination=../mocks/mock_listing_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"imobiliare/domain"
	"imobiliare/errors"
	"imobiliare/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type IListingService interface {
	Create(ctx context.Context, ownerID string, in ListingInput, images []string) (domain.Listing, error)
	Get(ctx context.Context, id string) (domain.Listing, error)
	Update(ctx context.Context, id, requesterID string, in ListingInput, images []string) (domain.Listing, error)
	Delete(ctx context.Context, id, requesterID string) error
	ListMine(ctx context.Context, ownerID string) ([]domain.Listing, error)
	Search(ctx context.Context, query repositories.ListingQuery) ([]domain.Listing, error)
}

// IndexCommand asks the background indexer to (re)index or remove one
// listing from the search index.
type IndexCommand struct {
	Listing domain.Listing
	Remove  bool
}

// ListingInput carries the caller-editable listing fields.
type ListingInput struct {
	Title       string  `validate:"required,min=3,max=200"`
	Description string  `validate:"required,min=10"`
	Category    string  `validate:"required"`
	Price       float64 `validate:"required,gt=0"`
	Surface     float64 `validate:"required,gt=0"`
	Rooms       int     `validate:"gte=0"`
	County      string  `validate:"required"`
	City        string  `validate:"required"`
}

var listingValidate = validator.New()

// ListingService owns the catalogue. Search indexing is decoupled from
// the request path through the index queue: the HTTP call returns once
// Badger has the document, and the supervised indexer worker makes it
// searchable shortly after.
type ListingService struct {
	listings   repositories.IListingRepository
	indexQueue chan<- IndexCommand
	log        *slog.Logger
}

func NewListingService(listings repositories.IListingRepository, indexQueue chan<- IndexCommand, log *slog.Logger) *ListingService {
	return &ListingService{listings: listings, indexQueue: indexQueue, log: log}
}

func (s *ListingService) Create(_ context.Context, ownerID string, in ListingInput, images []string) (domain.Listing, error) {
	listing, err := buildListing(uuid.NewString(), ownerID, time.Now().UTC(), in, images)
	if err != nil {
		return domain.Listing{}, err
	}
	if err := s.listings.Save(listing); err != nil {
		return domain.Listing{}, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}
	s.enqueue(IndexCommand{Listing: listing})
	return listing, nil
}

func (s *ListingService) Get(_ context.Context, id string) (domain.Listing, error) {
	listing, err := s.listings.GetByID(id)
	if err != nil {
		return domain.Listing{}, asLookupError(err)
	}
	return listing, nil
}

func (s *ListingService) Update(_ context.Context, id, requesterID string, in ListingInput, images []string) (domain.Listing, error) {
	existing, err := s.listings.GetByID(id)
	if err != nil {
		return domain.Listing{}, asLookupError(err)
	}
	if existing.OwnerID != requesterID {
		return domain.Listing{}, errors.ErrForbidden
	}

	if len(images) == 0 {
		images = existing.Images
	}
	listing, err := buildListing(existing.ID, existing.OwnerID, existing.CreatedAt, in, images)
	if err != nil {
		return domain.Listing{}, err
	}
	if err := s.listings.Save(listing); err != nil {
		return domain.Listing{}, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}
	s.enqueue(IndexCommand{Listing: listing})
	return listing, nil
}

func (s *ListingService) Delete(_ context.Context, id, requesterID string) error {
	existing, err := s.listings.GetByID(id)
	if err != nil {
		return asLookupError(err)
	}
	if existing.OwnerID != requesterID {
		return errors.ErrForbidden
	}
	if err := s.listings.Delete(existing); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}
	s.enqueue(IndexCommand{Listing: existing, Remove: true})
	return nil
}

func (s *ListingService) ListMine(_ context.Context, ownerID string) ([]domain.Listing, error) {
	listings, err := s.listings.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return listings, nil
}

func (s *ListingService) Search(ctx context.Context, query repositories.ListingQuery) ([]domain.Listing, error) {
	listings, err := s.listings.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}
	return listings, nil
}

func (s *ListingService) enqueue(cmd IndexCommand) {
	select {
	case s.indexQueue <- cmd:
	default:
		s.log.Warn("Index queue full, dropping index command", "listing_id", cmd.Listing.ID)
	}
}

func buildListing(id, ownerID string, createdAt time.Time, in ListingInput, images []string) (domain.Listing, error) {
	if err := listingValidate.Struct(in); err != nil {
		return domain.Listing{}, fmt.Errorf("%w: %v", errors.ErrInvalidBody, err)
	}
	category := domain.Category(in.Category)
	if !category.Valid() {
		return domain.Listing{}, fmt.Errorf("%w: unknown category %q", errors.ErrInvalidBody, in.Category)
	}
	return domain.Listing{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Category:    category,
		Price:       in.Price,
		Surface:     in.Surface,
		Rooms:       in.Rooms,
		County:      in.County,
		City:        in.City,
		Images:      images,
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
	}, nil
}
