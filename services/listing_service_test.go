package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"imobiliare/domain"
	"imobiliare/errors"
	"imobiliare/mocks"
	"imobiliare/repositories"
	. "imobiliare/services"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func validListingInput() ListingInput {
	return ListingInput{
		Title:       "Apartament 2 camere",
		Description: "Etaj 3, renovat recent, zona linistita.",
		Category:    "apartament",
		Price:       85000,
		Surface:     54,
		Rooms:       2,
		County:      "Cluj",
		City:        "Cluj-Napoca",
	}
}

func TestListingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should save and enqueue an index command", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockIListingRepository(ctrl)
		queue := make(chan IndexCommand, 1)
		svc := NewListingService(repo, queue, slog.Default())

		repo.EXPECT().Save(gomock.Any()).Return(nil)

		listing, err := svc.Create(ctx, "owner-1", validListingInput(), nil)
		req.NoError(err)
		req.NotEmpty(listing.ID)
		req.Equal("owner-1", listing.OwnerID)

		cmd := <-queue
		req.Equal(listing.ID, cmd.Listing.ID)
		req.False(cmd.Remove)
	})

	t.Run("should reject invalid input before touching storage", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockIListingRepository(ctrl)
		svc := NewListingService(repo, make(chan IndexCommand, 1), slog.Default())

		input := validListingInput()
		input.Price = 0
		_, err := svc.Create(ctx, "owner-1", input, nil)
		req.ErrorIs(err, errors.ErrInvalidBody)

		input = validListingInput()
		input.Category = "castel"
		_, err = svc.Create(ctx, "owner-1", input, nil)
		req.ErrorIs(err, errors.ErrInvalidBody)
	})
}

func TestListingService_Update(t *testing.T) {
	ctx := context.Background()

	existing := domain.Listing{
		ID:        "listing-1",
		Title:     "Old title",
		Category:  domain.CategoryApartment,
		OwnerID:   "owner-1",
		Images:    []string{"old.jpg"},
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}

	t.Run("should keep identity and creation time", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockIListingRepository(ctrl)
		queue := make(chan IndexCommand, 1)
		svc := NewListingService(repo, queue, slog.Default())

		repo.EXPECT().GetByID("listing-1").Return(existing, nil)
		repo.EXPECT().Save(gomock.Any()).DoAndReturn(func(listing domain.Listing) error {
			req.Equal(existing.ID, listing.ID)
			req.Equal(existing.OwnerID, listing.OwnerID)
			req.Equal(existing.CreatedAt, listing.CreatedAt)
			// No new images: the previous set survives the update.
			req.Equal(existing.Images, listing.Images)
			return nil
		})

		_, err := svc.Update(ctx, "listing-1", "owner-1", validListingInput(), nil)
		req.NoError(err)
		req.Len(queue, 1)
	})

	t.Run("should refuse a non-owner", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockIListingRepository(ctrl)
		svc := NewListingService(repo, make(chan IndexCommand, 1), slog.Default())

		repo.EXPECT().GetByID("listing-1").Return(existing, nil)

		_, err := svc.Update(ctx, "listing-1", "someone-else", validListingInput(), nil)
		req.ErrorIs(err, errors.ErrForbidden)
	})

	t.Run("should report unknown listings", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockIListingRepository(ctrl)
		svc := NewListingService(repo, make(chan IndexCommand, 1), slog.Default())

		repo.EXPECT().GetByID("missing").Return(domain.Listing{}, errors.ErrNotFound)

		_, err := svc.Update(ctx, "missing", "owner-1", validListingInput(), nil)
		req.ErrorIs(err, errors.ErrNotFound)
	})
}

func TestListingService_Delete(t *testing.T) {
	ctx := context.Background()

	existing := domain.Listing{ID: "listing-1", OwnerID: "owner-1"}

	t.Run("should delete and enqueue a removal", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockIListingRepository(ctrl)
		queue := make(chan IndexCommand, 1)
		svc := NewListingService(repo, queue, slog.Default())

		repo.EXPECT().GetByID("listing-1").Return(existing, nil)
		repo.EXPECT().Delete(existing).Return(nil)

		req.NoError(svc.Delete(ctx, "listing-1", "owner-1"))

		cmd := <-queue
		req.True(cmd.Remove)
		req.Equal("listing-1", cmd.Listing.ID)
	})

	t.Run("should refuse a non-owner without deleting", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockIListingRepository(ctrl)
		svc := NewListingService(repo, make(chan IndexCommand, 1), slog.Default())

		repo.EXPECT().GetByID("listing-1").Return(existing, nil)

		err := svc.Delete(ctx, "listing-1", "intruder")
		req.ErrorIs(err, errors.ErrForbidden)
	})
}

func TestListingService_ListMine_Sorted(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockIListingRepository(ctrl)
	svc := NewListingService(repo, make(chan IndexCommand, 1), slog.Default())

	at := time.Now().UTC()
	repo.EXPECT().ListByOwner("owner-1").Return([]domain.Listing{
		{ID: "old", CreatedAt: at.Add(-time.Hour)},
		{ID: "new", CreatedAt: at},
	}, nil)

	listings, err := svc.ListMine(ctx, "owner-1")
	req.NoError(err)
	req.Equal("new", listings[0].ID)
	req.Equal("old", listings[1].ID)
}

func TestListingService_Search_Passthrough(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockIListingRepository(ctrl)
	svc := NewListingService(repo, make(chan IndexCommand, 1), slog.Default())

	query := repositories.ListingQuery{County: "Cluj"}
	repo.EXPECT().Search(ctx, query).Return([]domain.Listing{{ID: "hit"}}, nil)

	listings, err := svc.Search(ctx, query)
	req.NoError(err)
	req.Len(listings, 1)
	req.Equal("hit", listings[0].ID)
}
