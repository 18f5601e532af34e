package repositories

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"imobiliare/domain"
	"imobiliare/errors"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestListingRepository(t *testing.T) *ListingRepository {
	t.Helper()
	db := openTestDB(t)
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })
	return NewListingRepository(db, writer, slog.Default())
}

func newListing(owner string, category domain.Category, price float64, county string, at time.Time) domain.Listing {
	return domain.Listing{
		ID:          uuid.NewString(),
		Title:       "Test listing",
		Description: "A perfectly ordinary property",
		Category:    category,
		Price:       price,
		Surface:     50,
		Rooms:       2,
		County:      county,
		City:        "Cluj-Napoca",
		OwnerID:     owner,
		CreatedAt:   at,
	}
}

func Test_Save_Get_Delete_Listing(t *testing.T) {
	req := require.New(t)
	repository := openTestListingRepository(t)

	listing := newListing("owner-1", domain.CategoryApartment, 85000, "Cluj", time.Now().UTC())
	req.NoError(repository.Save(listing))

	fetched, err := repository.GetByID(listing.ID)
	req.NoError(err)
	req.Equal(listing.ID, fetched.ID)
	req.Equal(listing.Price, fetched.Price)

	req.NoError(repository.Delete(listing))
	_, err = repository.GetByID(listing.ID)
	req.ErrorIs(err, errors.ErrNotFound)
}

func Test_ListByOwner_Scopes_To_Owner(t *testing.T) {
	req := require.New(t)
	repository := openTestListingRepository(t)
	at := time.Now().UTC()

	mine := newListing("owner-1", domain.CategoryApartment, 85000, "Cluj", at)
	other := newListing("owner-2", domain.CategoryHouse, 200000, "Brasov", at)
	req.NoError(repository.Save(mine))
	req.NoError(repository.Save(other))

	listings, err := repository.ListByOwner("owner-1")
	req.NoError(err)
	req.Len(listings, 1)
	req.Equal(mine.ID, listings[0].ID)
}

func Test_Search_Filters_And_Recency_Order(t *testing.T) {
	req := require.New(t)
	repository := openTestListingRepository(t)
	at := time.Now().UTC()

	cheapOld := newListing("owner-1", domain.CategoryApartment, 60000, "Cluj", at.Add(-2*time.Hour))
	expensive := newListing("owner-1", domain.CategoryApartment, 150000, "Cluj", at.Add(-time.Hour))
	cheapNew := newListing("owner-2", domain.CategoryApartment, 70000, "Cluj", at)
	house := newListing("owner-2", domain.CategoryHouse, 65000, "Cluj", at)

	for _, listing := range []domain.Listing{cheapOld, expensive, cheapNew, house} {
		req.NoError(repository.Save(listing))
		req.NoError(repository.Index(listing))
	}

	priceMax := 100000.0
	results, err := repository.Search(context.Background(), ListingQuery{
		Category: string(domain.CategoryApartment),
		PriceMax: &priceMax,
	})
	req.NoError(err)
	req.Len(results, 2)
	// Most recent first.
	req.Equal(cheapNew.ID, results[0].ID)
	req.Equal(cheapOld.ID, results[1].ID)
}

func Test_Search_Skips_Deleted_Unindexed_Listings(t *testing.T) {
	req := require.New(t)
	repository := openTestListingRepository(t)
	at := time.Now().UTC()

	listing := newListing("owner-1", domain.CategoryLand, 30000, "Sibiu", at)
	req.NoError(repository.Save(listing))
	req.NoError(repository.Index(listing))

	// Delete the document but leave the index entry behind, as happens
	// between a delete and the indexer draining its queue.
	req.NoError(repository.Delete(listing))

	results, err := repository.Search(context.Background(), ListingQuery{County: "Sibiu"})
	req.NoError(err)
	req.Empty(results)

	req.NoError(repository.Deindex(listing.ID))
	results, err = repository.Search(context.Background(), ListingQuery{County: "Sibiu"})
	req.NoError(err)
	req.Empty(results)
}

func Test_Search_No_Filters_Returns_Everything(t *testing.T) {
	req := require.New(t)
	repository := openTestListingRepository(t)
	at := time.Now().UTC()

	for i := range 3 {
		listing := newListing("owner-1", domain.CategoryApartment, 50000, "Cluj", at.Add(time.Duration(i)*time.Minute))
		req.NoError(repository.Save(listing))
		req.NoError(repository.Index(listing))
	}

	results, err := repository.Search(context.Background(), ListingQuery{})
	req.NoError(err)
	req.Len(results, 3)
}
