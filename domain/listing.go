package domain

import "time"

type Category string

const (
	CategoryApartment  Category = "apartament"
	CategoryHouse      Category = "casa"
	CategoryLand       Category = "teren"
	CategoryCommercial Category = "spatiu_comercial"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryApartment, CategoryHouse, CategoryLand, CategoryCommercial:
		return true
	}
	return false
}

// Listing is a property advert. The messaging core only ever consumes
// its identifier; the rest exists for the catalogue surface.
type Listing struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Price       float64
	Surface     float64
	Rooms       int
	County      string
	City        string
	Images      []string
	OwnerID     string
	CreatedAt   time.Time
}
