// Package storetest provides seeded in-memory stores for tests.
package storetest

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"poirec-server/models"
	"poirec-server/store"
)

// TestUserID identifies the single user seeded by NewUserStore.
const TestUserID = "3f2a9c1e-5b7d-4e8f-9a0b-1c2d3e4f5a6b"

var (
	travel     = models.Category{ID: "cat-travel", Name: "Travel & Transport"}
	lodging    = models.Category{ID: "cat-lodging", Name: "Lodging", ParentID: "cat-travel"}
	hotel      = models.Category{ID: "cat-hotel", Name: "Hotel", ParentID: "cat-lodging"}
	hostel     = models.Category{ID: "cat-hostel", Name: "Hostel", ParentID: "cat-lodging"}
	food       = models.Category{ID: "cat-food", Name: "Food & Drink"}
	restaurant = models.Category{ID: "cat-restaurant", Name: "Restaurant", ParentID: "cat-food"}
	coffee     = models.Category{ID: "cat-coffee", Name: "Coffee Shop", ParentID: "cat-food"}
	bakery     = models.Category{ID: "cat-bakery", Name: "Bakery", ParentID: "cat-food"}
	nightlife  = models.Category{ID: "cat-nightlife", Name: "Nightlife"}
	bar        = models.Category{ID: "cat-bar", Name: "Bar", ParentID: "cat-nightlife"}
	cocktail   = models.Category{ID: "cat-cocktail", Name: "Cocktail Bar", ParentID: "cat-bar"}
	wine       = models.Category{ID: "cat-wine", Name: "Wine Bar", ParentID: "cat-bar"}
	club       = models.Category{ID: "cat-club", Name: "Night Club", ParentID: "cat-nightlife"}
	arts       = models.Category{ID: "cat-arts", Name: "Arts & Entertainment"}
	museum     = models.Category{ID: "cat-museum", Name: "Museum", ParentID: "cat-arts"}
)

// Categories returns a three-level taxonomy. "Hotel" has two ancestors.
func Categories() []models.Category {
	return []models.Category{
		travel, lodging, hotel, hostel,
		food, restaurant, coffee, bakery,
		nightlife, bar, cocktail, wine, club,
		arts, museum,
	}
}

// POIs returns the three Copenhagen POIs with ancestor-closed categories:
// "Absalon Hotel" and "Test poi" share coordinates and the Hotel category,
// "Café Europa" is a Restaurant and Coffee Shop.
func POIs() []models.POI {
	created := time.Date(2022, 3, 22, 10, 0, 0, 0, time.UTC)
	return []models.POI{
		{
			ID:          "poi-absalon",
			Title:       "Absalon Hotel",
			Latitude:    55.671565,
			Longitude:   12.561658,
			Description: "Newly renovated family owned hotel in trendy Vesterbro. Next to Meatpacking district, cafées, bars and designer shops",
			Website:     "http://www.absalon-hotel.dk",
			Address:     "Helgolandsgade 15 (Istedgade), 1653 København, DK",
			PriceTier:   models.PriceFree,
			Categories:  []models.Category{hotel, lodging, travel},
			CreatedAt:   created,
		},
		{
			ID:          "poi-test",
			Title:       "Test poi",
			Latitude:    55.671565,
			Longitude:   12.561658,
			Description: "Newly renovated family owned hotel in trendy Vesterbro. Next to Meatpacking district, cafées, bars and designer shops",
			Website:     "http://www.absalon-hotel.dk",
			Address:     "Helgolandsgade 15 (Istedgade), 1653 København, DK",
			PriceTier:   models.PriceFree,
			Categories:  []models.Category{hotel, lodging, travel},
			CreatedAt:   created.Add(time.Minute),
		},
		{
			ID:         "poi-europa",
			Title:      "Café Europa",
			Latitude:   55.678662,
			Longitude:  12.579335,
			Website:    "http://europa1989.dk/",
			Address:    "Amagertorv 1 (Højbro Plads), 1160 København, DK",
			PriceTier:  models.PriceCheap,
			Categories: []models.Category{restaurant, coffee, food},
			CreatedAt:  created.Add(2 * time.Minute),
		},
	}
}

func NewCategoryStore() *store.MemoryCategoryStore {
	return store.NewMemoryCategoryStore(Categories()...)
}

func NewPOIStore() *store.MemoryPOIStore {
	return store.NewMemoryPOIStore(POIs()...)
}

// TestPassword is the password of the user seeded by NewUserStore.
const TestPassword = "TestPassword123"

// NewUserStore holds one user, "test", whose password is TestPassword.
func NewUserStore() *store.MemoryUserStore {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return store.NewMemoryUserStore(models.User{
		ID:           TestUserID,
		Username:     "test",
		PasswordHash: string(hash),
		CreatedAt:    time.Date(2022, 3, 16, 10, 0, 0, 0, time.UTC),
	})
}
