package models

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

type POI struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Latitude    float64    `json:"latitude" bson:"latitude"`
	Longitude   float64    `json:"longitude" bson:"longitude"`
	Description string     `json:"description" bson:"description"`
	Website     string     `json:"website" bson:"website"`
	Address     string     `json:"address" bson:"address"`
	PriceTier   PriceTier  `json:"price_tier" bson:"price_tier"`
	Categories  []Category `json:"categories" bson:"categories"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}

// HasCategory reports whether the POI is a direct member of the named category.
func (p POI) HasCategory(name string) bool {
	for _, c := range p.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// CategoryNames returns the names of the POI's categories in stored order.
func (p POI) CategoryNames() []string {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.Name)
	}
	return names
}

// Category is a node of the taxonomy forest. An empty ParentID marks a root.
type Category struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	Name     string `json:"name" bson:"name"`
	ParentID string `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
}

func (c Category) IsRoot() bool {
	return c.ParentID == ""
}

type PriceTier int

const (
	PriceFree PriceTier = iota
	PriceCheap
	PriceModerate
	PriceExpensive
	PriceVeryExpensive
)

var priceTierNames = [...]string{"Free", "Cheap", "Moderate", "Expensive", "VeryExpensive"}

func (p PriceTier) Valid() bool {
	return p >= PriceFree && p <= PriceVeryExpensive
}

func (p PriceTier) String() string {
	if !p.Valid() {
		return "PriceTier(" + strconv.Itoa(int(p)) + ")"
	}
	return priceTierNames[p]
}

// ParsePriceTier accepts a tier name (any case) or its ordinal.
func ParsePriceTier(s string) (PriceTier, error) {
	s = strings.TrimSpace(s)
	for i, name := range priceTierNames {
		if strings.EqualFold(s, name) {
			return PriceTier(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && PriceTier(n).Valid() {
		return PriceTier(n), nil
	}
	return 0, fmt.Errorf("unknown price tier %q", s)
}

func (p PriceTier) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid price tier %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *PriceTier) UnmarshalText(text []byte) error {
	tier, err := ParsePriceTier(string(text))
	if err != nil {
		return err
	}
	*p = tier
	return nil
}

// UnmarshalJSON accepts either a tier name or its ordinal.
func (p *PriceTier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		return p.UnmarshalText([]byte(name))
	}
	n, err := strconv.Atoi(string(data))
	if err != nil || !PriceTier(n).Valid() {
		return fmt.Errorf("unknown price tier %s", data)
	}
	*p = PriceTier(n)
	return nil
}

type Checkin struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	POIID     string    `json:"poi_id" bson:"poi_id"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
