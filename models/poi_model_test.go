package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceTierUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    PriceTier
		wantErr bool
	}{
		{"name", `{"price_tier":"Moderate"}`, PriceModerate, false},
		{"name any case", `{"price_tier":"veryexpensive"}`, PriceVeryExpensive, false},
		{"ordinal", `{"price_tier":2}`, PriceModerate, false},
		{"zero ordinal", `{"price_tier":0}`, PriceFree, false},
		{"null keeps zero value", `{"price_tier":null}`, PriceFree, false},
		{"ordinal out of range", `{"price_tier":9}`, 0, true},
		{"negative ordinal", `{"price_tier":-1}`, 0, true},
		{"fractional", `{"price_tier":1.5}`, 0, true},
		{"unknown name", `{"price_tier":"Lavish"}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var poi POI
			err := json.Unmarshal([]byte(tt.body), &poi)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, poi.PriceTier)
		})
	}
}

func TestPriceTierMarshalsAsName(t *testing.T) {
	raw, err := json.Marshal(POI{PriceTier: PriceCheap})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price_tier":"Cheap"`)
}

func TestPOIHasCategory(t *testing.T) {
	poi := POI{Categories: []Category{{ID: "c1", Name: "Hotel"}, {ID: "c2", Name: "Lodging"}}}
	assert.True(t, poi.HasCategory("Lodging"))
	assert.False(t, poi.HasCategory("lodging"))
	assert.False(t, poi.HasCategory("Bar"))
}
