// Package providers holds external-capability adapters for address
// autocomplete and local weather. The bundled implementations are
// deterministic stand-ins; production swaps in real API clients behind
// the same interfaces.
package providers

import (
	"context"
	"fmt"
	"strings"
)

// minSuggestInput is the input length below which no suggestions are
// returned.
const minSuggestInput = 3

// AddressSuggestion is one autocomplete candidate.
type AddressSuggestion struct {
	Description   string `json:"description"`
	PlaceID       string `json:"placeId"`
	MainText      string `json:"mainText"`
	SecondaryText string `json:"secondaryText"`
}

// PlaceDetails is the full record behind a suggestion, used to auto-fill
// the funnel's address and zip fields.
type PlaceDetails struct {
	FormattedAddress string  `json:"formattedAddress"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	PostalCode       string  `json:"postalCode"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
}

// AddressProvider serves address autocomplete.
type AddressProvider interface {
	Suggest(ctx context.Context, input string) ([]AddressSuggestion, error)
	Details(ctx context.Context, placeID string) (PlaceDetails, error)
}

// ErrPlaceNotFound is returned for an unknown place id.
var ErrPlaceNotFound = fmt.Errorf("providers: place not found")

// MockAddressProvider fabricates Carolina-area suggestions from the input.
type MockAddressProvider struct{}

// Suggest returns three synthetic candidates once the input reaches three
// characters, and nothing before that.
func (MockAddressProvider) Suggest(ctx context.Context, input string) ([]AddressSuggestion, error) {
	trimmed := strings.TrimSpace(input)
	if len(trimmed) < minSuggestInput {
		return []AddressSuggestion{}, nil
	}
	return []AddressSuggestion{
		{
			Description:   trimmed + " Main Street, Charlotte, NC",
			PlaceID:       "mock_place_1",
			MainText:      trimmed + " Main Street",
			SecondaryText: "Charlotte, NC, USA",
		},
		{
			Description:   trimmed + " Oak Avenue, Raleigh, NC",
			PlaceID:       "mock_place_2",
			MainText:      trimmed + " Oak Avenue",
			SecondaryText: "Raleigh, NC, USA",
		},
		{
			Description:   trimmed + " Pine Street, Durham, NC",
			PlaceID:       "mock_place_3",
			MainText:      trimmed + " Pine Street",
			SecondaryText: "Durham, NC, USA",
		},
	}, nil
}

// Details resolves one of the mock place ids.
func (MockAddressProvider) Details(ctx context.Context, placeID string) (PlaceDetails, error) {
	switch placeID {
	case "mock_place_1":
		return PlaceDetails{
			FormattedAddress: "123 Main Street, Charlotte, NC 28202, USA",
			City:             "Charlotte",
			State:            "NC",
			PostalCode:       "28202",
			Lat:              35.2271,
			Lng:              -80.8431,
		}, nil
	case "mock_place_2":
		return PlaceDetails{
			FormattedAddress: "456 Oak Avenue, Raleigh, NC 27601, USA",
			City:             "Raleigh",
			State:            "NC",
			PostalCode:       "27601",
			Lat:              35.7796,
			Lng:              -78.6382,
		}, nil
	case "mock_place_3":
		return PlaceDetails{
			FormattedAddress: "789 Pine Street, Durham, NC 27701, USA",
			City:             "Durham",
			State:            "NC",
			PostalCode:       "27701",
			Lat:              35.994,
			Lng:              -78.8986,
		}, nil
	}
	return PlaceDetails{}, ErrPlaceNotFound
}
