package providers

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMockAddressProvider_Suggest(t *testing.T) {
	p := MockAddressProvider{}
	ctx := context.Background()

	// Below three characters: no suggestions.
	for _, input := range []string{"", "1", "12", "  1 "} {
		got, err := p.Suggest(ctx, input)
		if err != nil {
			t.Fatalf("Suggest(%q): %v", input, err)
		}
		if len(got) != 0 {
			t.Errorf("expected no suggestions for %q, got %d", input, len(got))
		}
	}

	got, err := p.Suggest(ctx, "123")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(got))
	}
	if !strings.HasPrefix(got[0].Description, "123 Main Street") {
		t.Errorf("unexpected first suggestion %+v", got[0])
	}
	for _, s := range got {
		if s.PlaceID == "" || s.SecondaryText == "" {
			t.Errorf("incomplete suggestion %+v", s)
		}
	}
}

func TestMockAddressProvider_Details(t *testing.T) {
	p := MockAddressProvider{}
	ctx := context.Background()

	details, err := p.Details(ctx, "mock_place_3")
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if details.PostalCode != "27701" || details.City != "Durham" {
		t.Errorf("unexpected details %+v", details)
	}

	if _, err := p.Details(ctx, "nope"); !errors.Is(err, ErrPlaceNotFound) {
		t.Errorf("expected ErrPlaceNotFound, got %v", err)
	}
}
