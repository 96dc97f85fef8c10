package leads

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryRepository_CreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	reqBody := validRequest()
	lead, err := repo.Create(ctx, &reqBody)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if lead.ID == "" || lead.PublicID == "" {
		t.Errorf("expected ids assigned, got %+v", lead)
	}
	if lead.CreatedAt.IsZero() {
		t.Error("expected created_at set")
	}

	got, err := repo.GetByID(ctx, lead.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "jane@example.com" {
		t.Errorf("unexpected lead %+v", got)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrLeadNotFound) {
		t.Errorf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestInMemoryRepository_AttributionDefault(t *testing.T) {
	repo := NewInMemoryRepository()

	reqBody := validRequest()
	reqBody.UTMSource, reqBody.UTMMedium, reqBody.UTMCampaign = "", "", ""
	lead, err := repo.Create(context.Background(), &reqBody)
	if err != nil {
		t.Fatal(err)
	}
	if lead.UTMSource != "direct" {
		t.Errorf("expected direct source, got %q", lead.UTMSource)
	}
	if lead.UTMMedium != "" || lead.UTMCampaign != "" {
		t.Errorf("expected empty medium and campaign, got %+v", lead)
	}
}

func TestInMemoryRepository_ListByBrand(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	for i, brand := range []string{"safehaven", "redhawk", "safehaven", "safehaven"} {
		reqBody := validRequest()
		reqBody.Brand = brand
		if i == 2 {
			reqBody.ServiceType = "Video Surveillance"
		}
		if _, err := repo.Create(ctx, &reqBody); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ListByBrand(ctx, "safehaven", ListLeadsFilter{Limit: 50})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 safehaven leads, got %d", len(got))
	}

	got, err = repo.ListByBrand(ctx, "safehaven", ListLeadsFilter{ServiceType: "Video Surveillance"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 filtered lead, got %d", len(got))
	}

	got, err = repo.ListByBrand(ctx, "safehaven", ListLeadsFilter{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected limit applied, got %d", len(got))
	}

	got, err = repo.ListByBrand(ctx, "safehaven", ListLeadsFilter{Offset: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(got))
	}
}
