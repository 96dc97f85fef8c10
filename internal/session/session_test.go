package session

import (
	"context"
	"testing"
)

func TestNewProducesUniqueIDs(t *testing.T) {
	a := New()
	b := New()

	if a.ID == b.ID {
		t.Error("expected distinct session ids")
	}
	if !Valid(a.ID) {
		t.Errorf("expected valid id, got %q", a.ID)
	}
	if a.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

func TestValid(t *testing.T) {
	if Valid("") || Valid("sess_") || Valid("bogus_123") {
		t.Error("expected malformed ids to be invalid")
	}
	if !Valid("sess_1700000000000_ab12cd34e") {
		t.Error("expected well-formed id to be valid")
	}
}

func TestContextRoundTrip(t *testing.T) {
	s := New()
	ctx := WithContext(context.Background(), s)

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected session in context")
	}
	if got.ID != s.ID {
		t.Errorf("expected id %s, got %s", s.ID, got.ID)
	}

	if _, ok := FromContext(context.Background()); ok {
		t.Error("expected no session in empty context")
	}
}
