// internal/collect/session_test.go
package collect

import (
	"errors"
	"testing"
	"time"

	"github.com/orgpilot/orgpilot/internal/core"
)

func TestSessionStore_CreateAndGet(t *testing.T) {
	s := NewSessionStore(10, time.Hour)

	state := s.Create("u1", core.DataOrganizationName)
	if state.ID == "" {
		t.Fatal("expected generated session ID")
	}

	got, err := s.Get(state.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "u1" || got.DataType != core.DataOrganizationName {
		t.Errorf("got %+v", got)
	}
}

func TestSessionStore_GetCopies(t *testing.T) {
	s := NewSessionStore(10, time.Hour)
	state := s.Create("u1", core.DataIndustry)

	got, _ := s.Get(state.ID)
	got.Collected[core.DataIndustry] = "mutated"

	fresh, _ := s.Get(state.ID)
	if len(fresh.Collected) != 0 {
		t.Errorf("store leaked internal state: %v", fresh.Collected)
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	s := NewSessionStore(10, 10*time.Millisecond)
	state := s.Create("u1", core.DataIndustry)

	time.Sleep(30 * time.Millisecond)

	_, err := s.Get(state.ID)
	if !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("expected expired session to be gone, got %v", err)
	}
}

func TestSessionStore_EvictsOldest(t *testing.T) {
	s := NewSessionStore(2, time.Hour)

	first := s.Create("u1", core.DataIndustry)
	s.Create("u2", core.DataIndustry)
	s.Create("u3", core.DataIndustry)

	if _, err := s.Get(first.ID); !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("expected oldest session evicted, got %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", s.Len())
	}
}

func TestSessionStore_Update(t *testing.T) {
	s := NewSessionStore(10, time.Hour)
	state := s.Create("u1", core.DataOrganizationName)

	err := s.Update(state.ID, func(cs *ConversationState) {
		cs.DataType = core.DataIndustry
		cs.Collected[core.DataOrganizationName] = "Acme"
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := s.Get(state.ID)
	if got.DataType != core.DataIndustry {
		t.Errorf("dataType = %s", got.DataType)
	}
	if got.Collected[core.DataOrganizationName] != "Acme" {
		t.Errorf("collected = %v", got.Collected)
	}

	if err := s.Update("missing", func(*ConversationState) {}); !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("expected session not found, got %v", err)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	s := NewSessionStore(10, time.Hour)
	state := s.Create("u1", core.DataIndustry)

	s.Delete(state.ID)

	if _, err := s.Get(state.ID); !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("expected session gone, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d", s.Len())
	}
}
