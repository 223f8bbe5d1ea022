// internal/extract/machine_test.go
package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/orgpilot/orgpilot/internal/core"
	"github.com/orgpilot/orgpilot/internal/llm"
	"github.com/orgpilot/orgpilot/internal/llm/parse"
)

// fakeProvider returns canned generations in sequence, repeating the last one.
type fakeProvider struct {
	replies []string
	err     error
	calls   int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	i := f.calls - 1
	if i >= len(f.replies) {
		i = len(f.replies) - 1
	}
	return f.replies[i], nil
}

func (f *fakeProvider) Parse(raw string) *llm.Response { return parse.Parse(raw) }

func TestMachine_ExtractsOnFirstAttempt(t *testing.T) {
	p := &fakeProvider{replies: []string{`["high attrition", "slow hiring"]`}}
	m := NewMachine(p, nil, 3)

	got, err := m.Run(context.Background(), core.DataOrganizationProblems, "attrition and slow hiring")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, ok := got.([]any)
	if !ok || len(items) != 2 {
		t.Errorf("got %v", got)
	}
	if p.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", p.calls)
	}
}

func TestMachine_RetriesThenSucceeds(t *testing.T) {
	p := &fakeProvider{replies: []string{
		"no JSON here at all",
		`{"targetSegments": "mid-market", "growthPlans": "expand to EU"}`,
	}}
	m := NewMachine(p, nil, 3)

	got, err := m.Run(context.Background(), core.DataUserStrategy, "mid-market, expanding to EU")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mp, ok := got.(map[string]any)
	if !ok || mp["targetSegments"] != "mid-market" {
		t.Errorf("got %v", got)
	}
	if p.calls != 2 {
		t.Errorf("expected 2 provider calls, got %d", p.calls)
	}
}

func TestMachine_FallsBackAfterMaxAttempts(t *testing.T) {
	p := &fakeProvider{err: errors.New("provider down")}
	m := NewMachine(p, nil, 3)

	got, err := m.Run(context.Background(), core.DataBusinessOutcomes, "Grow revenue 20%. Hire in 30 days. Retain 90%.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.calls != 3 {
		t.Errorf("expected exactly 3 provider calls before fallback, got %d", p.calls)
	}

	mp, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected positional fallback object, got %T", got)
	}
	if mp["revenueTargets"] != "Grow revenue 20%" {
		t.Errorf("revenueTargets = %v", mp["revenueTargets"])
	}
	if err := Validate(core.DataBusinessOutcomes, got); err != nil {
		t.Errorf("fallback result does not validate: %v", err)
	}
}

func TestMachine_InvalidShapeRetries(t *testing.T) {
	// Parseable JSON with the wrong shape counts as a failed attempt.
	p := &fakeProvider{replies: []string{`{"wrong": "shape"}`}}
	m := NewMachine(p, nil, 2)

	got, err := m.Run(context.Background(), core.DataPeopleStrategy, "engineers first, then sales")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.calls != 2 {
		t.Errorf("expected 2 provider calls, got %d", p.calls)
	}
	if err := Validate(core.DataPeopleStrategy, got); err != nil {
		t.Errorf("result does not validate: %v", err)
	}
}

func TestMachine_TextAcceptsRawGeneration(t *testing.T) {
	p := &fakeProvider{replies: []string{"We believe hiring should be painless."}}
	m := NewMachine(p, nil, 3)

	got, err := m.Run(context.Background(), core.DataValueProposition, "hiring should be painless")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "We believe hiring should be painless." {
		t.Errorf("got %v", got)
	}
}

func TestMachine_UnknownDataType(t *testing.T) {
	m := NewMachine(&fakeProvider{}, nil, 3)

	_, err := m.Run(context.Background(), "nonsense", "whatever")
	if !errors.Is(err, core.ErrUnknownDataType) {
		t.Errorf("expected unknown data type error, got %v", err)
	}
}

func TestState_Next(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  Node
	}{
		{"complete", State{Complete: true}, NodeEnd},
		{"error under budget", State{Err: errors.New("x"), Attempts: 1, MaxAttempts: 3}, NodeExtract},
		{"error at budget", State{Err: errors.New("x"), Attempts: 3, MaxAttempts: 3}, NodeFallback},
		{"no error", State{Attempts: 1, MaxAttempts: 3}, NodeValidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Next(); got != tt.want {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}
