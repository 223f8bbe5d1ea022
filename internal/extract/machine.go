package extract

import (
	"context"

	"github.com/orgpilot/orgpilot/internal/core"
	"github.com/orgpilot/orgpilot/internal/llm"
	"github.com/orgpilot/orgpilot/internal/llm/parse"
	"go.uber.org/zap"
)

// Node names the stages of the extraction loop.
type Node string

const (
	NodeExtract  Node = "extracting"
	NodeValidate Node = "validating"
	NodeFallback Node = "fallbackExtraction"
	NodeEnd      Node = "end"
)

// State carries one extraction run through the loop.
type State struct {
	DataType     core.DataType
	UserResponse string
	Extracted    any
	Attempts     int
	MaxAttempts  int
	Err          error
	Complete     bool
}

// Next selects the following node from the current state. fallbackExtraction
// always completes, so the loop runs at most MaxAttempts extraction rounds
// plus one terminal fallback step.
func (s *State) Next() Node {
	if s.Complete {
		return NodeEnd
	}
	if s.Err != nil {
		if s.Attempts >= s.MaxAttempts {
			return NodeFallback
		}
		return NodeExtract
	}
	return NodeValidate
}

// Machine runs AI extraction with validation, bounded retries and a
// deterministic terminal fallback.
type Machine struct {
	provider    llm.Provider
	logger      *zap.Logger
	maxAttempts int
}

// NewMachine creates an extraction machine. maxAttempts below 1 defaults to 3.
func NewMachine(provider llm.Provider, logger *zap.Logger, maxAttempts int) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	return &Machine{provider: provider, logger: logger, maxAttempts: maxAttempts}
}

// Run extracts the structured value for dataType from userResponse. The only
// error it can return is an unknown dataType; every provider or shape failure
// resolves through the fallback extractor instead.
func (m *Machine) Run(ctx context.Context, dataType core.DataType, userResponse string) (any, error) {
	if _, ok := Schemas[dataType]; !ok {
		return nil, core.WrapError(core.ErrUnknownDataType, nil)
	}

	state := &State{
		DataType:     dataType,
		UserResponse: userResponse,
		MaxAttempts:  m.maxAttempts,
	}

	m.extract(ctx, state)
	for !state.Complete {
		switch state.Next() {
		case NodeEnd:
			return state.Extracted, nil
		case NodeExtract:
			m.extract(ctx, state)
		case NodeValidate:
			m.validate(state)
		case NodeFallback:
			m.fallback(state)
		}
	}
	return state.Extracted, nil
}

func (m *Machine) extract(ctx context.Context, s *State) {
	s.Attempts++
	s.Err = nil

	prompt, err := ExtractionPrompt(s.DataType, s.UserResponse)
	if err != nil {
		s.Err = err
		return
	}

	m.logger.Debug("attempting AI extraction",
		zap.String("data_type", string(s.DataType)),
		zap.Int("attempt", s.Attempts),
	)

	// Low temperature: extraction wants determinism, not creativity.
	raw, err := m.provider.Generate(ctx, prompt, llm.Options{
		Temperature: 0.2,
		MaxTokens:   500,
	})
	if err != nil {
		m.logger.Warn("AI extraction failed",
			zap.String("data_type", string(s.DataType)),
			zap.Error(err),
		)
		s.Err = err
		return
	}

	value, ok := parse.Value(raw)
	if !ok {
		// Simple-text dataTypes accept the raw generation as the value.
		if schema := Schemas[s.DataType]; schema.Kind == KindText {
			s.Extracted = raw
			return
		}
		s.Err = core.WrapError(core.ErrParseFailed, nil)
		return
	}
	s.Extracted = value
}

func (m *Machine) validate(s *State) {
	if err := Validate(s.DataType, s.Extracted); err != nil {
		s.Err = err
		return
	}
	s.Err = nil
	s.Complete = true
}

func (m *Machine) fallback(s *State) {
	m.logger.Info("using fallback extraction",
		zap.String("data_type", string(s.DataType)),
		zap.Int("attempts", s.Attempts),
	)
	s.Extracted = FallbackExtract(s.DataType, s.UserResponse)
	s.Err = nil
	s.Complete = true
}
