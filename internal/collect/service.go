// internal/collect/service.go
package collect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/orgpilot/orgpilot/internal/core"
	"github.com/orgpilot/orgpilot/internal/extract"
	"github.com/orgpilot/orgpilot/internal/llm"
	"github.com/orgpilot/orgpilot/internal/llm/parse"
	"github.com/orgpilot/orgpilot/internal/metrics"
	"github.com/orgpilot/orgpilot/internal/storage/profile"
	"go.uber.org/zap"
)

// Service drives collection sessions: it asks for missing fields, extracts
// values from user replies through the provider, persists them, and advances
// to the next question. Every failure path degrades to a well-formed
// response; callers never see a provider or parse error.
type Service struct {
	store    profile.Store
	provider llm.Provider
	machine  *extract.Machine
	sessions *SessionStore
	logger   *zap.Logger
	metrics  *metrics.Registry
	timeout  time.Duration
}

// Config holds service tuning.
type Config struct {
	MaxAttempts    int
	RequestTimeout time.Duration
	SessionTTL     time.Duration
	MaxSessions    int
}

// NewService wires a collection service.
func NewService(store profile.Store, provider llm.Provider, cfg Config, logger *zap.Logger, reg *metrics.Registry) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	return &Service{
		store:    store,
		provider: provider,
		machine:  extract.NewMachine(provider, logger, cfg.MaxAttempts),
		sessions: NewSessionStore(cfg.MaxSessions, cfg.SessionTTL),
		logger:   logger,
		metrics:  reg,
		timeout:  cfg.RequestTimeout,
	}
}

// Sessions exposes the session store.
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

// TurnResult is what one collection turn hands back to the caller.
type TurnResult struct {
	SessionID string        `json:"sessionId"`
	Response  *llm.Response `json:"response"`
}

// turnContext is serialized into the collection prompt so the model knows
// what is missing and what has already been gathered.
type turnContext struct {
	MissingOrgData              []core.DataType       `json:"missingOrgData"`
	MissingBusinessStrategyData []core.DataType       `json:"missingBusinessStrategyData"`
	CurrentQuestion             core.DataType         `json:"currentQuestion"`
	CollectedData               map[core.DataType]any `json:"collectedData"`
	ExistingData                map[string]any        `json:"existingData"`
}

// Turn processes one user message in a collection session. The returned
// response always has the wire shape downstream consumers depend on.
func (s *Service) Turn(ctx context.Context, userID, sessionID, message string, currentQuestion core.DataType) (*TurnResult, error) {
	state, err := s.session(userID, sessionID, currentQuestion)
	if err != nil {
		return nil, err
	}
	if currentQuestion == "" {
		currentQuestion = state.DataType
	}

	org, strategy := s.records(ctx, userID)
	missingOrg := MissingOrgFields(org)
	missingStrategy := MissingStrategyFields(strategy)

	prompt := s.buildPrompt(message, turnContext{
		MissingOrgData:              missingOrg,
		MissingBusinessStrategyData: missingStrategy,
		CurrentQuestion:             currentQuestion,
		CollectedData:               state.Collected,
		ExistingData:                existingData(org),
	})

	resp := s.generate(ctx, prompt)

	// Persist whatever was extracted before asking the next question; the
	// next turn's missing-field computation depends on this write landing.
	if resp.ExtractedData != nil && resp.ExtractedData.DataType != "" && resp.ExtractedData.Value != nil {
		if err := s.persist(ctx, userID, resp.ExtractedData.DataType, resp.ExtractedData.Value); err != nil {
			if errors.Is(err, core.ErrAlreadyExists) {
				s.logger.Debug("extracted record already present",
					zap.String("data_type", string(resp.ExtractedData.DataType)))
			} else {
				s.logger.Error("persisting extracted data failed",
					zap.String("data_type", string(resp.ExtractedData.DataType)),
					zap.Error(err))
			}
		} else {
			s.sessions.Update(state.ID, func(cs *ConversationState) {
				cs.Collected[resp.ExtractedData.DataType] = resp.ExtractedData.Value
			})
		}
	}

	s.advance(ctx, userID, state.ID, resp)

	if s.metrics != nil {
		s.metrics.CollectionTurn()
	}
	return &TurnResult{SessionID: state.ID, Response: resp}, nil
}

// Extract runs the bounded extraction state machine for one strategy section
// and persists the result.
func (s *Service) Extract(ctx context.Context, userID string, dataType core.DataType, userResponse string) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	value, err := s.machine.Run(ctx, dataType, userResponse)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveStrategySection(ctx, userID, dataType, value); err != nil {
		return nil, err
	}
	return value, nil
}

// SaveField persists one organization field from a natural-language answer
// using the deterministic pattern extractor, and returns the normalized value.
func (s *Service) SaveField(ctx context.Context, userID string, dataType core.DataType, rawValue string) (string, error) {
	value := extract.ExtractField(dataType, rawValue)

	if dataType == core.DataDepartments {
		org, err := s.store.Organization(ctx, userID)
		if err != nil && !errors.Is(err, core.ErrProfileNotFound) {
			return "", err
		}
		if err := s.store.AddDepartment(ctx, userID, departmentDefaults(org, value)); err != nil {
			return "", err
		}
		return value, nil
	}

	if !isOrgDataType(dataType) {
		return "", core.WrapError(core.ErrUnknownDataType, fmt.Errorf("%s", dataType))
	}
	if err := s.store.SaveOrganizationField(ctx, userID, dataType, value); err != nil {
		return "", err
	}
	return value, nil
}

// StatusReport summarizes which fields are present and which are missing.
type StatusReport struct {
	Requirements map[core.DataType]bool `json:"dataRequirements"`
	Departments  []string               `json:"departments"`
	MissingData  []core.DataType        `json:"missingData"`
}

// Status reports the user's collection progress over organization fields.
func (s *Service) Status(ctx context.Context, userID string) (*StatusReport, error) {
	org, err := s.store.Organization(ctx, userID)
	if err != nil && !errors.Is(err, core.ErrProfileNotFound) {
		return nil, err
	}

	missing := MissingOrgFields(org)
	report := &StatusReport{
		Requirements: make(map[core.DataType]bool, len(core.OrgDataTypes)),
		MissingData:  missing,
	}
	missingSet := make(map[core.DataType]struct{}, len(missing))
	for _, dt := range missing {
		missingSet[dt] = struct{}{}
	}
	for _, dt := range core.OrgDataTypes {
		_, isMissing := missingSet[dt]
		report.Requirements[dt] = !isMissing
	}
	if org != nil {
		for _, d := range org.Departments {
			report.Departments = append(report.Departments, d.Name)
		}
	}
	return report, nil
}

// session resolves or creates the conversation state for this turn.
func (s *Service) session(userID, sessionID string, currentQuestion core.DataType) (*ConversationState, error) {
	if sessionID != "" {
		state, err := s.sessions.Get(sessionID)
		if err == nil {
			if state.UserID != userID {
				return nil, core.ErrUnauthorized
			}
			return state, nil
		}
		// Expired or unknown session: start fresh rather than failing the turn.
	}
	dt := currentQuestion
	if dt == "" {
		dt = core.DataOrganizationName
	}
	state := s.sessions.Create(userID, dt)
	if s.metrics != nil {
		s.metrics.SetSessionsActive(s.sessions.Len())
	}
	return state, nil
}

func (s *Service) records(ctx context.Context, userID string) (*core.OrganizationProfile, *core.BusinessStrategy) {
	org, err := s.store.Organization(ctx, userID)
	if err != nil && !errors.Is(err, core.ErrProfileNotFound) {
		s.logger.Warn("loading organization failed", zap.Error(err))
	}
	strategy, err := s.store.Strategy(ctx, userID)
	if err != nil && !errors.Is(err, core.ErrProfileNotFound) {
		s.logger.Warn("loading strategy failed", zap.Error(err))
	}
	return org, strategy
}

func existingData(org *core.OrganizationProfile) map[string]any {
	data := map[string]any{
		"organizationName": "",
		"industry":         "",
		"companySize":      "",
		"ceoName":          "",
		"ceoEmail":         "",
		"departments":      []string{},
	}
	if org == nil {
		return data
	}
	data["organizationName"] = org.Name
	data["industry"] = org.Industry
	data["companySize"] = org.CompanySize
	data["ceoName"] = org.CEOName
	data["ceoEmail"] = org.CEOEmail
	names := make([]string, 0, len(org.Departments))
	for _, d := range org.Departments {
		names = append(names, d.Name)
	}
	data["departments"] = names
	return data
}

// buildPrompt assembles the conversational collection prompt.
func (s *Service) buildPrompt(message string, tc turnContext) string {
	ctxJSON, _ := json.MarshalIndent(tc, "", "  ")

	task := "You need to determine what data to collect next."
	if tc.CurrentQuestion != "" {
		task = fmt.Sprintf("You are currently collecting data for: %s", tc.CurrentQuestion)
	}

	return strings.TrimSpace(fmt.Sprintf(`
You are an AI assistant helping to collect information about a company. You need to extract specific data points from the user's messages in a conversational, natural way.

CONTEXT:
%s

CURRENT TASK:
%s

USER MESSAGE:
%s

Your task is to:
1. Extract any relevant information from the user's message that corresponds to the data we're collecting
2. Determine what data to collect next
3. Respond in a natural, conversational way
4. If the user's message doesn't contain the information you need, ask for it specifically
5. If the user seems confused or asks for help, explain what information you need and why

IMPORTANT: You must ONLY return a valid JSON object with no additional text, code, or explanation before or after it.
Do not include any markdown code blocks, Python code, or any other text outside the JSON object.

Return your response in the following JSON format:
{
  "extractedData": {
    "dataType": "the type of data extracted (e.g., organizationName, industry, etc.)",
    "value": "the extracted value"
  },
  "nextQuestion": {
    "dataType": "the type of data to collect next",
    "question": "the question to ask the user"
  },
  "conversationalResponse": "Your natural language response to the user"
}

If you can't extract any data, set extractedData to null.
If you've collected all the data, set nextQuestion to null.

Remember: Return ONLY the JSON object with no additional text, code, or explanation.`,
		ctxJSON, task, message))
}

// generate calls the provider under the caller-imposed timeout and parses the
// result. Any failure resolves to the parser's fallback object.
func (s *Service) generate(ctx context.Context, prompt string) *llm.Response {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.provider.Generate(ctx, prompt, llm.Options{
		Temperature: 0.5,
		MaxTokens:   800,
	})
	if s.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.LLMRequest(s.provider.Name(), status, time.Since(start))
	}
	if err != nil {
		s.logger.Warn("provider generation failed", zap.Error(err))
		return parse.Fallback()
	}

	resp := s.provider.Parse(raw)
	if s.metrics != nil && resp.NextQuestion != nil && resp.NextQuestion.DataType == core.DataRetry {
		s.metrics.ParseRecovery("fallback")
	}
	return resp
}

// persist routes an extracted value to the right store operation.
func (s *Service) persist(ctx context.Context, userID string, dataType core.DataType, value any) error {
	switch {
	case dataType == core.DataDepartments:
		name, ok := value.(string)
		if !ok {
			return core.WrapError(core.ErrValidationFailed, fmt.Errorf("department value must be a string"))
		}
		org, err := s.store.Organization(ctx, userID)
		if err != nil && !errors.Is(err, core.ErrProfileNotFound) {
			return err
		}
		name = extract.ExtractField(core.DataDepartments, name)
		return s.store.AddDepartment(ctx, userID, departmentDefaults(org, name))

	case isOrgDataType(dataType):
		v, ok := value.(string)
		if !ok {
			return core.WrapError(core.ErrValidationFailed, fmt.Errorf("%s value must be a string", dataType))
		}
		return s.store.SaveOrganizationField(ctx, userID, dataType, extract.ExtractField(dataType, v))

	case isStrategyDataType(dataType):
		if err := extract.Validate(dataType, value); err != nil {
			// Shape mismatch from the model; rebuild deterministically from
			// the raw string when possible.
			raw, ok := value.(string)
			if !ok {
				return err
			}
			value = extract.FallbackExtract(dataType, raw)
			if s.metrics != nil {
				s.metrics.FallbackExtraction(string(dataType))
			}
		}
		return s.store.SaveStrategySection(ctx, userID, dataType, value)

	default:
		return core.WrapError(core.ErrUnknownDataType, fmt.Errorf("%s", dataType))
	}
}

// advance fills in the next question when the model left it empty and records
// session progress.
func (s *Service) advance(ctx context.Context, userID, sessionID string, resp *llm.Response) {
	if resp.NextQuestion != nil && resp.NextQuestion.DataType == core.DataRetry {
		return
	}

	org, strategy := s.records(ctx, userID)
	missing := append(MissingOrgFields(org), MissingStrategyFields(strategy)...)

	if len(missing) == 0 {
		resp.NextQuestion = nil
		s.sessions.Update(sessionID, func(cs *ConversationState) {
			cs.Complete = true
		})
		return
	}

	if resp.NextQuestion == nil || resp.NextQuestion.DataType == "" || resp.NextQuestion.Question == "" {
		resp.NextQuestion = &llm.Question{
			DataType: missing[0],
			Question: QuestionFor(missing[0]),
		}
	}
	s.sessions.Update(sessionID, func(cs *ConversationState) {
		cs.DataType = resp.NextQuestion.DataType
	})
}

// departmentDefaults builds a department record with placeholder head
// contact details derived from the organization, matching what the guided
// flow fills in before the user edits them.
func departmentDefaults(org *core.OrganizationProfile, name string) core.Department {
	domain := "example.com"
	reportsTo := "CEO"
	if org != nil {
		if org.Name != "" {
			domain = strings.ToLower(strings.ReplaceAll(org.Name, " ", "")) + ".com"
		}
		if org.CEOName != "" {
			reportsTo = org.CEOName
		}
	}
	local := strings.ToLower(strings.Join(strings.Fields(name), "."))
	return core.Department{
		Name:      name,
		HeadName:  "Department Head",
		HeadEmail: local + "@" + domain,
		Role:      "Department Head",
		ReportsTo: reportsTo,
	}
}
