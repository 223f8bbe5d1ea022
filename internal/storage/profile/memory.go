// internal/storage/profile/memory.go
package profile

import (
	"context"
	"sync"

	"github.com/orgpilot/orgpilot/internal/core"
)

// MemoryStore is an in-memory profile store, used in tests and single-node
// deployments.
type MemoryStore struct {
	orgs       map[string]*core.OrganizationProfile
	strategies map[string]*core.BusinessStrategy
	mu         sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orgs:       make(map[string]*core.OrganizationProfile),
		strategies: make(map[string]*core.BusinessStrategy),
	}
}

// Organization returns a copy of the user's profile.
func (m *MemoryStore) Organization(ctx context.Context, userID string) (*core.OrganizationProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.orgs[userID]
	if !ok {
		return nil, core.ErrProfileNotFound
	}
	cp := *p
	cp.Departments = append([]core.Department(nil), p.Departments...)
	return &cp, nil
}

// SaveOrganizationField upserts a single profile field.
func (m *MemoryStore) SaveOrganizationField(ctx context.Context, userID string, dataType core.DataType, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.orgs[userID]
	if !ok {
		p = &core.OrganizationProfile{UserID: userID}
		m.orgs[userID] = p
	}
	return setOrganizationField(p, dataType, value)
}

// AddDepartment appends a department, rejecting duplicate names.
func (m *MemoryStore) AddDepartment(ctx context.Context, userID string, dept core.Department) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.orgs[userID]
	if !ok {
		p = &core.OrganizationProfile{UserID: userID}
		m.orgs[userID] = p
	}
	if p.HasDepartment(dept.Name) {
		return core.ErrAlreadyExists
	}
	p.Departments = append(p.Departments, dept)
	return nil
}

// Strategy returns a copy of the user's business strategy.
func (m *MemoryStore) Strategy(ctx context.Context, userID string) (*core.BusinessStrategy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.strategies[userID]
	if !ok {
		return nil, core.ErrProfileNotFound
	}
	cp := *s
	return &cp, nil
}

// SaveStrategySection upserts one strategy section.
func (m *MemoryStore) SaveStrategySection(ctx context.Context, userID string, dataType core.DataType, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.strategies[userID]
	if !ok {
		s = &core.BusinessStrategy{UserID: userID}
		m.strategies[userID] = s
	}
	return setStrategySection(s, dataType, value)
}
