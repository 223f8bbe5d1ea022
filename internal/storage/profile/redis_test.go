// internal/storage/profile/redis_test.go
package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/orgpilot/orgpilot/internal/core"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client)
}

func TestRedisStore_OrganizationLifecycle(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	_, err := s.Organization(ctx, "u1")
	require.ErrorIs(t, err, core.ErrProfileNotFound)

	require.NoError(t, s.SaveOrganizationField(ctx, "u1", core.DataOrganizationName, "Acme Corporation"))
	require.NoError(t, s.SaveOrganizationField(ctx, "u1", core.DataCEOEmail, "jane@acme.com"))

	org, err := s.Organization(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Acme Corporation", org.Name)
	require.Equal(t, "jane@acme.com", org.CEOEmail)
	require.Equal(t, "u1", org.UserID)
}

func TestRedisStore_DuplicateDepartment(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddDepartment(ctx, "u1", core.Department{Name: "Engineering", HeadName: "Sam Lee"}))

	err := s.AddDepartment(ctx, "u1", core.Department{Name: "ENGINEERING"})
	require.ErrorIs(t, err, core.ErrAlreadyExists)

	org, err := s.Organization(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, org.Departments, 1)
	require.Equal(t, "Sam Lee", org.Departments[0].HeadName)
}

func TestRedisStore_StrategySections(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	_, err := s.Strategy(ctx, "u1")
	require.ErrorIs(t, err, core.ErrProfileNotFound)

	require.NoError(t, s.SaveStrategySection(ctx, "u1", core.DataOrganizationProblems,
		[]any{"attrition", "slow hiring"}))
	require.NoError(t, s.SaveStrategySection(ctx, "u1", core.DataSolutionStrategy, map[string]any{
		"solution":             "HR platform",
		"distributionStrategy": "direct sales",
	}))

	st, err := s.Strategy(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"attrition", "slow hiring"}, st.OrganizationProblems)
	require.NotNil(t, st.SolutionStrategy)
	require.Equal(t, "HR platform", st.SolutionStrategy.Solution)
}

func TestRedisStore_BadShapeDoesNotWrite(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	err := s.SaveStrategySection(ctx, "u1", core.DataCostStructure, 42)
	require.ErrorIs(t, err, core.ErrValidationFailed)

	_, err = s.Strategy(ctx, "u1")
	require.ErrorIs(t, err, core.ErrProfileNotFound)
}

func TestRedisStore_IsolatesUsers(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveOrganizationField(ctx, "u1", core.DataOrganizationName, "Acme"))
	require.NoError(t, s.SaveOrganizationField(ctx, "u2", core.DataOrganizationName, "Globex"))

	org1, err := s.Organization(ctx, "u1")
	require.NoError(t, err)
	org2, err := s.Organization(ctx, "u2")
	require.NoError(t, err)

	require.Equal(t, "Acme", org1.Name)
	require.Equal(t, "Globex", org2.Name)
}

func TestRedisStore_ErrorWhenDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client)
	mr.Close()

	_, err := s.Organization(context.Background(), "u1")
	require.Error(t, err)
	require.False(t, errors.Is(err, core.ErrProfileNotFound))
}
