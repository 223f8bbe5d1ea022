// internal/storage/profile/redis.go
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/orgpilot/orgpilot/internal/core"
	"github.com/redis/go-redis/v9"
)

const (
	orgKeyPrefix      = "orgpilot:org:"
	strategyKeyPrefix = "orgpilot:strategy:"
)

// RedisStore persists profiles as JSON documents, one key per user record.
// Read-modify-write cycles run under WATCH so concurrent writers to the same
// user serialize instead of clobbering each other.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store on an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Organization returns the user's profile.
func (r *RedisStore) Organization(ctx context.Context, userID string) (*core.OrganizationProfile, error) {
	var p core.OrganizationProfile
	if err := r.get(ctx, orgKeyPrefix+userID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveOrganizationField upserts a single profile field.
func (r *RedisStore) SaveOrganizationField(ctx context.Context, userID string, dataType core.DataType, value string) error {
	return r.update(ctx, orgKeyPrefix+userID, func(raw []byte) ([]byte, error) {
		p := core.OrganizationProfile{UserID: userID}
		if raw != nil {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, core.WrapError(core.ErrStoreFailed, err)
			}
		}
		if err := setOrganizationField(&p, dataType, value); err != nil {
			return nil, err
		}
		return json.Marshal(p)
	})
}

// AddDepartment appends a department, rejecting duplicate names.
func (r *RedisStore) AddDepartment(ctx context.Context, userID string, dept core.Department) error {
	return r.update(ctx, orgKeyPrefix+userID, func(raw []byte) ([]byte, error) {
		p := core.OrganizationProfile{UserID: userID}
		if raw != nil {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, core.WrapError(core.ErrStoreFailed, err)
			}
		}
		if p.HasDepartment(dept.Name) {
			return nil, core.ErrAlreadyExists
		}
		p.Departments = append(p.Departments, dept)
		return json.Marshal(p)
	})
}

// Strategy returns the user's business strategy.
func (r *RedisStore) Strategy(ctx context.Context, userID string) (*core.BusinessStrategy, error) {
	var s core.BusinessStrategy
	if err := r.get(ctx, strategyKeyPrefix+userID, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveStrategySection upserts one strategy section.
func (r *RedisStore) SaveStrategySection(ctx context.Context, userID string, dataType core.DataType, value any) error {
	return r.update(ctx, strategyKeyPrefix+userID, func(raw []byte) ([]byte, error) {
		s := core.BusinessStrategy{UserID: userID}
		if raw != nil {
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, core.WrapError(core.ErrStoreFailed, err)
			}
		}
		if err := setStrategySection(&s, dataType, value); err != nil {
			return nil, err
		}
		return json.Marshal(s)
	})
}

func (r *RedisStore) get(ctx context.Context, key string, out any) error {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return core.ErrProfileNotFound
	}
	if err != nil {
		return core.WrapError(core.ErrStoreFailed, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return core.WrapError(core.ErrStoreFailed, err)
	}
	return nil
}

// update runs a watched read-modify-write on one document key, retrying a
// handful of times when a concurrent write invalidates the transaction.
func (r *RedisStore) update(ctx context.Context, key string, modify func(raw []byte) ([]byte, error)) error {
	const maxRetries = 5

	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			raw = nil
		} else if err != nil {
			return core.WrapError(core.ErrStoreFailed, err)
		}

		next, err := modify(raw)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxRetries; i++ {
		err := r.client.Watch(ctx, txn, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return core.WrapError(core.ErrStoreFailed, fmt.Errorf("too many conflicts updating %s", key))
}
