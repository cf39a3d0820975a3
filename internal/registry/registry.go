package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/teenfaith/teenfaith/internal/models"
	"github.com/teenfaith/teenfaith/internal/storage"
)

// Key is the storage key holding the registered accounts.
const Key = "registered_users"

// Registry is the persisted list of registered accounts.
type Registry struct {
	kv storage.KV
	mu sync.Mutex
}

// New creates a registry on top of kv.
func New(kv storage.KV) *Registry {
	return &Registry{kv: kv}
}

// Load returns all records in registration order.
// An absent or malformed value yields an empty slice. Backend failures are returned.
func (r *Registry) Load(ctx context.Context) ([]models.StoredCredential, error) {
	data, err := r.kv.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []models.StoredCredential{}, nil
		}
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	records, err := parse(data)
	if err != nil {
		log.Warn("ignoring malformed registry, the next registration replaces it", "key", Key, "error", err)
		return []models.StoredCredential{}, nil
	}
	return records, nil
}

func parse(data []byte) ([]models.StoredCredential, error) {
	var records []models.StoredCredential
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrMalformed, err)
	}
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	if records == nil {
		records = []models.StoredCredential{}
	}
	return records, nil
}

// Save overwrites the whole registry.
func (r *Registry) Save(ctx context.Context, records []models.StoredCredential) error {
	if records == nil {
		records = []models.StoredCredential{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}
	if err := r.kv.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

// Append adds a record at the end of the registry.
// check runs against the current records under the lock and may veto the append.
func (r *Registry) Append(ctx context.Context, rec models.StoredCredential, check func([]models.StoredCredential) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.Load(ctx)
	if err != nil {
		return err
	}
	if check != nil {
		if err := check(records); err != nil {
			return err
		}
	}
	return r.Save(ctx, append(records, rec))
}

// Users returns the registered accounts without their passwords.
func (r *Registry) Users(ctx context.Context) ([]models.User, error) {
	records, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(records, func(rec models.StoredCredential, _ int) models.User {
		return rec.User()
	}), nil
}

// Reset removes every registered account.
func (r *Registry) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("failed to reset registry: %w", err)
	}
	return nil
}
