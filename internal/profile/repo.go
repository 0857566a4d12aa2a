package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/lsatarcade/internal/store"
)

// StorageKey is the namespaced key the profile lives under.
const StorageKey = "lsat_arcade_profile_v1"

// Repo loads and saves the profile through a key-value store.
type Repo struct {
	kv     store.KVRepo
	logger *slog.Logger
}

// NewRepo returns a Repo over kv. A nil logger uses slog.Default.
func NewRepo(kv store.KVRepo, logger *slog.Logger) *Repo {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repo{kv: kv, logger: logger}
}

// Load returns the stored profile merged over Default. A missing or
// unreadable record yields Default; only store failures are errors.
func (r *Repo) Load(ctx context.Context) (Profile, error) {
	raw, err := r.kv.Get(ctx, StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("load profile: %w", err)
	}

	p := Default()
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		r.logger.WarnContext(ctx, "profile_corrupt", slog.String("error", err.Error()))
		return Default(), nil
	}
	if p.Level < 1 {
		p.Level = 1
	}
	return p, nil
}

// Save writes p.
func (r *Repo) Save(ctx context.Context, p Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := r.kv.Put(ctx, StorageKey, string(b)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Reset discards the stored profile so the next Load returns Default.
func (r *Repo) Reset(ctx context.Context) error {
	if err := r.kv.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("reset profile: %w", err)
	}
	return nil
}

// Update loads the profile, applies fn and saves the result.
func (r *Repo) Update(ctx context.Context, fn func(Profile) Profile) (Profile, error) {
	p, err := r.Load(ctx)
	if err != nil {
		return p, err
	}
	p = fn(p)
	return p, r.Save(ctx, p)
}
