package profile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/lsatarcade/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRepo(t *testing.T) (*Repo, store.KVRepo) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "profile.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewRepo(s.KV(), nil), s.KV()
}

func TestRepo_MissingIsDefault(t *testing.T) {
	repo, _ := openRepo(t)

	p, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestRepo_SaveLoad(t *testing.T) {
	repo, _ := openRepo(t)
	ctx := context.Background()

	want := Profile{XP: 40, Level: 3, Streak: 2, Lives: 1, Coins: 99, LastPlayed: strPtr("2026-03-10")}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepo_MergesOverDefaults(t *testing.T) {
	repo, kv := openRepo(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, StorageKey, `{"xp":30,"coins":7}`))

	p, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, p.XP)
	assert.Equal(t, 7, p.Coins)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, MaxLives, p.Lives)
	assert.Nil(t, p.LastPlayed)
}

func TestRepo_CorruptIsDefault(t *testing.T) {
	repo, kv := openRepo(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, StorageKey, `{not json`))

	p, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestRepo_ResetAndUpdate(t *testing.T) {
	repo, _ := openRepo(t)
	ctx := context.Background()

	p, err := repo.Update(ctx, func(p Profile) Profile { return p.LoseLife() })
	require.NoError(t, err)
	assert.Equal(t, MaxLives-1, p.Lives)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, MaxLives-1, loaded.Lives)

	require.NoError(t, repo.Reset(ctx))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, error) { return "", errors.New("disk gone") }
func (failingKV) Put(context.Context, string, string) error    { return errors.New("disk gone") }
func (failingKV) Delete(context.Context, string) error         { return errors.New("disk gone") }

func TestRepo_StoreErrors(t *testing.T) {
	repo := NewRepo(failingKV{}, nil)
	ctx := context.Background()

	p, err := repo.Load(ctx)
	assert.Error(t, err)
	assert.Equal(t, Default(), p)
	assert.Error(t, repo.Save(ctx, Default()))
	assert.Error(t, repo.Reset(ctx))
}
