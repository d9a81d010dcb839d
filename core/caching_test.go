package core

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/internal/iocache"
	"github.com/huangsam/gitactivity/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateCacheKey(t *testing.T) {
	base := generateCacheKey(schema.MergeBaseDiff, "aaa", "bbb", []string{"src/a.py"})
	assert.Len(t, base, 64)
	assert.Equal(t, base, generateCacheKey(schema.MergeBaseDiff, "aaa", "bbb", []string{"src/a.py"}))

	assert.NotEqual(t, base, generateCacheKey(schema.DirectDiff, "aaa", "bbb", []string{"src/a.py"}))
	assert.NotEqual(t, base, generateCacheKey(schema.MergeBaseDiff, "aab", "bbb", []string{"src/a.py"}))
	assert.NotEqual(t, base, generateCacheKey(schema.MergeBaseDiff, "aaa", "bbb", []string{"src/b.py"}))
	assert.NotEqual(t,
		generateCacheKey(schema.MergeBaseDiff, "aaa", "bbb", []string{"a", "b"}),
		generateCacheKey(schema.MergeBaseDiff, "aaa", "bbb", []string{"a b"}))
}

func TestNewNumstatReader(t *testing.T) {
	client := &contract.MockGitClient{}
	store := &iocache.MockCacheStore{}
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetNumstatStore").Return(store)

	r := newNumstatReader(&contract.Config{CacheBackend: schema.NoneBackend}, client, mgr)
	assert.Nil(t, r.store, "none backend never asks the manager")

	r = newNumstatReader(&contract.Config{CacheBackend: schema.SQLiteBackend}, client, nil)
	assert.Nil(t, r.store)

	r = newNumstatReader(&contract.Config{CacheBackend: schema.SQLiteBackend}, client, mgr)
	assert.Equal(t, store, r.store)
	mgr.AssertNumberOfCalls(t, "GetNumstatStore", 1)
}

func TestNumstatReaderCaching(t *testing.T) {
	ctx := context.Background()
	cfg := &contract.Config{RepoPath: "/repo", DiffMode: schema.MergeBaseDiff, CacheBackend: schema.SQLiteBackend}
	paths := []string{"a.py"}
	keys := []string{"src/a.py"}
	key := generateCacheKey(schema.MergeBaseDiff, "h-main", "h-x", keys)

	setup := func() (*contract.MockGitClient, *iocache.MockCacheStore, *numstatReader) {
		client := &contract.MockGitClient{}
		client.On("ResolveRef", mock.Anything, "/repo", "main").Return("h-main", nil)
		client.On("ResolveRef", mock.Anything, "/repo", "origin/x").Return("h-x", nil)
		store := &iocache.MockCacheStore{}
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetNumstatStore").Return(store)
		return client, store, newNumstatReader(cfg, client, mgr)
	}

	t.Run("hit skips git diff", func(t *testing.T) {
		client, store, r := setup()
		store.On("Get", key).Return([]byte("10\t2\tsrc/a.py\n"), currentCacheVersion, int64(100), nil)

		out, err := r.read(ctx, "main", "origin/x", paths, keys)
		require.NoError(t, err)
		assert.Equal(t, "10\t2\tsrc/a.py\n", string(out))
		client.AssertNotCalled(t, "DiffNumstat", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("miss runs git and stores", func(t *testing.T) {
		client, store, r := setup()
		store.On("Get", key).Return(nil, 0, int64(0), sql.ErrNoRows)
		client.On("DiffNumstat", mock.Anything, "/repo", "main...origin/x", paths).Return([]byte("1\t1\tsrc/a.py\n"), nil).Once()
		store.On("Set", key, []byte("1\t1\tsrc/a.py\n"), currentCacheVersion, mock.AnythingOfType("int64")).Return(nil)

		out, err := r.read(ctx, "main", "origin/x", paths, keys)
		require.NoError(t, err)
		assert.Equal(t, "1\t1\tsrc/a.py\n", string(out))
		store.AssertExpectations(t)
		client.AssertExpectations(t)
	})

	t.Run("stale version is a miss", func(t *testing.T) {
		client, store, r := setup()
		store.On("Get", key).Return([]byte("old"), currentCacheVersion+1, int64(100), nil)
		client.On("DiffNumstat", mock.Anything, "/repo", "main...origin/x", paths).Return([]byte("fresh"), nil).Once()
		store.On("Set", key, []byte("fresh"), currentCacheVersion, mock.AnythingOfType("int64")).Return(nil)

		out, err := r.read(ctx, "main", "origin/x", paths, keys)
		require.NoError(t, err)
		assert.Equal(t, "fresh", string(out))
	})

	t.Run("write failure still returns output", func(t *testing.T) {
		client, store, r := setup()
		store.On("Get", key).Return(nil, 0, int64(0), sql.ErrNoRows)
		client.On("DiffNumstat", mock.Anything, "/repo", "main...origin/x", paths).Return([]byte("2\t0\tsrc/a.py\n"), nil)
		store.On("Set", key, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

		out, err := r.read(ctx, "main", "origin/x", paths, keys)
		require.NoError(t, err)
		assert.Equal(t, "2\t0\tsrc/a.py\n", string(out))
	})

	t.Run("unresolvable ref falls back to git", func(t *testing.T) {
		client := &contract.MockGitClient{}
		client.On("ResolveRef", mock.Anything, "/repo", "main").Return("", errors.New("bad ref"))
		client.On("DiffNumstat", mock.Anything, "/repo", "main...origin/x", paths).Return([]byte("3\t3\tsrc/a.py\n"), nil)
		store := &iocache.MockCacheStore{}
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetNumstatStore").Return(store)
		r := newNumstatReader(cfg, client, mgr)

		out, err := r.read(ctx, "main", "origin/x", paths, keys)
		require.NoError(t, err)
		assert.Equal(t, "3\t3\tsrc/a.py\n", string(out))
		store.AssertNotCalled(t, "Get", mock.Anything)
	})

	t.Run("refs are resolved once", func(t *testing.T) {
		client, store, r := setup()
		store.On("Get", key).Return([]byte(""), currentCacheVersion, int64(1), nil)

		for range 3 {
			_, err := r.read(ctx, "main", "origin/x", paths, keys)
			require.NoError(t, err)
		}
		client.AssertNumberOfCalls(t, "ResolveRef", 2)
	})
}
