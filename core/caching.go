package core

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/schema"
)

// currentCacheVersion defines the version of the cached numstat payload.
const currentCacheVersion = 2

// numstatReader runs `git diff --numstat`, consulting the cache store when one is configured.
// Cache entries are keyed by commit hashes, so they never go stale.
type numstatReader struct {
	cfg    *contract.Config
	client contract.GitClient
	store  contract.CacheStore // nil disables caching
	hashes map[string]string
}

// newNumstatReader builds a reader. A nil manager or the none backend disables caching.
func newNumstatReader(cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) *numstatReader {
	r := &numstatReader{cfg: cfg, client: client, hashes: make(map[string]string)}
	if mgr != nil && cfg.CacheBackend != schema.NoneBackend {
		r.store = mgr.GetNumstatStore()
	}
	return r
}

// read returns numstat output for base<sep>branch limited to paths.
// keys are the repository-relative forms of paths and make the cache key independent of the working directory.
func (r *numstatReader) read(ctx context.Context, base, branch string, paths, keys []string) ([]byte, error) {
	revRange := base + r.cfg.DiffMode.RangeSeparator() + branch
	if r.store == nil {
		return r.client.DiffNumstat(ctx, r.cfg.RepoPath, revRange, paths)
	}

	key, err := r.cacheKey(ctx, base, branch, keys)
	if err != nil {
		contract.LogWarn("Cannot resolve refs for caching", err)
		return r.client.DiffNumstat(ctx, r.cfg.RepoPath, revRange, paths)
	}
	if data, ok := checkCacheHit(r.store, key); ok {
		return data, nil
	}

	out, err := r.client.DiffNumstat(ctx, r.cfg.RepoPath, revRange, paths)
	if err != nil {
		return nil, err
	}
	if err := r.store.Set(key, out, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("Cannot store numstat in cache", err)
	}
	return out, nil
}

// resolve returns the commit hash for ref, memoized for the lifetime of the reader.
func (r *numstatReader) resolve(ctx context.Context, ref string) (string, error) {
	if hash, ok := r.hashes[ref]; ok {
		return hash, nil
	}
	hash, err := r.client.ResolveRef(ctx, r.cfg.RepoPath, ref)
	if err != nil {
		return "", err
	}
	r.hashes[ref] = hash
	return hash, nil
}

// cacheKey builds the storage key from the diff mode, both commit hashes and the path keys.
func (r *numstatReader) cacheKey(ctx context.Context, base, branch string, keys []string) (string, error) {
	baseHash, err := r.resolve(ctx, base)
	if err != nil {
		return "", err
	}
	branchHash, err := r.resolve(ctx, branch)
	if err != nil {
		return "", err
	}
	return generateCacheKey(r.cfg.DiffMode, baseHash, branchHash, keys), nil
}

// generateCacheKey hashes the inputs that fully determine a numstat result.
func generateCacheKey(mode schema.DiffMode, baseHash, branchHash string, keys []string) string {
	raw := fmt.Sprintf("%s|%s|%s|%s", mode, baseHash, branchHash, strings.Join(keys, "\x00"))
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}

// checkCacheHit returns cached output when present with the current version.
func checkCacheHit(store contract.CacheStore, key string) ([]byte, bool) {
	data, version, _, err := store.Get(key)
	if err != nil || version != currentCacheVersion {
		return nil, false
	}
	return data, true
}
