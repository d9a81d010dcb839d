// Package iocache is for caching git numstat output across runs.
package iocache

import (
	"sync"

	"github.com/huangsam/gitactivity/internal/contract"
)

// CacheStoreManager manages the CacheStore instances used by a run.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	numstat      contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetNumstatStore returns the numstat CacheStore, or nil when caching is not initialized.
func (mgr *CacheStoreManager) GetNumstatStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.numstat
}
