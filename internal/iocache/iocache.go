// Package iocache persists fetched catalog data across runs.
package iocache

import (
	"sync"

	"github.com/huangsam/gi/internal/contract"
)

// CacheStoreManager owns the CacheStore used by the running process.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetCacheStore returns the active CacheStore.
func (mgr *CacheStoreManager) GetCacheStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}
