package database

import (
	"fmt"
	"sync"
	"time"
)

// storePool caches the Store handle across warm serverless invocations so
// each request does not reopen connections.
type storePool struct {
	instance Store
	config   StoreConfig
	lastUsed time.Time
}

var (
	globalPool *storePool
	poolMutex  sync.Mutex
)

// GetStore returns the process-wide Store, creating it on first use and
// recreating it when the configuration changes or the handle goes
// unhealthy.
func GetStore(config StoreConfig) Store {
	poolMutex.Lock()
	defer poolMutex.Unlock()

	if globalPool != nil && globalPool.config == config {
		if err := globalPool.instance.HealthCheck(); err == nil {
			globalPool.lastUsed = time.Now()
			return globalPool.instance
		}
		fmt.Printf("❌ Cached store unhealthy, reconnecting\n")
		globalPool.instance.Close()
		globalPool = nil
	}

	if globalPool != nil {
		// Config changed; drop the old handle.
		globalPool.instance.Close()
	}

	globalPool = &storePool{
		instance: NewStore(config),
		config:   config,
		lastUsed: time.Now(),
	}
	return globalPool.instance
}
