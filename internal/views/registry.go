// Package views registers the configured table views.
//
// Every view is a table.Config registered at init time. Import this package
// to make the views available through Get and All.
package views

import (
	"fmt"
	"sync"

	"github.com/JonMunkholm/committees/internal/table"
)

var (
	registry   = make(map[string]table.Config)
	order      []string
	registryMu sync.RWMutex
)

// Register adds a view configuration to the registry.
// Panics if a view with the same key is already registered or the
// configuration is unusable.
func Register(cfg table.Config) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[cfg.Key]; exists {
		panic(fmt.Sprintf("view already registered: %s", cfg.Key))
	}
	if cfg.Endpoint == "" || len(cfg.Columns) == 0 {
		panic(fmt.Sprintf("view %s: endpoint and columns are required", cfg.Key))
	}
	for _, fk := range cfg.FilterKeys {
		if fk.Label == "" {
			panic(fmt.Sprintf("view %s: filter key %s has no label", cfg.Key, fk.Accessor))
		}
	}

	if cfg.Title == "" {
		cfg.Title = cfg.Key
	}
	if cfg.Export.Title == "" {
		cfg.Export.Title = cfg.Title
	}

	registry[cfg.Key] = cfg
	order = append(order, cfg.Key)
}

// Get returns a view configuration by key.
// Returns false if not found.
func Get(key string) (table.Config, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	cfg, ok := registry[key]
	return cfg, ok
}

// All returns every registered view in navigation order.
func All() []table.Config {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]table.Config, 0, len(order))
	for _, key := range order {
		result = append(result, registry[key])
	}
	return result
}

// Keys returns the keys of every registered view in navigation order.
func Keys() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return append([]string(nil), order...)
}

// Endpoints returns the distinct data endpoints used by registered views.
func Endpoints() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, key := range order {
		ep := registry[key].Endpoint
		if !seen[ep] {
			seen[ep] = true
			out = append(out, ep)
		}
	}
	return out
}

// Count returns the number of registered views.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
