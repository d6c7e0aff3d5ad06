package plugin

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/dbmeta/pkg/core"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

func normalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// Register adds a plugin factory to the registry.
// Called by engine packages in their init() functions.
func Register(key string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[normalizeKey(key)] = factory
}

// Resolve returns the factory registered for key. Keys are case-insensitive.
func Resolve(key string) (Factory, error) {
	norm := normalizeKey(key)
	if norm == "" {
		return nil, &core.ConfigError{Msg: "plugin key not specified"}
	}

	registryMu.RLock()
	f, ok := registry[norm]
	registryMu.RUnlock()
	if !ok {
		return nil, &core.UnknownPluginError{Key: norm, Available: List()}
	}
	return f, nil
}

// New resolves key and builds a plugin that owns its own copy of params.
// On any error no plugin is returned. Instances are never cached.
func New(key string, params core.ConnectionParams, logger *slog.Logger) (Plugin, error) {
	factory, err := Resolve(key)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p, err := factory(params.Clone(), logger)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all registered plugin keys (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsRegistered checks if a plugin key is registered.
func IsRegistered(key string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[normalizeKey(key)]
	return ok
}
