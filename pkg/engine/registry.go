package engine

import (
	"log/slog"

	"github.com/herlein/radiocfg/pkg/descriptor"
	"github.com/herlein/radiocfg/pkg/txpower"
)

// Registry creates engines on demand and keeps one per setting. Every engine
// of a registry shares the TX power cache and high-PA state.
type Registry struct {
	deps    Deps
	engines map[string]*Engine
}

// NewRegistry returns an empty registry
func NewRegistry(deps Deps) *Registry {
	deps.setDefaults()
	return &Registry{
		deps:    deps,
		engines: make(map[string]*Engine),
	}
}

// Get returns the engine of a setting, creating it on first use
func (r *Registry) Get(group descriptor.Group, setting string) (*Engine, error) {
	if _, err := descriptor.ParseGroup(string(group)); err != nil {
		return nil, err
	}
	if e, ok := r.engines[setting]; ok {
		return e, nil
	}

	e, err := New(group, setting, r.deps)
	if err != nil {
		return nil, err
	}
	r.engines[setting] = e
	r.deps.Logger.Debug("engine registered",
		slog.String("group", string(group)),
		slog.String("setting", setting))
	return e, nil
}

// Cache returns the shared TX power cache
func (r *Registry) Cache() *txpower.Cache {
	return r.deps.Cache
}
