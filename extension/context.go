// context.go defines the Context interface for extension access to dtags internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context provides a controlled surface area for extensions - they can
// access what they need without reaching into arbitrary internals.
//
// Design: Context uses an interface to enable testing with stub implementations.
// Extensions receive Context during Init(), not at construction, because the
// store root depends on flags that are parsed after registration.

package extension

import (
	"github.com/jpl-au/dtags/internal/config"
	"github.com/jpl-au/dtags/internal/store"
)

// Context provides extensions controlled access to dtags internals.
type Context interface {
	// Store returns the mapping store for the resolved root.
	Store() *store.Store

	// Config returns user configuration for respecting user preferences.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	st  *store.Store
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(st *store.Store, cfg *config.Config) Context {
	return &extContext{st: st, cfg: cfg}
}

// Store returns the mapping store.
func (c *extContext) Store() *store.Store {
	return c.st
}

// Config returns the loaded user configuration.
func (c *extContext) Config() *config.Config {
	return c.cfg
}
