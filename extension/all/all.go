// Package all imports all core dtags extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/dtags/extension/core"
	_ "github.com/jpl-au/dtags/extension/edit"
	_ "github.com/jpl-au/dtags/extension/manage"
	_ "github.com/jpl-au/dtags/extension/nav"
	_ "github.com/jpl-au/dtags/extension/run"
	_ "github.com/jpl-au/dtags/extension/tag"
)
