// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by "dtags config KEY [VALUE]".
//
// Design: Pointers are used for boolean fields so we can distinguish between
// "not set" (nil) and "explicitly set to false". Defaults are only applied
// when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{"colour", "editor", "shell", "confirm", "log"}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the effective value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "colour":
		return c.ColourMode(), nil
	case "editor":
		return c.EditorCommand(), nil
	case "shell":
		return c.ShellCommand(), nil
	case "confirm":
		return strconv.FormatBool(c.ConfirmChanges()), nil
	case "log":
		return strconv.FormatBool(c.LogEnabled()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "colour":
		v := strings.ToLower(value)
		if !slices.Contains(ColourModes, v) {
			return fmt.Errorf("%w: colour must be one of %v", ErrInvalidValue, ColourModes)
		}
		c.Colour = v
	case "editor":
		c.Editor = value
	case "shell":
		c.Shell = value
	case "confirm":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Confirm = &b
	case "log":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Log = &b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
}

// All returns all effective configuration values as a map.
func (c *Config) All() map[string]string {
	all := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		all[k], _ = c.Get(k)
	}
	return all
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "colour":
		return c.Colour != ""
	case "editor":
		return c.Editor != ""
	case "shell":
		return c.Shell != ""
	case "confirm":
		return c.Confirm != nil
	case "log":
		return c.Log != nil
	default:
		return false
	}
}
