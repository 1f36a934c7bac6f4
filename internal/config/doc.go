// Package config manages initkit settings. Values are layered, lowest to
// highest precedence: built-in defaults, the optional per-repository
// .initkit.yaml, INITKIT_* environment variables, and explicitly set
// command flags.
package config
