// Package config defines the format-agnostic model of a grid configuration
// and the interfaces a format-specific loader must implement. The engine
// depends only on this package, never on a concrete configuration syntax.
package config
