// Package app composes the configuration loader, build engine and process
// capabilities into one runnable application, and owns logger construction.
package app
