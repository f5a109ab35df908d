// Package hcl provides the concrete HCL implementation for the grid loading
// and expression evaluation interfaces defined in the `config` package. It
// is responsible for all file parsing, HCL-to-model translation, and
// CTY-to-Go data binding.
package hcl
