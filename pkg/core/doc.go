// Package core defines the shared language of dbmeta.
//
// This package contains:
//   - Object descriptors (Table, View, Index, Sequence, Function, Column, ...)
//   - Connection parameters and list filters
//   - The error taxonomy shared by plugins, handlers, generators and the binder
//
// The Golden Rule: pkg/core imports ONLY pkg/types, shopspring/decimal and stdlib.
// All other packages depend on core, not the reverse.
package core
