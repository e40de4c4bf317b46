// Package scaffold creates placeholder workspace packages. The package list,
// manifest fields and lifecycle scripts come from the embedded packages.yaml
// table; Generate walks that table with no per-package special cases and
// only writes files that are missing.
package scaffold
