// Package platform holds the permission modes used for generated files and
// a chmod wrapper that is a no-op on Windows.
package platform
