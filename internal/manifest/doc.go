// Package manifest models the package.json files generated for workspace
// packages. It renders them with a stable key order and validates them
// against the embedded JSON Schema in schema/package.schema.json.
package manifest
