// Package cli defines the Cobra command tree for the proseby CLI. Each file
// in this package registers one command with the root command. Commands parse
// flags and format output; the work itself lives in the bootstrap, dbcheck and
// doctor packages.
package cli
