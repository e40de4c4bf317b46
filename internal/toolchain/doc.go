// Package toolchain verifies the external tools the monorepo depends on.
// Node.js is gated on a semver minimum; pnpm is detected and, when missing,
// installed at a pinned release through npm.
package toolchain
