// Package bootstrap runs the workspace setup procedure: a fixed, ordered list
// of idempotent steps executed one after another. The first failing step ends
// the run; nothing is retried and completed steps are not rolled back, so a
// user fixes the cause and runs the procedure again.
package bootstrap
