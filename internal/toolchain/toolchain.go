package toolchain

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/proseby/devkit/internal/runner"
)

// Requirement is a tool that must be installed at or above Minimum.
type Requirement struct {
	Name    string
	Minimum string
	// Probe prints the installed version on stdout.
	Probe runner.Command
}

// NodeRequirement is the Node.js floor for the workspace.
var NodeRequirement = Requirement{
	Name:    "Node.js",
	Minimum: "18.0.0",
	Probe:   runner.Cmd("node", "--version"),
}

// PnpmVersion is the pnpm release installed when pnpm is missing.
const PnpmVersion = "8.15.1"

var (
	pnpmProbe   = runner.Cmd("pnpm", "--version")
	pnpmInstall = runner.Cmd("npm", "install", "-g", "pnpm@"+PnpmVersion)
)

// VersionError reports an unmet Requirement.
type VersionError struct {
	Requirement Requirement
	// Detected is the raw version string, or empty if the tool could not be queried.
	Detected string
	Err      error
}

func (e *VersionError) Error() string {
	detected := e.Detected
	if detected == "" {
		detected = "not found"
	}
	msg := fmt.Sprintf("%s %s required. Current: %s", e.Requirement.Name, e.Requirement.Label(), detected)
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

func (e *VersionError) Unwrap() error { return e.Err }

// Label renders the minimum the way users read it: "18+" for a bare major.
func (r Requirement) Label() string {
	v, err := ParseVersion(r.Minimum)
	if err != nil {
		return r.Minimum + "+"
	}
	if v.Minor() == 0 && v.Patch() == 0 {
		return fmt.Sprintf("%d+", v.Major())
	}
	return v.String() + "+"
}

// Satisfied checks a detected version string against the minimum. A minimum
// that is a bare major ("18.0.0") only gates on the major number, so
// prereleases and nightlies of that major are accepted.
func (r Requirement) Satisfied(detected string) error {
	min, err := ParseVersion(r.Minimum)
	if err != nil {
		return fmt.Errorf("parsing minimum %s version %q: %w", r.Name, r.Minimum, err)
	}
	v, err := ParseVersion(detected)
	if err != nil {
		return &VersionError{Requirement: r, Detected: detected, Err: err}
	}
	if min.Minor() == 0 && min.Patch() == 0 && min.Prerelease() == "" {
		if v.Major() < min.Major() {
			return &VersionError{Requirement: r, Detected: detected}
		}
		return nil
	}
	if v.LessThan(min) {
		return &VersionError{Requirement: r, Detected: detected}
	}
	return nil
}

// Check runs the requirement's probe and verifies the reported version.
// It returns the detected version string on success.
func (r Requirement) Check(ctx context.Context, run runner.Runner) (string, error) {
	out, err := run.Output(ctx, r.Probe)
	if err != nil {
		return "", &VersionError{Requirement: r, Err: err}
	}
	detected := firstLine(out)
	if err := r.Satisfied(detected); err != nil {
		return "", err
	}
	return detected, nil
}

// ParseVersion strips a leading "v" and parses the version string.
func ParseVersion(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
}

// DetectPnpm returns the installed pnpm version.
func DetectPnpm(ctx context.Context, run runner.Runner) (string, error) {
	out, err := run.Output(ctx, pnpmProbe)
	if err != nil {
		return "", err
	}
	return firstLine(out), nil
}

// InstallPnpm installs the pinned pnpm release globally through npm.
func InstallPnpm(ctx context.Context, run runner.Runner) error {
	return run.Run(ctx, pnpmInstall)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
