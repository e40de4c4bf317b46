package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "proseby" {
		t.Errorf("CLIName() = %q, want %q", got, "proseby")
	}
	if got := NPMScope(); got != "@proseby" {
		t.Errorf("NPMScope() = %q, want %q", got, "@proseby")
	}
	if got := HomeDir(); got != ".proseby" {
		t.Errorf("HomeDir() = %q, want %q", got, ".proseby")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("color"); got != "PROSEBY_COLOR" {
		t.Errorf("EnvVar(color) = %q, want PROSEBY_COLOR", got)
	}
}
