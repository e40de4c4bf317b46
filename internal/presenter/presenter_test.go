package presenter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPresenter() (*TerminalPresenter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewWithOptions(&out, &errOut, ColorNever), &out, &errOut
}

func TestMarkers(t *testing.T) {
	p, out, errOut := newTestPresenter()

	p.Step("Installing dependencies")
	p.Success("Installing dependencies completed")
	p.Warning("Please update .env.local with your actual credentials")
	p.Error(errors.New("exit status 1"), "Installing dependencies failed")

	assert.Contains(t, out.String(), "📦 Installing dependencies...\n")
	assert.Contains(t, out.String(), "✅ Installing dependencies completed\n")
	assert.Contains(t, out.String(), "⚠️  Please update .env.local")
	assert.Equal(t, "❌ Installing dependencies failed: exit status 1\n", errOut.String())
}

func TestError_NilIsIgnored(t *testing.T) {
	p, _, errOut := newTestPresenter()
	p.Error(nil, "anything")
	assert.Empty(t, errOut.String())
}

func TestSection(t *testing.T) {
	p, out, _ := newTestPresenter()
	p.Section("Next steps")
	assert.Equal(t, "Next steps\n----------\n", out.String())
}

func TestDetectColorMode(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, ColorNever, detectColorMode())

	t.Setenv("NO_COLOR", "")
	t.Setenv("PROSEBY_COLOR", "always")
	assert.Equal(t, ColorAlways, detectColorMode())

	t.Setenv("PROSEBY_COLOR", "")
	assert.Equal(t, ColorAuto, detectColorMode())
}
