package bootstrap

import (
	"fmt"

	"github.com/proseby/devkit/internal/envfile"
	"github.com/proseby/devkit/internal/presenter"
)

var nextSteps = []string{
	"Update " + envfile.LocalFile + " with your API keys and database credentials",
	"Start the database: docker-compose up -d",
	"Start development: pnpm dev",
	"Open browser: http://localhost:3000",
}

var usefulCommands = [][2]string{
	{"pnpm dev", "Start all dev servers"},
	{"pnpm dev:web", "Start only web app"},
	{"pnpm db:studio", "Open database studio"},
	{"pnpm type-check", "Check TypeScript"},
	{"pnpm test", "Run tests"},
}

// PrintSummary prints the manual follow-up steps after a successful setup.
func PrintSummary(out presenter.Presenter) {
	out.Info("🎉 Setup complete!")
	out.Blank()

	out.Section("📝 Next steps")
	for i, s := range nextSteps {
		out.Info(fmt.Sprintf("%d. %s", i+1, s))
	}
	out.Blank()

	out.Section("📚 Useful commands")
	for _, c := range usefulCommands {
		out.Info(fmt.Sprintf("- %-24s # %s", c[0], c[1]))
	}
}
