package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erg0nix/ralphed/internal/config"
	"github.com/erg0nix/ralphed/internal/exec"
	"github.com/erg0nix/ralphed/internal/templates"
)

type App struct {
	Config     config.Config
	ConfigPath string
}

func newApp() (*App, error) {
	configPath := config.DefaultPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg = config.LoadFromEnv(cfg)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	})))

	return &App{
		Config:     cfg,
		ConfigPath: configPath,
	}, nil
}

func (a *App) wizard(out io.Writer) *Wizard {
	return &Wizard{
		Out:       out,
		Config:    a.Config,
		Templates: templates.Bundled(),
		Runner:    exec.NewOSRunner(),
		Prompter:  formPrompter{accessible: !isInteractive(), in: os.Stdin, out: os.Stdout},
	}
}
