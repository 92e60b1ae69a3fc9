package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zkeep/internal/cli"
	"github.com/zarlcorp/zkeep/internal/config"
	"github.com/zarlcorp/zkeep/internal/form"
	"github.com/zarlcorp/zkeep/internal/tui"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zkeep"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("zkeep %s\n", version)
		_ = app.Close()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fail(app, err)
	}

	env, err := cli.NewEnv(cfg)
	if err != nil {
		fail(app, err)
	}

	if len(os.Args) > 1 {
		if err := runCLI(ctx, env, os.Args[1], os.Args[2:]); err != nil {
			fail(app, err)
		}
		_ = app.Close()
		return
	}

	if err := runTUI(ctx, env); err != nil {
		slog.Error("tui", "err", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runCLI(_ context.Context, env *cli.Env, cmd string, args []string) error {
	return cli.Run(env, cmd, args)
}

func runTUI(ctx context.Context, env *cli.Env) error {
	c := form.New(env.Gen, env.Store, env.Clip, env.Config.Form.DefaultEmail)

	m := tui.New(version, c)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func fail(app io.Closer, err error) {
	fmt.Fprintf(os.Stderr, "zkeep: %v\n", err)
	_ = app.Close()
	os.Exit(1)
}
