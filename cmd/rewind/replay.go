package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rewind/internal/config"
	"rewind/internal/loader"
	"rewind/internal/replay"
	"rewind/internal/trace"
	"rewind/internal/writer"
)

// resolveTracePath applies the path precedence: explicit argument,
// then the environment variable, then the default.
func resolveTracePath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if env := os.Getenv(writer.EnvPath); env != "" {
		return env
	}
	return writer.DefaultPath
}

// loadTrace loads the trace honouring the --no-cache flag.
func loadTrace(cmd *cobra.Command, path string) ([]trace.Event, error) {
	noCache, err := cmd.Root().PersistentFlags().GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if noCache {
		return loader.Load(path)
	}
	cache, err := loader.OpenIndexCache("rewind")
	if err != nil {
		// Недоступный кеш не повод не открывать трейс
		return loader.Load(path)
	}
	return cache.LoadCached(path)
}

func runReplay(cmd *cobra.Command, args []string) error {
	path := resolveTracePath(args)

	events, err := loadTrace(cmd, path)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("no trace at %s (run an instrumented program first)", path)
	}

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	opts := replay.Options{
		Title:     "rewind · " + filepath.Base(path),
		VarsWidth: cfg.Replay.VarsPaneWidth,
		PageStep:  cfg.Replay.PageStep,
		Margin:    cfg.Replay.ScrollMargin,
	}

	// Проверяем терминал до входа в альтернативный экран
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("stdout is not a terminal")
	}
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return fmt.Errorf("failed to query terminal size: %w", err)
	}
	if width < replay.MinWidth(opts) || height < replay.MinHeight {
		return fmt.Errorf("terminal %dx%d is too small (need at least %dx%d)",
			width, height, replay.MinWidth(opts), replay.MinHeight)
	}

	return replay.Run(events, opts)
}
