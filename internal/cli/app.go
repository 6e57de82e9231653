// Package cli implements the interactive migration wizard: an operator
// console that adjusts source connection parameters and triggers the run.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dkazarin/mpdbmigrate/internal/config"
	"github.com/dkazarin/mpdbmigrate/internal/logging"
	"github.com/dkazarin/mpdbmigrate/internal/migrator"
)

type App struct {
	surface  *config.Surface
	migrator *migrator.Migrator
	log      logging.Logger
}

func NewApp(cfg *config.Config, m *migrator.Migrator, log logging.Logger) *App {
	return &App{surface: config.NewSurface(cfg, m), migrator: m, log: log}
}

// Run prints the wizard text and enters the console loop. It returns when
// the operator exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	printlnFn(a.Describe())
	runREPL(ctx, a, bufio.NewScanner(os.Stdin))
}

// Set applies one "set <parameter> <value>" command and reports the outcome
// with the value masked, so secrets never echo back in full.
func (a *App) Set(name, value string) {
	if err := a.surface.Set(name, value); err != nil {
		printlnFn(fmt.Sprintf("Could not set %s to %s: %v", name, config.Obfuscate(value), err))
		return
	}
	printlnFn(fmt.Sprintf("Successfully set %s to %s", name, config.Obfuscate(value)))
}

// PromptSecret reads a parameter value from the terminal without echo and
// applies it. Used for "set password" with no inline value.
func (a *App) PromptSecret(name string) {
	secret, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn(fmt.Sprintf("Could not read %s: %v", name, err))
		return
	}
	a.Set(name, string(secret))
}

// Start runs the migration and prints its summary. Fatal failures (wipe or
// extraction errors) surface here as a failed run.
func (a *App) Start(ctx context.Context) {
	summary, err := a.migrator.Run(ctx)
	if err != nil {
		a.log.Error(ctx, "migration failed", "err", err)
		printlnFn(fmt.Sprintf("Migration failed: %v", err))
		return
	}

	printlnFn(fmt.Sprintf("Migration complete: %d players processed, %d succeeded, %d failed in %s",
		summary.Processed, summary.Succeeded, summary.Failed, summary.Elapsed.Round(time.Millisecond)))
	for _, f := range summary.Failures {
		printlnFn(fmt.Sprintf("  failed: %s (%s): %v", f.Name, f.UserID, f.Err))
	}
}

// Describe renders the wizard status text with masked parameters.
func (a *App) Describe() string {
	return a.surface.Describe()
}
