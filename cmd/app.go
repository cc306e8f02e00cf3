// Package cmd implements the ptk command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/pricetrack"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "prices")
	c.Register(&chartsCmd{}, "prices")
	c.Register(&showCmd{}, "prices")
	c.Register(&fmtCmd{}, "prices")

	c.Register(&exportCmd{}, "data")
	c.Register(&serveCmd{}, "data")

	c.Register(&topicCmd{}, "help")
}

const (
	EnvDataDir    = "PTK_DATA_DIR"
	EnvLedgerFile = "PTK_LEDGER_FILE"
	EnvCurrency   = "PTK_CURRENCY"
	EnvCategories = "PTK_CATEGORIES"
	EnvLogLevel   = "PTK_LOG_LEVEL"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", "", "Folder of the published artifacts (default $"+EnvDataDir+" or \"data\")")
var ledgerFile = flag.String("ledger-file", "", "Path to the price ledger (default $"+EnvLedgerFile+" or <data-dir>/precios_compacto.csv)")
var logLevel = flag.String("log-level", "", "Log level: debug, info, warn or error (default $"+EnvLogLevel+" or \"info\")")
var plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")

// Init loads the optional .env file and installs the default logger.
// It must be called after the flags are parsed.
func Init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: cannot load .env file: %v\n", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(setting(*logLevel, EnvLogLevel, "info"))); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("run", uuid.NewString()))
}

// setting returns the flag value if set, then the environment variable, then the default value.
func setting(flagValue, env, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		return v
	}
	return defaultValue
}

// artifactsDir returns the folder of the published artifacts.
func artifactsDir() string { return setting(*dataDir, EnvDataDir, "data") }

// ledgerPath returns the ledger file name.
func ledgerPath() string {
	return setting(*ledgerFile, EnvLedgerFile, filepath.Join(artifactsDir(), "precios_compacto.csv"))
}

// config returns the engine configuration, with the environment overrides.
func config() pricetrack.Config {
	cfg := pricetrack.DefaultConfig()
	cfg.Currency = setting("", EnvCurrency, cfg.Currency)
	if v := setting("", EnvCategories, ""); v != "" {
		cfg.Categories = cfg.Categories[:0]
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cfg.Categories = append(cfg.Categories, c)
			}
		}
	}
	return cfg
}

// openLedger loads the ledger file, or returns an empty ledger if it does not exist yet.
func openLedger() (*pricetrack.Ledger, error) {
	l, err := pricetrack.LoadLedger(ledgerPath())
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("create-ledger", "name", ledgerPath())
		return pricetrack.NewLedger(), nil
	}
	return l, err
}

// printMarkdown renders markdown for the terminal.
func printMarkdown(md string) {
	if *plain {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		slog.Warn("render-markdown", "error", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
