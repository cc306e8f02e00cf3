package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// RunExtension attempts to find and execute an external ptk-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The extension receives the resolved global settings as environment
// variables, so it reads the same ledger and artifacts as ptk would.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "ptk-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		slog.Debug("extension-not-found", "name", name, "error", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		EnvDataDir+"="+artifactsDir(),
		EnvLedgerFile+"="+ledgerPath(),
		EnvCurrency+"="+config().Currency,
		EnvLogLevel+"="+setting(*logLevel, EnvLogLevel, "info"),
	)

	slog.Debug("run-extension", "name", lp, "args", args)
	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing extension %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
