package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Environment of the fin-<subcommand> extensions, carrying the global flags.
const (
	EnvDataDir   = "FIN_DATA"
	EnvCurrency  = "FIN_CURRENCY"
	EnvDateField = "FIN_DATE_FIELD"
	EnvLogLevel  = "FIN_LOG_LEVEL"
)

// RunExtension attempts to find and execute an external fin-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(ctx context.Context, subcommand string, args []string) (bool, int) {
	log := FromContext(ctx)
	externalCmdName := "fin-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Debug().Err(err).Str("extension", externalCmdName).Msg("extension not found in PATH")
		return false, 0
	}

	cmd := exec.CommandContext(ctx, lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		EnvDataDir+"="+*dataDir,
		EnvCurrency+"="+*currencyFlag,
		EnvDateField+"="+*dateFieldFlag,
		EnvLogLevel+"="+*logLevel,
	)

	log.Debug().Str("extension", lp).Strs("args", args).Msg("running extension")
	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
