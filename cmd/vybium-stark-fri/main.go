package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vybium-stark-fri:", err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:           "vybium-stark-fri",
		Short:         "Generates and verifies STARK proofs over the Goldilocks field",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.PersistentFlags().Bool(VerboseKey, false, "Enable debug logging")
	c.AddCommand(
		proveCommand(),
		verifyCommand(),
		inspectCommand(),
	)
	return c
}

func newLogger(c *cobra.Command) (*zap.Logger, error) {
	verbose, err := c.Flags().GetBool(VerboseKey)
	if err != nil {
		return nil, err
	}
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
