package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	stark "github.com/vybium/vybium-stark-fri/pkg/vybium-stark-fri"
)

var errRejected = errors.New("proof rejected")

func verifyCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "verify <proof>",
		Short: "Verifies a proof against the statement given by the flags",
		Args:  cobra.ExactArgs(1),
		RunE:  verifyFunc,
	}
	flags := c.Flags()
	AddConfigFlags(flags)
	AddAIRFlags(flags)
	return c
}

func verifyFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	cfg, err := ParseConfig(flags)
	if err != nil {
		return err
	}
	stmt, err := ParseStatement(flags)
	if err != nil {
		return err
	}

	log, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	proof, err := stark.DecodeProof(data)
	if err != nil {
		return err
	}
	ok, err := stark.Verify(cfg, stmt.AIR, proof, stark.WithLogger(log))
	if err != nil {
		return err
	}
	if !ok {
		return errRejected
	}
	log.Info("proof accepted", zap.String("air", stmt.Name), zap.String("path", args[0]))
	return nil
}
