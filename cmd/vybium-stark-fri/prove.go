package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	stark "github.com/vybium/vybium-stark-fri/pkg/vybium-stark-fri"
)

func proveCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "prove",
		Short: "Generates a proof for one of the built-in AIRs",
		Args:  cobra.NoArgs,
		RunE:  proveFunc,
	}
	flags := c.Flags()
	AddConfigFlags(flags)
	AddAIRFlags(flags)
	flags.String(OutKey, "proof.bin", "File the compressed proof is written to")
	return c
}

func proveFunc(c *cobra.Command, _ []string) error {
	flags := c.Flags()
	cfg, err := ParseConfig(flags)
	if err != nil {
		return err
	}
	stmt, err := ParseStatement(flags)
	if err != nil {
		return err
	}
	out, err := flags.GetString(OutKey)
	if err != nil {
		return err
	}

	log, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	trace, err := stmt.Trace()
	if err != nil {
		return fmt.Errorf("generate trace: %w", err)
	}
	proof, err := stark.Prove(cfg, stmt.AIR, trace, stark.WithLogger(log))
	if err != nil {
		return err
	}
	data, err := stark.EncodeProof(proof)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	log.Info("proof written",
		zap.String("air", stmt.Name),
		zap.String("path", out),
		zap.Int("bytes", len(data)),
		zap.Stringer("config", cfg),
	)
	return nil
}
