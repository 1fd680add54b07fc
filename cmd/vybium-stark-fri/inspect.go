package main

import (
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	stark "github.com/vybium/vybium-stark-fri/pkg/vybium-stark-fri"
)

// proofSummary is the JSON printed by inspect.
type proofSummary struct {
	TraceRoot     string   `json:"trace_root"`
	FrameSize     int      `json:"frame_size"`
	TraceColumns  int      `json:"trace_columns"`
	FriLayerRoots []string `json:"fri_layer_roots"`
	FriLastLayer  uint64   `json:"fri_last_layer"`
	Queries       int      `json:"queries"`
	EncodedBytes  int      `json:"encoded_bytes"`
	FileBytes     int      `json:"file_bytes"`
}

func inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <proof>",
		Short: "Prints a JSON summary of a proof file",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectFunc,
	}
}

func inspectFunc(c *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	proof, err := stark.DecodeProof(data)
	if err != nil {
		return err
	}

	summary := proofSummary{
		TraceRoot:    hex.EncodeToString(proof.TraceRoot),
		FrameSize:    len(proof.OODTraceEvaluations),
		FriLastLayer: proof.FriLastLayer.Value(),
		Queries:      len(proof.Queries),
		EncodedBytes: proof.Size(),
		FileBytes:    len(data),
	}
	if len(proof.OODTraceEvaluations) > 0 {
		summary.TraceColumns = len(proof.OODTraceEvaluations[0])
	}
	for _, root := range proof.FriLayerRoots {
		summary.FriLayerRoots = append(summary.FriLayerRoots, hex.EncodeToString(root))
	}

	enc := json.NewEncoder(c.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
