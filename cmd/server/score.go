package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jengzang/neuronav-backend-go/internal/models"
	"github.com/jengzang/neuronav-backend-go/internal/stress"
	"github.com/spf13/cobra"
)

var scoreAggregation string

var scoreCmd = &cobra.Command{
	Use:   "score [segments.json]",
	Short: "Score a route from a JSON array of segments",
	Long: `Reads a JSON array of segment attributes from the given file, or from
stdin when no file is given, and prints the route score, its label and the
per-segment scores.

Example:
  echo '[{"traffic":0.2,"poiDensity":0.5,"turns":0,"roadType":"residential"}]' | neuronav score`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	segments, err := readSegments(in)
	if err != nil {
		return err
	}

	agg, err := cfg.Scoring.Aggregator()
	if err != nil {
		return err
	}
	if scoreAggregation != "" {
		policy, err := stress.ParsePolicy(scoreAggregation)
		if err != nil {
			return err
		}
		agg = stress.NewAggregator(agg.Model(), policy)
	}

	result, err := agg.Aggregate(segments)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readSegments(r io.Reader) ([]models.SegmentAttributes, error) {
	var segments []models.SegmentAttributes
	if err := json.NewDecoder(r).Decode(&segments); err != nil {
		return nil, fmt.Errorf("failed to parse segments: %w", err)
	}
	return segments, nil
}
