package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/brokertools/marketplace/api/internal/scoring"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scorectl",
		Short:         "Compute vendor scores without running the API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTrustCmd(), newRubricCmd(), newMarketCmd())
	return root
}

func newTrustCmd() *cobra.Command {
	var average, responseHours, verified, recencyDays float64
	var count int

	cmd := &cobra.Command{
		Use:   "trust",
		Short: "Explain the trust score for a set of signals",
		Long: `Computes the 0-100 trust score. Only flags that are passed count as
signals; omitted flags are treated as unknown, not zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			rating := scoring.RatingSummary{
				Average: floatFlag(flags, "average", average),
				Count:   intFlag(flags, "count", count),
			}
			metrics := scoring.TrustMetrics{
				ResponseTimeHours: floatFlag(flags, "response-hours", responseHours),
				VerifiedRatio:     floatFlag(flags, "verified", verified),
				ReviewRecencyDays: floatFlag(flags, "recency-days", recencyDays),
			}
			return writeJSON(cmd.OutOrStdout(), scoring.ExplainTrustScore(rating, metrics))
		},
	}
	cmd.Flags().Float64Var(&average, "average", 0, "average review rating (0-5)")
	cmd.Flags().IntVar(&count, "count", 0, "number of reviews")
	cmd.Flags().Float64Var(&responseHours, "response-hours", 0, "median vendor response time in hours")
	cmd.Flags().Float64Var(&verified, "verified", 0, "verified review ratio (fraction or percentage)")
	cmd.Flags().Float64Var(&recencyDays, "recency-days", 0, "days since the last review")
	return cmd
}

// rubricFile is the YAML input for the rubric command. Categories default to
// the shipped configuration when omitted.
type rubricFile struct {
	Categories []scoring.Category `yaml:"categories"`
	Features   []scoring.Feature  `yaml:"features"`
}

type rubricResult struct {
	scoring.Evaluation
	TopFeatures []scoring.Feature `json:"topFeatures"`
}

func newRubricCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rubric <features.yaml|->",
		Short: "Score assessed features against the rubric categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			var in rubricFile
			if err := yaml.Unmarshal(raw, &in); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			categories := in.Categories
			if len(categories) == 0 {
				categories = scoring.DefaultCategories()
			}
			eval := scoring.Evaluate(in.Features, categories)
			return writeJSON(cmd.OutOrStdout(), rubricResult{
				Evaluation:  eval,
				TopFeatures: scoring.TopFeatures(in.Features),
			})
		},
	}
}

func newMarketCmd() *cobra.Command {
	var average, usability, support, value, features float64

	cmd := &cobra.Command{
		Use:   "market",
		Short: "Compute the 0-100 marketplace score from review data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			rubric := scoring.ReviewRubric{
				Usability: floatFlag(flags, "usability", usability),
				Support:   floatFlag(flags, "support", support),
				Value:     floatFlag(flags, "value", value),
				Features:  floatFlag(flags, "features", features),
			}
			score := scoring.ComputeMarketplaceScore(floatFlag(flags, "average", average), rubric, nil)
			return writeJSON(cmd.OutOrStdout(), map[string]int{"marketScore": score})
		},
	}
	cmd.Flags().Float64Var(&average, "average", 0, "average review rating (0-5)")
	cmd.Flags().Float64Var(&usability, "usability", 0, "usability rubric average (0-5)")
	cmd.Flags().Float64Var(&support, "support", 0, "support rubric average (0-5)")
	cmd.Flags().Float64Var(&value, "value", 0, "value rubric average (0-5)")
	cmd.Flags().Float64Var(&features, "features", 0, "features rubric average (0-5)")
	return cmd
}

func floatFlag(flags *pflag.FlagSet, name string, v float64) *float64 {
	if !flags.Changed(name) {
		return nil
	}
	return &v
}

func intFlag(flags *pflag.FlagSet, name string, v int) *int {
	if !flags.Changed(name) {
		return nil
	}
	return &v
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
