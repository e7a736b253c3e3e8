package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
)

func newAnalyzeCmd(opts *RootOptions) *cobra.Command {
	var (
		input       string
		output      string
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify and resolve a set of device snapshots",
		Long: "Reads a JSON array of device snapshots, runs the full mapping pipeline\n" +
			"over them, and prints the results.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "table" {
				return apperrors.InvalidParam("output must be json or table")
			}
			snaps, err := readSnapshots(input)
			if err != nil {
				return err
			}

			ec, err := buildEngineContext(opts)
			if err != nil {
				return err
			}
			defer ec.close()

			result := ec.engine.AnalyzeBatch(cmd.Context(), snaps, parallelism)

			if output == "json" {
				return printJSON(cmd.OutOrStdout(), result)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ELEMENT\tKIND\tSKU\tAMPS\tUL\tSOURCE\tCONFIDENCE")
			for _, r := range result.Results {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.3f\t%d\t%s\t%.2f\n",
					r.ElementID, r.Identity.Kind, r.Specification.SKU,
					r.Specification.Amps, r.Specification.UnitLoads,
					r.Specification.Source, r.Confidence)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d devices, %d succeeded, %d failed in %s\n",
				result.Summary.TotalProcessed, result.Summary.Succeeded,
				result.Summary.Failed, formatDuration(result.Duration))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON file with an array of device snapshots (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", 0, "concurrent device groups (0 = automatic)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func readSnapshots(path string) ([]device.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "read input file")
	}
	var snaps []device.Snapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "parse input file")
	}
	if len(snaps) == 0 {
		return nil, apperrors.InvalidParam("input file holds no devices")
	}
	for _, s := range snaps {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return snaps, nil
}
