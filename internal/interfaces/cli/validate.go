package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/FireCircuit-Intelligence/internal/application/capacity"
	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
)

func newValidateCmd(opts *RootOptions) *cobra.Command {
	var (
		input  string
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate circuit branches and power supplies",
		Long: "Reads a JSON document with circuit branches and power supplies,\n" +
			"validates them against the configured capacity limits, and prints the\n" +
			"findings.  With --strict the command fails when any blocking finding\n" +
			"is present.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "table" {
				return apperrors.InvalidParam("output must be json or table")
			}
			req, err := readRequest(input)
			if err != nil {
				return err
			}

			ec, err := buildEngineContext(opts)
			if err != nil {
				return err
			}
			defer ec.close()

			report, err := ec.capacity.Validate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if output == "json" {
				if err := printJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				printReport(cmd, report)
			}

			if strict && !report.Valid {
				return apperrors.Newf(apperrors.ErrCodeValidation,
					"%d validation issues, worst severity %s", report.TotalIssues, report.Worst)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON file with branches and supplies (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero on blocking findings")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func readRequest(path string) (capacity.Request, error) {
	var req capacity.Request
	data, err := os.ReadFile(path)
	if err != nil {
		return req, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "read input file")
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "parse input file")
	}
	for _, b := range req.Branches {
		for _, d := range b.Devices {
			if err := d.Validate(); err != nil {
				return req, err
			}
		}
	}
	for _, p := range req.Supplies {
		for _, b := range p.Branches {
			for _, d := range b.Devices {
				if err := d.Validate(); err != nil {
					return req, err
				}
			}
		}
	}
	return req, nil
}

func printReport(cmd *cobra.Command, report capacity.Report) {
	out := cmd.OutOrStdout()
	for _, br := range report.Branches {
		fmt.Fprintf(out, "branch %s: %.3f A / %d UL, utilization %.1f%%, limiting factor %s\n",
			br.BranchID, br.Assessment.TotalAmps, br.Assessment.TotalUnitLoads,
			br.Assessment.UtilizationPercent, br.Assessment.LimitingFactor)
		for _, issue := range br.Issues {
			fmt.Fprintf(out, "  [%s] %s: %s\n", issue.Severity, issue.Code, issue.Message)
		}
	}
	for _, sr := range report.Supplies {
		fmt.Fprintf(out, "supply %s: %.3f A of %.3f A effective\n",
			sr.SupplyID, sr.Assessment.TotalAmps, sr.Assessment.EffectiveMaxAmps)
		for _, issue := range sr.Issues {
			fmt.Fprintf(out, "  [%s] %s: %s\n", issue.Severity, issue.Code, issue.Message)
		}
	}
	verdict := "PASS"
	if !report.Valid {
		verdict = "FAIL"
	}
	fmt.Fprintf(out, "\n%s: %d issues, worst severity %s\n", verdict, report.TotalIssues, report.Worst)
}
