package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeJSON bool

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output the analysis as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <project-path>",
	Short: "Review an existing project for problems",
	Long: `Sample the project's source files into a review prompt and report
the model's findings: bugs, security problems, bad practices, and
project-level recommendations.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		report, err := a.analyzer.Analyze(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("analyzing project: %w", err)
		}

		out := cmd.OutOrStdout()
		if analyzeJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Overall quality: %s\n", report.OverallQuality)
		fmt.Fprintf(out, "Summary: %s\n", report.Summary)
		if len(report.Issues) > 0 {
			fmt.Fprintf(out, "\nIssues (%d):\n", len(report.Issues))
			for _, issue := range report.Issues {
				fmt.Fprintf(out, "  [%s] %s: %s\n", issue.Severity, issue.File, issue.Description)
			}
		}
		if len(report.Recommendations) > 0 {
			fmt.Fprintf(out, "\nRecommendations (%d):\n", len(report.Recommendations))
			for _, rec := range report.Recommendations {
				fmt.Fprintf(out, "  [%s] %s\n", rec.Priority, rec.Description)
			}
		}
		return nil
	},
}
