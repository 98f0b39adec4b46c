package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genforge-labs/genforge/internal/validate"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <project-path>",
	Short: "Validate a generated project and repair what it can",
	Long: `Run the repair checks against a project directory: import coherence,
syntax validity, dependency completeness, and declared-vs-actual
structure. Findings land in validation_report.json inside the project.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		rep := a.validator.Run(cmd.Context(), args[0])
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Status: %s\n", rep.Status)
		fmt.Fprintf(out, "Issues found: %d, fixed: %d\n", rep.IssuesFound, rep.IssuesFixed)
		for _, issue := range rep.Issues {
			state := "open"
			if issue.Fixed {
				state = "fixed"
			}
			if issue.File != "" {
				fmt.Fprintf(out, "  [%s] %s: %s (%s)\n", issue.Type, issue.File, issue.Message, state)
			} else {
				fmt.Fprintf(out, "  [%s] %s (%s)\n", issue.Type, issue.Message, state)
			}
		}

		if rep.Status == validate.StatusError {
			return fmt.Errorf("validation failed: %s", rep.Error)
		}
		return nil
	},
}
