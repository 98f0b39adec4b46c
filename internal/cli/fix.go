package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/genforge-labs/genforge/internal/structure"
)

var fixFileProblem string

func init() {
	fixFileCmd.Flags().StringVar(&fixFileProblem, "problem", "", "Description of the problem to fix (required)")
	fixFileCmd.MarkFlagRequired("problem")
	rootCmd.AddCommand(fixFileCmd)
	rootCmd.AddCommand(fixProjectCmd)
}

var fixFileCmd = &cobra.Command{
	Use:   "fix-file <file-path>",
	Short: "Correct a single file for a described problem",
	Long: `Ask the model for a corrected version of one file. The original is
kept next to it with a .bak suffix.

Example:
  genforge fix-file projects/todo_app/todo.py --problem "crashes on empty input"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		path := args[0]
		original, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		ps, err := structure.FindEnclosing(path)
		if err != nil {
			a.log.Warnf("no project structure found for %s: %v", path, err)
		}

		corrected, err := a.analyzer.FixFile(cmd.Context(), path, fixFileProblem, ps)
		if err != nil {
			return err
		}

		if err := os.WriteFile(path+".bak", original, 0644); err != nil {
			return fmt.Errorf("writing backup: %w", err)
		}
		if err := os.WriteFile(path, []byte(corrected), 0644); err != nil {
			return fmt.Errorf("writing corrected file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Fixed %s (original saved as %s.bak)\n", path, path)
		return nil
	},
}

var fixProjectCmd = &cobra.Command{
	Use:   "fix-project <project-path>",
	Short: "Analyze a project and correct every reported issue",
	Long: `Run a fresh analysis and apply a correction for each reported issue.
Originals are backed up with a .bak suffix and the outcome is written
to fix_report.json inside the project.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		report, err := a.analyzer.FixProject(cmd.Context(), args[0], nil)
		if err != nil {
			return fmt.Errorf("fixing project: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Fixed: %d, skipped: %d, errors: %d\n",
			report.FixedCount, report.SkippedCount, report.ErrorCount)
		for _, f := range report.Details.FixedFiles {
			fmt.Fprintf(cmd.OutOrStdout(), "  fixed %s (%s)\n", f.File, f.Issue)
		}
		return nil
	},
}
