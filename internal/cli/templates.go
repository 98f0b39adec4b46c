package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listTemplatesCmd)
	rootCmd.AddCommand(saveTemplateCmd)
}

var listTemplatesCmd = &cobra.Command{
	Use:   "list-templates",
	Short: "List stored project templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		infos := a.templates.List()
		if len(infos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No templates stored yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tDESCRIPTION")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%s\n", info.Name, info.Description)
		}
		return w.Flush()
	},
}

var saveTemplateCmd = &cobra.Command{
	Use:   "save-template <project-path> <name>",
	Short: "Capture an existing project as a reusable template",
	Long: `Store a project's structure under a template name so future
generations can use it as context.

Example:
  genforge save-template projects/todo_app_20260823_120000 todo`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		projectPath, name := args[0], args[1]
		if _, err := os.Stat(projectPath); err != nil {
			return fmt.Errorf("project %s: %w", projectPath, err)
		}
		if err := a.templates.SaveFromProject(projectPath, name); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Template %q saved from %s\n", name, projectPath)
		return nil
	},
}
