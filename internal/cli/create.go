package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var createTemplateName string

func init() {
	createCmd.Flags().StringVarP(&createTemplateName, "template", "t", "", "Template to seed the structure with")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <description>",
	Short: "Generate a complete project from a description",
	Long: `Generate a project from a natural-language description: the model
proposes a structure, every declared file is generated concurrently,
and the result is written under the configured base path.

Examples:
  genforge create "a CLI todo app with tags and due dates"
  genforge create "a flask REST API" --template flask`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		description := strings.Join(args, " ")
		root, err := a.projects.Create(cmd.Context(), description, createTemplateName)
		if err != nil {
			return fmt.Errorf("creating project: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Project created at %s\n", root)
		return nil
	},
}
