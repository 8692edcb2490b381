package cli

import (
	"fmt"
	"os"

	"github.com/mlffkit/mlffkit/internal/layout"
	"github.com/spf13/cobra"
)

var (
	layoutShowPath string
	layoutForce    bool
)

func init() {
	layoutShowCmd.Flags().StringVar(&layoutShowPath, "layout", "", "Layout file to show instead of the effective one")
	layoutExportCmd.Flags().BoolVar(&layoutForce, "force", false, "Overwrite an existing file")
	layoutCmd.AddCommand(layoutShowCmd)
	layoutCmd.AddCommand(layoutValidateCmd)
	layoutCmd.AddCommand(layoutExportCmd)
	rootCmd.AddCommand(layoutCmd)
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Inspect and validate project layouts",
}

var layoutShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective layout with brace shorthand expanded",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := resolveLayout(layoutShowPath)
		if err != nil {
			return err
		}
		out, err := l.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var layoutValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a layout file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		result, err := layout.ValidateFile(args[0])
		if err != nil {
			return err
		}
		if !result.Valid {
			for _, msg := range result.Messages() {
				fmt.Fprintf(w, "  - %s\n", msg)
			}
			return fmt.Errorf("%s: %d schema issue(s)", args[0], len(result.Issues))
		}

		// Schema-valid files can still carry bad paths or versions.
		l, err := layout.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s is valid: %d directories, %d files\n", args[0], len(l.Directories), len(l.Files))
		return nil
	},
}

var layoutExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the built-in layout to a file as a starting point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := args[0]
		if _, err := os.Stat(dest); err == nil && !layoutForce {
			return fmt.Errorf("%s already exists; use --force to overwrite", dest)
		}
		if err := os.WriteFile(dest, layout.DefaultSource(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s layout to %s\n", layout.DefaultName, dest)
		return nil
	},
}
