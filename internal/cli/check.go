package cli

import (
	"fmt"

	"github.com/mlffkit/mlffkit/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	checkLayoutPath string
	checkNoGit      bool
)

func init() {
	checkCmd.Flags().StringVar(&checkLayoutPath, "layout", "", "Layout file to check against instead of the built-in one")
	checkCmd.Flags().BoolVar(&checkNoGit, "no-git", false, "Do not require a git repository")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [root]",
	Short: "Verify a project tree against its layout",
	Long: `Report directories and files that are missing or have the wrong type,
a .gitignore that differs from the layout, and a missing git repository.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := resolveLayout(checkLayoutPath)
		if err != nil {
			return err
		}
		root, err := resolveRoot(args, l)
		if err != nil {
			return err
		}

		issues, err := scaffold.Verify(l, root, !checkNoGit)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(issues) == 0 {
			fmt.Fprintf(w, "[ OK ] %s matches layout %s\n", root, l.Name)
			return nil
		}
		for _, issue := range issues {
			fmt.Fprintf(w, "[FAIL] %s\n", issue)
		}
		return fmt.Errorf("%s: %d issue(s) found", root, len(issues))
	},
}
