package cli

import (
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/mlffkit/mlffkit/internal/config"
	"github.com/mlffkit/mlffkit/internal/scaffold"
	"github.com/mlffkit/mlffkit/internal/tree"
	"github.com/spf13/cobra"
)

var (
	newLayoutPath string
	newBranch     string
	newNoGit      bool
	newDryRun     bool
	newQuiet      bool
	newVerbose    bool
)

func init() {
	newCmd.Flags().StringVar(&newLayoutPath, "layout", "", "Layout file to use instead of the built-in one")
	newCmd.Flags().StringVar(&newBranch, "branch", "", "Initial git branch name")
	newCmd.Flags().BoolVar(&newNoGit, "no-git", false, "Skip git repository initialization")
	newCmd.Flags().BoolVar(&newDryRun, "dry-run", false, "Print the planned steps without touching the filesystem")
	newCmd.Flags().BoolVarP(&newQuiet, "quiet", "q", false, "Do not print the resulting tree")
	newCmd.Flags().BoolVarP(&newVerbose, "verbose", "v", false, "Print every step as it runs")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Scaffold a new benchmark project",
	Long: strings.TrimSpace(dedent.Dedent(`
		Create the project tree under [name] (default: the "project.name" config
		key, then the layout's root). Existing directories and placeholder files
		are left untouched, so re-running on an existing project is safe;
		.gitignore is always rewritten.

		Examples:
		  mlffkit new cr-sb-te
		  mlffkit new --dry-run
		  mlffkit new demo --layout ./my-layout.yaml --no-git`)),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := resolveLayout(newLayoutPath)
		if err != nil {
			return err
		}
		if err := l.CheckCompatible(buildVersion); err != nil {
			return err
		}

		root, err := resolveRoot(args, l)
		if err != nil {
			return err
		}

		branch := newBranch
		if branch == "" {
			branch = config.Get(config.KeyGitInitialBranch)
		}

		gitInit, err := config.GetBool(config.KeyGitInit)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		opts := scaffold.Options{
			DryRun:        newDryRun,
			SkipGit:       newNoGit || !gitInit,
			InitialBranch: branch,
			Verbose:       newVerbose,
			Out:           w,
		}

		result, err := scaffold.Generate(cmd.Context(), l, root, opts)
		if err != nil {
			return err
		}

		if result.DryRun {
			fmt.Fprintln(w, result.Summary())
			return nil
		}

		fmt.Fprintf(w, "Project structure for '%s' created successfully.\n", root)
		if result.GitInitialized {
			fmt.Fprintln(w, "Git repository initialized.")
		} else {
			fmt.Fprintln(w, "Git initialization skipped.")
		}
		if newVerbose {
			fmt.Fprintln(w, result.Summary())
		}
		if newQuiet {
			return nil
		}

		fmt.Fprintln(w)
		return tree.Render(w, root)
	},
}
