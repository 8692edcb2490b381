package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/mlffkit/mlffkit/internal/branding"
	"github.com/mlffkit/mlffkit/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: fmt.Sprintf(strings.TrimSpace(dedent.Dedent(`
		%s lays down the standard directory tree for a machine-learning
		force-field benchmark project: raw, processed and benchmark data,
		notebooks, scripts, source packages, a paper skeleton and result folders.
		It writes a .gitignore tuned for large structure and checkpoint files and
		initializes a git repository in the new project.`)), branding.DisplayName()),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
// An interrupt cancels the command context, which stops a running git child.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
