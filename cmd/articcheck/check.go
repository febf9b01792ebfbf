package articcheck

import (
	"fmt"
	"log/slog"

	"github.com/PearCoding/artic/checker"
	"github.com/PearCoding/artic/internal/config"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check",
	Short:        "Run the type checker over the built-in demonstration program",
	RunE:         runCheck,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

var logLevel *int

func init() {
	logLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

// runCheck is the only entry point exercising checker.CheckFile: spec.md §1
// puts the parser out of scope, so demoFile stands in for what parsing a
// real source file would produce.
func runCheck(cmd *cobra.Command, args []string) error {
	opts := config.Default()
	opts.LogLevel = slog.Level(*logLevel)

	c := checker.New(opts)
	bag := c.CheckFile(demoFile())

	for _, d := range bag.Diagnostics() {
		fmt.Fprintln(cmd.OutOrStdout(), d.Error())
	}

	if c.ErrorCount() > 0 {
		return fmt.Errorf("%d error(s) found", c.ErrorCount())
	}
	fmt.Fprintln(cmd.OutOrStdout(), "no errors found")
	return nil
}
