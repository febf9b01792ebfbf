package articcheck

import "github.com/spf13/cobra"

var RootCmd = &cobra.Command{
	Use:          "articcheck [subcommand]",
	Short:        "articcheck checks a fixed demonstration program against the type core",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(CheckCmd)
}
