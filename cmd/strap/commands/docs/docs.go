package docs

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strapkit/strap/pkg/docs"
	"github.com/strapkit/strap/pkg/ui"
)

// NewCommand creates the docs command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "docs [topic]",
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return docs.List(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintln(out, MsgAvailable)
		for _, name := range docs.List() {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	}

	styled := ui.Resolve(ui.FormatAuto, os.Stdout) == ui.FormatTerminal
	rendered, err := docs.Render(args[0], styled)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}
