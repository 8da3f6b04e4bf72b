package status

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/paths"
	"github.com/strapkit/strap/pkg/state"
	"github.com/strapkit/strap/pkg/ui"
)

// NewCommand creates the status command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE:    run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	p, err := paths.New("")
	if err != nil {
		return err
	}

	receipt, err := state.Load(p.ReceiptPath())
	if err != nil {
		if errors.IsCode(err, errors.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), MsgNoRuns)
			return nil
		}
		return err
	}

	format := ui.Resolve(ui.FormatAuto, os.Stdout)
	fmt.Fprint(cmd.OutOrStdout(), ui.RenderReceipt(receipt, format))
	return nil
}
