package initcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strapkit/strap/pkg/manifest"
	"github.com/strapkit/strap/pkg/paths"
)

// NewCommand creates the init command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "init",
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

	target := p.InitManifestPath()
	if err := manifest.WriteStarter(target); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), MsgCreated, target)
	return nil
}
