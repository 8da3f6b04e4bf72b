package up

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strapkit/strap/pkg/filesystem"
	"github.com/strapkit/strap/pkg/logging"
	"github.com/strapkit/strap/pkg/manifest"
	"github.com/strapkit/strap/pkg/paths"
	"github.com/strapkit/strap/pkg/runner"
	"github.com/strapkit/strap/pkg/steps"
	"github.com/strapkit/strap/pkg/ui"
)

// NewCommand creates the up command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "up",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE:    run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger("cmd.up")
	dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

	p, err := paths.New("")
	if err != nil {
		return err
	}

	m, err := manifest.Load(p.ManifestPath())
	if err != nil {
		return err
	}

	rc := &steps.Context{
		FS:       filesystem.NewOS(),
		Paths:    p,
		Manifest: m,
		Runner:   steps.NewExecRunner(),
		DryRun:   dryRun,
	}

	logger.Info().
		Str("manifest", p.ManifestPath()).
		Bool("dryRun", dryRun).
		Msg("starting run")

	format := ui.Resolve(ui.FormatAuto, os.Stdout)
	reporter := ui.NewProgress(cmd.OutOrStdout(), format)

	receipt, err := runner.New(rc, runner.DefaultSteps()).WithReporter(reporter).Run(cmd.Context())
	if err != nil {
		return err
	}

	if receipt.DryRun {
		fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunDone)
	}
	return nil
}
