package patch

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strapkit/strap/pkg/blockpatch"
	"github.com/strapkit/strap/pkg/errors"
	"github.com/strapkit/strap/pkg/filesystem"
	"github.com/strapkit/strap/pkg/paths"
)

// NewCommand creates the patch command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "patch <file> <marker>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE:    run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	file, marker := args[0], args[1]

	if dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run"); dryRun {
		return errors.New(errors.ErrInvalidInput, "patch does not support --dry-run")
	}

	p, err := paths.New("")
	if err != nil {
		return err
	}

	block := []string{marker}
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		block = append(block, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "failed to read block from stdin")
	}

	result, err := blockpatch.Ensure(filesystem.NewOS(), p.ExpandHome(file), marker, block)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(result))
	return nil
}
