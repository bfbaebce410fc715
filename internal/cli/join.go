package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quartzdb/dtype/internal/dtype"
	"github.com/quartzdb/dtype/internal/promote"
)

// JoinResult holds the outcome of a common-type query.
type JoinResult struct {
	Inputs []string `json:"inputs"`
	Common string   `json:"common"`
}

// NewJoinCommand creates the join command.
func NewJoinCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join <dtype>...",
		Short: "Find the common type for a set of column types",
		Long: `Join two or more column types into their common type.

The common type is the narrowest type every input can be cast to
without data loss, falling back to object when no numeric or temporal
join exists.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoin(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runJoin(opts *RootOptions, typeArgs []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	types := make([]dtype.Descriptor, 0, len(typeArgs))
	inputs := make([]string, 0, len(typeArgs))
	for _, arg := range typeArgs {
		d, err := dtype.Parse(arg)
		if err != nil {
			_ = formatter.Error(errorCode(err), err.Error(), nil)
			return NewExitError(ExitCommandError, err.Error())
		}
		types = append(types, d)
		inputs = append(inputs, d.String())
	}

	common, err := promote.FindCommonType(types)
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}

	result := JoinResult{Inputs: inputs, Common: common.String()}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for i, in := range result.Inputs {
		if i > 0 {
			fmt.Fprint(formatter.Writer, " + ")
		}
		fmt.Fprint(formatter.Writer, in)
	}
	fmt.Fprintf(formatter.Writer, " -> %s\n", result.Common)
	return nil
}
