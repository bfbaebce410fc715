package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quartzdb/dtype/internal/dtype"
	"github.com/quartzdb/dtype/internal/promote"
)

// PromoteResult holds the outcome of a promotion query.
type PromoteResult struct {
	Input    string `json:"input"`
	Fill     string `json:"fill"`
	Promoted string `json:"promoted"`
	Boxed    string `json:"boxed"`
}

// NewPromoteCommand creates the promote command.
func NewPromoteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote <dtype> <fill>",
		Short: "Find the type that can hold a column and a fill value",
		Long: `Promote a column type against a fill value.

Prints the narrowest type that can hold both the existing column and
the fill value, plus the fill value re-typed for that type. Fill values
accept literals such as 3, 2.5, nan, null, true, or an RFC 3339
timestamp.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromote(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runPromote(opts *RootOptions, typeArg, fillArg string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	d, err := dtype.Parse(typeArg)
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	fill := ParseLiteral(fillArg)
	formatter.VerboseLog("promoting %s against fill %v", d, fill)

	promoted, boxed, err := promote.Promote(d, fill)
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}

	result := PromoteResult{
		Input:    d.String(),
		Fill:     fillArg,
		Promoted: promoted.String(),
		Boxed:    dtype.FormatScalar(boxed),
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s + %s -> %s (fill %s)\n", result.Input, result.Fill, result.Promoted, result.Boxed)
	return nil
}
