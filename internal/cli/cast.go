package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quartzdb/dtype/internal/dtype"
)

// NewCastCommand creates the cast command.
func NewCastCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		planPath  string
		strict    bool
		skipNulls bool
	)

	cmd := &cobra.Command{
		Use:   "cast <dtype> <value>... | cast --plan <file>",
		Short: "Cast values to a target type",
		Long: `Cast a sequence of values to a target type.

Inline form infers the input type from the literals and casts to the
target. Plan form runs every step of a YAML plan file and reports
per-step results; steps may declare an expected error code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if planPath != "" {
				if len(args) != 0 {
					return fmt.Errorf("--plan takes no positional arguments")
				}
				return nil
			}
			if len(args) < 2 {
				return fmt.Errorf("requires a target type and at least one value")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if planPath != "" {
				return runCastPlan(rootOpts, planPath, cmd)
			}
			return runCast(rootOpts, args[0], args[1:], strict, skipNulls, cmd)
		},
	}

	cmd.Flags().StringVar(&planPath, "plan", "", "path to a YAML cast plan")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject lossy integer casts")
	cmd.Flags().BoolVar(&skipNulls, "skip-nulls", false, "leave nulls unconverted when stringifying")

	return cmd
}

func runCast(opts *RootOptions, typeArg string, valueArgs []string, strict, skipNulls bool, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := dtype.Parse(typeArg); err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	// Inline casts run as a single-step plan.
	step := PlanStep{
		Name:      "inline",
		Values:    ParseLiterals(valueArgs),
		To:        typeArg,
		Strict:    strict,
		SkipNulls: skipNulls,
	}
	result := runStep(0, step)
	if !result.Ok {
		_ = formatter.Error(result.Code, result.Error, nil)
		return NewExitError(ExitFailure, result.Error)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "%s -> %s\n", result.From, result.To)
	for _, v := range result.Values {
		fmt.Fprintf(formatter.Writer, "  %s\n", v)
	}
	return nil
}

func runCastPlan(opts *RootOptions, planPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	plan, err := LoadPlan(planPath)
	if err != nil {
		_ = formatter.Error("COMMAND", err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	formatter.VerboseLog("running plan %q with %d step(s)", plan.Name, len(plan.Steps))
	result := RunPlan(plan)

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(formatter.Writer, "plan %s: %d passed, %d failed\n", result.Name, result.Passed, result.Failed)
		for _, r := range result.Results {
			status := "ok"
			if !r.Ok {
				status = "FAIL"
			}
			fmt.Fprintf(formatter.Writer, "  [%s] %s: %s -> %s", status, r.Name, r.From, r.To)
			if r.Error != "" {
				fmt.Fprintf(formatter.Writer, " (%s)", r.Error)
			}
			fmt.Fprintln(formatter.Writer)
		}
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("plan failed with %d step(s)", result.Failed))
	}
	return nil
}
