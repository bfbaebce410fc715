package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quartzdb/dtype/internal/dtype"
	"github.com/quartzdb/dtype/internal/promote"
)

// numericTypes is the fixed row/column order for the promotion table.
var numericTypes = []dtype.Descriptor{
	dtype.BoolType(),
	dtype.Int8(), dtype.Int16(), dtype.Int32(), dtype.Int64(),
	dtype.Uint8(), dtype.Uint16(), dtype.Uint32(), dtype.Uint64(),
	dtype.Float32(), dtype.Float64(),
	dtype.Complex64(), dtype.Complex128(),
}

// NewTableCommand creates the table command.
func NewTableCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the pairwise numeric promotion table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:  rootOpts.Format,
				Writer:  cmd.OutOrStdout(),
				Verbose: rootOpts.Verbose,
			}
			if formatter.Format == "json" {
				return formatter.Success(promotionTableRows())
			}
			fmt.Fprint(formatter.Writer, RenderPromotionTable())
			return nil
		},
	}

	return cmd
}

// RenderPromotionTable renders the pairwise numeric join table as
// aligned text. Row and column order is fixed so the output is stable.
func RenderPromotionTable() string {
	width := 0
	for _, d := range numericTypes {
		if n := len(d.String()); n > width {
			width = n
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s", width, "")
	for _, col := range numericTypes {
		fmt.Fprintf(&b, "  %-*s", width, col.String())
	}
	b.WriteString("\n")

	for _, row := range numericTypes {
		fmt.Fprintf(&b, "%-*s", width, row.String())
		for _, col := range numericTypes {
			fmt.Fprintf(&b, "  %-*s", width, promote.PromoteNumeric(row, col).String())
		}
		b.WriteString("\n")
	}
	return b.String()
}

type tableRow struct {
	Type  string            `json:"type"`
	Joins map[string]string `json:"joins"`
}

func promotionTableRows() []tableRow {
	rows := make([]tableRow, 0, len(numericTypes))
	for _, row := range numericTypes {
		joins := make(map[string]string, len(numericTypes))
		for _, col := range numericTypes {
			joins[col.String()] = promote.PromoteNumeric(row, col).String()
		}
		rows = append(rows, tableRow{Type: row.String(), Joins: joins})
	}
	return rows
}
