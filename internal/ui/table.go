package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// PrintTable writes data as a boxed table to writer. The first row of data
// is the header.
func PrintTable(data [][]string, writer io.Writer) {
	if len(data) == 0 {
		return
	}

	table := pterm.DefaultTable.
		WithBoxed().
		WithHasHeader().
		WithData(data)

	str, err := table.Srender()
	if err != nil {
		pterm.Error.WithWriter(writer).Printfln("Unable to render the table: %v", err)
		return
	}

	fmt.Fprintln(writer, str)
}
