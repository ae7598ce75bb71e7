package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/statviz/forestplot/pkg/dataset"
)

// datasetsCommand creates the datasets command for browsing the bundled
// example tables.
func (c *CLI) datasetsCommand() *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List the built-in example datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pick {
				return runDatasetPicker()
			}
			for _, name := range dataset.Names() {
				printKeyValue(name, dataset.Describe(name))
			}
			printNextStep("Plot one", "forestplot plot -d sleep --estimate r --varlabel label --ll ll --hl hl")
			return nil
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "pick a dataset interactively and preview its columns")
	return cmd
}

// runDatasetPicker opens the interactive list and prints a column preview
// of the selection.
func runDatasetPicker() error {
	model := newDatasetListModel(dataset.Names())
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}

	m, ok := final.(datasetListModel)
	if !ok || m.selected == "" {
		printInfo("No dataset selected")
		return nil
	}

	f, err := dataset.Load(m.selected)
	if err != nil {
		return err
	}

	printSuccess("%s", m.selected)
	printDetail("%s", dataset.Describe(m.selected))
	printDetail("%d rows", f.Len())
	for _, col := range f.Columns() {
		printDetail("column: %s", col)
	}
	printNextStep("Plot it", fmt.Sprintf("forestplot plot -d %s", m.selected))
	return nil
}
