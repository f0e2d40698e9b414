package cmd

import (
	"fmt"

	"github.com/go-drift/controls/pkg/markup"
)

func init() {
	RegisterCommand(&Command{
		Name:  "dump",
		Short: "Print a markup file after initialization",
		Long: `Mount a YAML control tree, let every control initialize, and print
the resulting tree as YAML. The output shows what controls add at attach
time: option tabindex, the hidden option list, trigger labels, reflected
values, and slider decorations.`,
		Usage: "controls dump <file.yaml>",
		Run:   runDump,
	})
}

func runDump(args []string) error {
	path, err := requireFile(args, "controls dump <file.yaml>")
	if err != nil {
		return err
	}

	l, err := load(path)
	if err != nil {
		return err
	}
	for i, tree := range l.trees {
		data, err := markup.Marshal(tree)
		if err != nil {
			return fmt.Errorf("failed to encode tree %d: %w", i, err)
		}
		if i > 0 {
			fmt.Fprintln(stdout, "---")
		}
		fmt.Fprint(stdout, string(data))
	}
	return nil
}
