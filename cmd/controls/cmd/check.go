package cmd

import (
	"fmt"

	"github.com/go-drift/controls/pkg/node"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Report problems in a markup file",
		Long: `Parse and mount a YAML control tree without a terminal and list
every problem found: unknown roles, illegal nesting, and attribute values
controls could not use at attach time (for example a non-numeric slider
min). Exits non-zero when anything is reported.`,
		Usage: "controls check <file.yaml>",
		Run:   runCheck,
	})
}

func runCheck(args []string) error {
	path, err := requireFile(args, "controls check <file.yaml>")
	if err != nil {
		return err
	}

	l, err := load(path)
	if err != nil {
		fmt.Fprintf(stdout, "%s: %v\n", path, err)
		return fmt.Errorf("check failed")
	}
	for _, e := range l.reported {
		fmt.Fprintf(stdout, "%s: %v\n", path, e)
	}
	if len(l.reported) > 0 {
		return fmt.Errorf("check failed: %d problem(s)", len(l.reported))
	}

	count := 0
	for _, tree := range l.trees {
		tree.Walk(func(*node.Node) bool {
			count++
			return true
		})
	}
	fmt.Fprintf(stdout, "%s: ok (%d nodes)\n", path, count)
	return nil
}
