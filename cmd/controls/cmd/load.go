package cmd

import (
	"fmt"
	"os"

	controlerrors "github.com/go-drift/controls/pkg/errors"
	"github.com/go-drift/controls/pkg/host"
	"github.com/go-drift/controls/pkg/markup"
	"github.com/go-drift/controls/pkg/node"
)

// loaded is a markup file mounted on a fresh host.
type loaded struct {
	host     *host.Host
	trees    []*node.Node
	reported []*controlerrors.ControlError
}

// load reads path, mounts it, and settles deferred work. Errors reported
// during mounting are returned alongside the tree.
func load(path string) (*loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	c := &controlerrors.Collector{}
	defer controlerrors.SetHandler(controlerrors.SetHandler(c))

	h := host.New()
	trees, err := markup.Mount(h, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	h.Settle()

	reported := c.Errors()
	for _, p := range c.Panics() {
		reported = append(reported, &controlerrors.ControlError{Op: p.Op, Kind: controlerrors.KindPanic, Err: p})
	}
	return &loaded{host: h, trees: trees, reported: reported}, nil
}

func requireFile(args []string, usage string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("markup file is required\n\nUsage: %s", usage)
	}
	return args[0], nil
}
