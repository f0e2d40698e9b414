package node

import (
	"slices"

	"github.com/go-drift/controls/pkg/errors"
)

// MutationKind identifies what changed in a subtree.
type MutationKind int

const (
	// MutationAttribute reports an attribute added, changed, or removed.
	MutationAttribute MutationKind = iota
	// MutationText reports a text label change.
	MutationText
	// MutationChildAdded reports a child inserted under Target.
	MutationChildAdded
	// MutationChildRemoved reports a child removed from Target.
	MutationChildRemoved
)

// Mutation describes a single change in a subtree.
type Mutation struct {
	Kind   MutationKind
	Target *Node
	// Name is the attribute name for attribute mutations.
	Name string
	// OldValue and HadValue describe the previous attribute value or text.
	OldValue string
	HadValue bool
	// Child is the inserted or removed node.
	Child *Node
}

type observer struct {
	fn      func(Mutation)
	removed bool
}

// Observe registers fn for mutations of n and its descendants.
// Mutations are delivered synchronously, after the change is applied.
func (n *Node) Observe(fn func(Mutation)) (cancel func()) {
	o := &observer{fn: fn}
	n.observers = append(n.observers, o)
	return func() {
		if o.removed {
			return
		}
		o.removed = true
		if i := slices.Index(n.observers, o); i >= 0 {
			n.observers = slices.Delete(n.observers, i, i+1)
		}
	}
}

// ObserverCount returns the number of observers registered on n.
func (n *Node) ObserverCount() int {
	return len(n.observers)
}

func (n *Node) notify(m Mutation) {
	for cur := n; cur != nil; cur = cur.parent {
		if len(cur.observers) == 0 {
			continue
		}
		for _, o := range slices.Clone(cur.observers) {
			if o.removed {
				continue
			}
			callObserver(o.fn, m)
		}
	}
}

func callObserver(fn func(Mutation), m Mutation) {
	defer errors.Recover("node.Observe")
	fn(m)
}
