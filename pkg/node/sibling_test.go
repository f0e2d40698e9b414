package node

import "testing"

func optionList(labels ...string) (*Node, []*Node) {
	group := New(RoleGroup)
	nodes := make([]*Node, len(labels))
	for i, label := range labels {
		nodes[i] = New(RoleOption, WithText(label))
		_ = group.Append(nodes[i])
	}
	return group, nodes
}

func notDisabled(n *Node) bool { return !n.HasAttr("disabled") }

func TestFindSiblingWraps(t *testing.T) {
	_, opts := optionList("A", "B", "C")
	tests := []struct {
		from *Node
		dir  Direction
		want *Node
	}{
		{opts[0], Next, opts[1]},
		{opts[2], Next, opts[0]},
		{opts[0], Previous, opts[2]},
		{opts[1], Previous, opts[0]},
	}
	for _, tt := range tests {
		if got := FindSibling(tt.from, tt.dir, nil); got != tt.want {
			t.Errorf("FindSibling(%v, %d) = %v, want %v", tt.from, tt.dir, got, tt.want)
		}
	}
}

func TestFindSiblingSkipsNonMatching(t *testing.T) {
	_, opts := optionList("A", "B", "C")
	opts[1].SetFlag("disabled", true)
	if got := FindSibling(opts[0], Next, notDisabled); got != opts[2] {
		t.Errorf("got %v, want C", got)
	}
	if got := FindSibling(opts[2], Previous, notDisabled); got != opts[0] {
		t.Errorf("got %v, want A", got)
	}
}

func TestFindSiblingSkipsOtherRoles(t *testing.T) {
	box := New(RoleContainer)
	first := New(RoleSelect)
	coord := New(RoleCoordinator)
	second := New(RoleSelect)
	for _, n := range []*Node{first, coord, second} {
		_ = box.Append(n)
	}
	if got := FindSibling(first, Next, nil); got != second {
		t.Errorf("got %v, want second select", got)
	}
	if got := FindSibling(coord, Next, nil); got != nil {
		t.Errorf("lone coordinator: got %v, want nil", got)
	}
}

func TestFindSiblingTerminates(t *testing.T) {
	_, single := optionList("A")
	if got := FindSibling(single[0], Next, nil); got != nil {
		t.Errorf("single child: got %v, want nil", got)
	}

	_, opts := optionList("A", "B", "C")
	none := func(*Node) bool { return false }
	if got := FindSibling(opts[1], Next, none); got != nil {
		t.Errorf("no match: got %v, want nil", got)
	}

	// The starting node is never returned even when it matches.
	opts[0].SetFlag("disabled", true)
	opts[2].SetFlag("disabled", true)
	if got := FindSibling(opts[1], Next, notDisabled); got != nil {
		t.Errorf("only start eligible: got %v, want nil", got)
	}
}

func TestFindSiblingWithoutParent(t *testing.T) {
	if got := FindSibling(New(RoleOption), Next, nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
	if got := FindSibling(nil, Next, nil); got != nil {
		t.Errorf("got %v, want nil", got)
	}
	_, opts := optionList("A", "B")
	if got := FindSibling(opts[0], 0, nil); got != nil {
		t.Errorf("zero direction: got %v, want nil", got)
	}
}
