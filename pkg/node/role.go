package node

// Role identifies what a node is in the control tree.
type Role int

const (
	// RoleDocument is the root of a host's tree.
	RoleDocument Role = iota
	// RoleContainer groups arbitrary content.
	RoleContainer
	// RoleForm owns a set of input coordinators.
	RoleForm
	// RoleSelect is the root of a selection group (dropdown).
	RoleSelect
	// RoleTrigger is the activation control of a selection group.
	RoleTrigger
	// RoleGroup holds the options of a selection group.
	RoleGroup
	// RoleOption is a selectable item.
	RoleOption
	// RoleIcon is a passive decoration inside a trigger or option.
	RoleIcon
	// RoleCoordinator owns canonical input state.
	RoleCoordinator
	// RoleTextInterface edits a coordinator value as text.
	RoleTextInterface
	// RoleSliderInterface edits a coordinator value along a track.
	RoleSliderInterface
	// RoleTrack is the slider's track decoration.
	RoleTrack
	// RoleThumb is the slider's thumb decoration.
	RoleThumb
)

var roleNames = [...]string{
	RoleDocument:        "document",
	RoleContainer:       "container",
	RoleForm:            "form",
	RoleSelect:          "select",
	RoleTrigger:         "trigger",
	RoleGroup:           "group",
	RoleOption:          "option",
	RoleIcon:            "icon",
	RoleCoordinator:     "coordinator",
	RoleTextInterface:   "text-interface",
	RoleSliderInterface: "slider-interface",
	RoleTrack:           "track",
	RoleThumb:           "thumb",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// ParseRole returns the role named by tag.
func ParseRole(tag string) (Role, bool) {
	for i, name := range roleNames {
		if name == tag {
			return Role(i), true
		}
	}
	return 0, false
}

// legalParents lists the only parents allowed for constrained roles.
// Roles absent from the map may live under any content role.
var legalParents = map[Role][]Role{
	RoleTrigger:         {RoleSelect},
	RoleGroup:           {RoleSelect},
	RoleOption:          {RoleGroup},
	RoleIcon:            {RoleTrigger, RoleOption},
	RoleTextInterface:   {RoleCoordinator},
	RoleSliderInterface: {RoleCoordinator},
	RoleTrack:           {RoleSliderInterface},
	RoleThumb:           {RoleSliderInterface},
}

// contentRoles may hold any unconstrained role.
var contentRoles = map[Role]bool{
	RoleDocument:  true,
	RoleContainer: true,
	RoleForm:      true,
}

// CanContain reports whether a node of role parent may hold a child of role child.
func CanContain(parent, child Role) bool {
	if child == RoleDocument {
		return false
	}
	if parents, ok := legalParents[child]; ok {
		for _, p := range parents {
			if p == parent {
				return true
			}
		}
		return false
	}
	return contentRoles[parent]
}
