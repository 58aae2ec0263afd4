package core

import "github.com/go-drift/trellis/pkg/graphics"

// Role is the accessibility role of a widget.
type Role string

const (
	RoleGenericContainer Role = "generic-container"
	RoleRow              Role = "row"
	RoleColumn           Role = "column"
	RoleLabel            Role = "label"
	RoleButton           Role = "button"
	RoleTextInput        Role = "text-input"
	RoleSpacer           Role = "spacer"
)

// AccessNode describes one widget to assistive technology.
type AccessNode struct {
	ID       WidgetID
	Role     Role
	Label    string
	Bounds   graphics.Rect
	Disabled bool
	Focused  bool
	Children []WidgetID
}

// AccessTree is the result of the accessibility pass.
type AccessTree struct {
	// AppName is the configured application name.
	AppName string
	Root    WidgetID
	Nodes   map[WidgetID]*AccessNode
}

// Node returns the node of id, or nil.
func (t *AccessTree) Node(id WidgetID) *AccessNode {
	return t.Nodes[id]
}
