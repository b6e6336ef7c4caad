package core

// Widget is an immutable description of part of the UI.
type Widget interface {
	// CreateElement returns a fresh element able to host this widget.
	CreateElement() Element
	// Key identifies the widget among its siblings. Nil means no key.
	Key() any
}

// StatelessWidget describes UI purely in terms of its own configuration.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget owns a State that survives rebuilds.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// NodeWidget is a widget that is itself a node of the presentation tree,
// such as a text label or a column. Leaf widgets return nil children.
type NodeWidget interface {
	Widget
	ChildWidgets() []Widget
}

// State holds the mutable data of a StatefulWidget.
// Embed StateBase to get default implementations for everything but Build.
type State interface {
	InitState()
	Build(ctx BuildContext) Widget
	Dispose()
	DidUpdateWidget(oldWidget StatefulWidget)
}

// BuildContext gives widgets access to their place in the tree.
type BuildContext interface {
	Widget() Widget
	Owner() *BuildOwner
	FindAncestor(predicate func(Element) bool) Element
}

// Element is the instantiation of a Widget at a particular location in the tree.
type Element interface {
	BuildContext
	Mount(parent Element, slot any)
	Update(newWidget Widget)
	Unmount()
	RebuildIfNeeded()
	MarkNeedsBuild()
	VisitChildren(visitor func(Element) bool)
	Depth() int
}

// Walk visits root and its descendants depth-first in pre-order.
// Returning false from visit skips that element's subtree.
func Walk(root Element, visit func(Element) bool) {
	if root == nil {
		return
	}
	if !visit(root) {
		return
	}
	root.VisitChildren(func(child Element) bool {
		Walk(child, visit)
		return true
	})
}
