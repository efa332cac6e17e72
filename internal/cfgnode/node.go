// Package cfgnode reads and writes the host's config text format: a tree
// of named nodes, each holding ordered "key = value" pairs and child nodes.
//
//	TIME = 42.5
//	MOMENTUM
//	{
//		vessel-id = 0,0,0
//	}
//
// Values are opaque strings. Keys may repeat; lookups return the first match.
package cfgnode

// Value is a single key/value pair.
type Value struct {
	Name  string
	Value string
}

// Node is a named config node. The root node of a file has an empty name.
type Node struct {
	Name   string
	Values []Value
	Nodes  []*Node
}

// New returns an empty node with the given name.
func New(name string) *Node {
	return &Node{Name: name}
}

// AddValue appends a key/value pair.
func (n *Node) AddValue(name, value string) {
	n.Values = append(n.Values, Value{Name: name, Value: value})
}

// GetValue returns the first value stored under name.
func (n *Node) GetValue(name string) (string, bool) {
	for _, v := range n.Values {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// AddNode appends and returns a new child node.
func (n *Node) AddNode(name string) *Node {
	child := New(name)
	n.Nodes = append(n.Nodes, child)
	return child
}

// GetNode returns the first child with the given name, or nil.
func (n *Node) GetNode(name string) *Node {
	for _, c := range n.Nodes {
		if c.Name == name {
			return c
		}
	}
	return nil
}
