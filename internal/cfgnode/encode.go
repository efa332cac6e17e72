package cfgnode

import (
	"bytes"
	"strings"
)

// Marshal encodes n in the config text format.
//
// An unnamed node is written as its bare contents, which is how whole files
// are stored. A named node is wrapped in its own NAME { ... } block.
// Keys and values are written byte for byte; Parse returns them unchanged.
func Marshal(n *Node) []byte {
	var buf bytes.Buffer
	if n.Name == "" {
		writeBody(&buf, n, 0)
	} else {
		writeNode(&buf, n, 0)
	}
	return buf.Bytes()
}

func writeBody(buf *bytes.Buffer, n *Node, depth int) {
	indent := strings.Repeat("\t", depth)
	for _, v := range n.Values {
		buf.WriteString(indent)
		buf.WriteString(v.Name)
		buf.WriteString(" = ")
		buf.WriteString(v.Value)
		buf.WriteByte('\n')
	}
	for _, child := range n.Nodes {
		writeNode(buf, child, depth)
	}
}

func writeNode(buf *bytes.Buffer, n *Node, depth int) {
	indent := strings.Repeat("\t", depth)
	buf.WriteString(indent)
	buf.WriteString(n.Name)
	buf.WriteByte('\n')
	buf.WriteString(indent)
	buf.WriteString("{\n")
	writeBody(buf, n, depth+1)
	buf.WriteString(indent)
	buf.WriteString("}\n")
}
