package arena

import (
	"fmt"
	"strings"
)

// Render produces the depth-first pre-order text form the test harness
// compares line by line: each node at depth d is prefixed with "|" followed
// by 2d-1 spaces (depth 0 has no prefix), then the node's shape.
func (t *Tree) Render() string {
	var sb strings.Builder
	first := true
	t.Walk(func(depth int, idx Index, data *Node) {
		if !first {
			sb.WriteByte('\n')
		}
		first = false
		if depth > 0 {
			sb.WriteByte('|')
			sb.WriteString(strings.Repeat(" ", 2*depth-1))
		}
		sb.WriteString(shape(data))
	})
	return sb.String()
}

// shape renders a single node's textual form, independent of depth.
func shape(n *Node) string {
	switch n.Type {
	case DocumentNode:
		return "#document"
	case DocumentTypeNode:
		return fmt.Sprintf("<!DOCTYPE %s>", n.Name)
	case ElementNode:
		return fmt.Sprintf("<%s>", n.LocalName)
	case TextNode:
		return fmt.Sprintf("%q", n.Data)
	case CommentNode:
		return fmt.Sprintf("<!-- %s -->", n.Data)
	default:
		return "#unknown"
	}
}
