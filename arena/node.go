// Package arena implements an index-addressed document tree.
//
// Nodes live in a single append-only slice; there are no parent
// back-pointers and no owning references outside the arena itself. A node's
// identity is its index, and that index never changes once assigned.
package arena

// NodeType identifies which variant of Node a given record holds.
type NodeType int

const (
	DocumentNode NodeType = iota
	DocumentTypeNode
	ElementNode
	TextNode
	CommentNode
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "Document"
	case DocumentTypeNode:
		return "DocumentType"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Index identifies a node's position in the arena. It is the only way
// other structures (the tree builder's stack of open elements, the head
// element pointer) may refer to a node.
type Index int

// NoIndex is the zero value for an optional Index.
const NoIndex Index = -1

// Node is a tagged union over the five node shapes the parser produces.
// Exactly one of the type-specific fields is meaningful, selected by Type.
type Node struct {
	Type NodeType

	// DocumentType fields.
	Name     string
	PublicID string
	SystemID string

	// Element fields.
	Namespace string
	LocalName string
	Attrs     map[string]string

	// Text / Comment field.
	Data string
}

// NewDocument returns an empty Document node.
func NewDocument() Node {
	return Node{Type: DocumentNode}
}

// NewDocumentType returns a DocumentType node. publicID and systemID use
// the empty string to mean "missing" is indistinguishable at this layer
// from "empty"; callers that need the tri-state distinction keep it in the
// token, not the node.
func NewDocumentType(name, publicID, systemID string) Node {
	return Node{Type: DocumentTypeNode, Name: name, PublicID: publicID, SystemID: systemID}
}

// NewElement returns an Element node in the HTML namespace with its own
// copy of attrs.
func NewElement(localName string, attrs map[string]string) Node {
	cp := make(map[string]string, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}
	return Node{Type: ElementNode, Namespace: "html", LocalName: localName, Attrs: cp}
}

// NewText returns a Text node holding data. "Insert a character" starts a
// run with a single code point and replaces the node with a longer one as
// the run grows.
func NewText(data string) Node {
	return Node{Type: TextNode, Data: data}
}

// NewComment returns a Comment node.
func NewComment(data string) Node {
	return Node{Type: CommentNode, Data: data}
}
