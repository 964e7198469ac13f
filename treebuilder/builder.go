// Package treebuilder implements the insertion-mode state machine that
// consumes a token sequence and mutates an arena.Tree.
//
// Only eight of the specification's 23 named insertion modes carry real
// handling logic: Initial, BeforeHtml, BeforeHead, InHead, AfterHead,
// InBody, AfterBody, AfterAfterBody. Every other mode is a valid dispatch
// target but immediately raises an unsupported-construct error.
package treebuilder

import (
	"github.com/tamarisk-labs/htmlcore/arena"
	"github.com/tamarisk-labs/htmlcore/htmlerr"
	"github.com/tamarisk-labs/htmlcore/tokenizer"
)

// tokenSource is the pull interface the tree builder consumes;
// *tokenizer.Tokenizer satisfies it.
type tokenSource interface {
	Next() (tokenizer.Token, error)
}

// TreeBuilder drives the tree construction insertion-mode machine.
type TreeBuilder struct {
	tree *arena.Tree

	mode InsertionMode

	documentIdx arena.Index
	htmlIdx     arena.Index

	stack   []arena.Index // stack of open elements, top = last
	headPtr arena.Index   // NoIndex until a head element is inserted

	// pendingToken holds at most one token whose mode transition
	// mandated reprocessing; the next iteration of ProcessToken
	// preferentially consumes from here over the token stream.
	pendingToken *tokenizer.Token

	quirks bool
}

// New constructs a TreeBuilder with a pre-seeded Document node as root.
func New() *TreeBuilder {
	tree := arena.New()
	doc := tree.CreateNode(arena.NewDocument())
	tree.SetRoot(doc)
	return &TreeBuilder{
		tree:        tree,
		mode:        Initial,
		documentIdx: doc,
		htmlIdx:     arena.NoIndex,
		headPtr:     arena.NoIndex,
	}
}

// Tree returns the underlying arena tree.
func (tb *TreeBuilder) Tree() *arena.Tree {
	return tb.tree
}

// Build consumes tokens from src to completion, synchronously, stopping
// at EndOfFile or a stop-parsing trigger. A non-nil error is an
// unsupported-construct error (kind 2) surfaced to the caller.
func (tb *TreeBuilder) Build(src tokenSource) error {
	for {
		tok, err := src.Next()
		if err != nil {
			return err
		}
		if err := tb.ProcessToken(tok); err != nil {
			return err
		}
		if tok.Type == tokenizer.EOF {
			return nil
		}
	}
}

// ProcessToken runs tok (or the pending token, if one is set) through the
// current insertion mode, looping while a mode requests reprocessing.
func (tb *TreeBuilder) ProcessToken(tok tokenizer.Token) error {
	for {
		current := tok
		if tb.pendingToken != nil {
			current = *tb.pendingToken
			tb.pendingToken = nil
		}

		if !inScope(tb.mode) {
			return &htmlerr.UnsupportedConstructError{
				Where:   "insertion mode " + tb.mode.String(),
				Trigger: current.String(),
			}
		}

		reprocess, err := tb.dispatch(current)
		if err != nil {
			return err
		}
		if !reprocess {
			return nil
		}
		tb.pendingToken = &current
	}
}

func (tb *TreeBuilder) dispatch(tok tokenizer.Token) (bool, error) {
	switch tb.mode {
	case Initial:
		return tb.processInitial(tok)
	case BeforeHtml:
		return tb.processBeforeHtml(tok)
	case BeforeHead:
		return tb.processBeforeHead(tok)
	case InHead:
		return tb.processInHead(tok)
	case AfterHead:
		return tb.processAfterHead(tok)
	case InBody:
		return tb.processInBody(tok)
	case AfterBody:
		return tb.processAfterBody(tok)
	case AfterAfterBody:
		return tb.processAfterAfterBody(tok)
	default:
		return false, &htmlerr.UnsupportedConstructError{
			Where:   "insertion mode " + tb.mode.String(),
			Trigger: tok.String(),
		}
	}
}

// currentNode is the element at the top of the stack of open elements, or
// NoIndex if the stack is empty.
func (tb *TreeBuilder) currentNode() arena.Index {
	if len(tb.stack) == 0 {
		return arena.NoIndex
	}
	return tb.stack[len(tb.stack)-1]
}

func (tb *TreeBuilder) push(idx arena.Index) {
	tb.stack = append(tb.stack, idx)
}

func (tb *TreeBuilder) pop() arena.Index {
	if len(tb.stack) == 0 {
		htmlerr.Violate("pop from empty stack of open elements")
	}
	top := tb.stack[len(tb.stack)-1]
	tb.stack = tb.stack[:len(tb.stack)-1]
	return top
}

// insertionParent returns the node that should receive a new child: the
// current node if the stack is non-empty, else the Document.
func (tb *TreeBuilder) insertionParent() arena.Index {
	if cur := tb.currentNode(); cur != arena.NoIndex {
		return cur
	}
	return tb.documentIdx
}

// insertHTMLElement implements "insert an HTML element": create an
// element from the token, append it under the current insertion parent,
// and push its index onto the stack of open elements.
func (tb *TreeBuilder) insertHTMLElement(tok tokenizer.Token) arena.Index {
	idx := tb.tree.CreateNode(arena.NewElement(tok.Name, tok.Attrs))
	tb.tree.AddChild(tb.insertionParent(), idx)
	tb.push(idx)
	return idx
}

// insertCharacter implements "insert a character": grow the current
// node's trailing Text child in place, or create one if none exists,
// coalescing adjacent character tokens into a single Text node.
func (tb *TreeBuilder) insertCharacter(ch rune) {
	parent := tb.insertionParent()
	if last, ok := tb.tree.LastChild(parent); ok {
		node := tb.tree.GetNode(last)
		if node.Type == arena.TextNode {
			tb.tree.ReplaceDataAt(last, arena.NewText(node.Data+string(ch)))
			return
		}
	}
	text := tb.tree.CreateNode(arena.NewText(string(ch)))
	tb.tree.AddChild(parent, text)
}

// insertComment appends a Comment node under the current insertion
// parent. No in-scope mode currently calls this (see DESIGN.md's
// comment-dropping resolution); it stays as the primitive a future
// mode would reach for.
func (tb *TreeBuilder) insertComment(data string) {
	idx := tb.tree.CreateNode(arena.NewComment(data))
	tb.tree.AddChild(tb.insertionParent(), idx)
}

func isWhitespaceChar(tok tokenizer.Token) bool {
	if tok.Type != tokenizer.Character {
		return false
	}
	c := tok.Char
	return c == '\t' || c == '\n' || c == '\f' || c == ' '
}

// synthesize builds a bare start tag token with no attributes, used when
// a mode must act as if an implied tag had been seen (e.g. a synthesized
// "html" or "body" start tag).
func synthesize(name string) tokenizer.Token {
	return tokenizer.Token{Type: tokenizer.StartTag, Name: name, Attrs: map[string]string{}}
}
