package treebuilder

import (
	"github.com/tamarisk-labs/htmlcore/arena"
	"github.com/tamarisk-labs/htmlcore/tokenizer"
)

// Each processX method implements one insertion mode: a function from
// Token to (reprocess, error). A true reprocess return tells ProcessToken
// to store the token in the pending slot and run it again under the
// (possibly new) mode.

func (tb *TreeBuilder) processInitial(tok tokenizer.Token) (bool, error) {
	switch {
	case tok.Type == tokenizer.DOCTYPE:
		tb.insertDoctype(tok)
		tb.quirks = tok.ForceQuirks
		tb.mode = BeforeHtml
		return false, nil
	case isWhitespaceChar(tok):
		return false, nil
	default:
		tb.mode = BeforeHtml
		return true, nil
	}
}

// insertDoctype appends a DocumentType node to the Document, resolving
// the open question spec.md records about Initial mode: the source this
// was distilled from transitions modes without inserting the node, but an
// implementer should insert it.
func (tb *TreeBuilder) insertDoctype(tok tokenizer.Token) {
	idx := tb.tree.CreateNode(arena.NewDocumentType(tok.Name, ptrOrEmpty(tok.PublicID), ptrOrEmpty(tok.SystemID)))
	tb.tree.AddChild(tb.documentIdx, idx)
}

func ptrOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (tb *TreeBuilder) processBeforeHtml(tok tokenizer.Token) (bool, error) {
	switch {
	case isWhitespaceChar(tok):
		return false, nil
	case tok.Type == tokenizer.StartTag && tok.Name == "html":
		tb.htmlIdx = tb.insertHTMLElement(tok)
		tb.mode = BeforeHead
		return false, nil
	case tok.Type == tokenizer.EndTag && !isOneOf(tok.Name, "head", "body", "html", "br"):
		return false, nil // parse error, ignore
	default:
		tb.htmlIdx = tb.insertHTMLElement(synthesize("html"))
		tb.mode = BeforeHead
		return true, nil
	}
}

func (tb *TreeBuilder) processBeforeHead(tok tokenizer.Token) (bool, error) {
	switch {
	case isWhitespaceChar(tok), tok.Type == tokenizer.Comment:
		return false, nil
	case tok.Type == tokenizer.StartTag && tok.Name == "head":
		tb.headPtr = tb.insertHTMLElement(tok)
		tb.mode = InHead
		return false, nil
	default:
		tb.headPtr = tb.insertHTMLElement(synthesize("head"))
		tb.mode = InHead
		return true, nil
	}
}

// selfContainedHeadElements are start tags inserted and immediately
// popped in InHead, the in-scope stand-ins for "meta and its
// spec-defined siblings" named in spec.md.
var selfContainedHeadElements = map[string]bool{
	"meta": true, "base": true, "basefont": true, "bgsound": true, "link": true,
}

func (tb *TreeBuilder) processInHead(tok tokenizer.Token) (bool, error) {
	switch {
	case isWhitespaceChar(tok):
		tb.insertCharacter(tok.Char)
		return false, nil
	case tok.Type == tokenizer.Comment:
		return false, nil // dropped; see DESIGN.md's minimal-mode comment decision
	case tok.Type == tokenizer.StartTag && selfContainedHeadElements[tok.Name]:
		tb.insertHTMLElement(tok)
		tb.pop()
		return false, nil
	case tok.Type == tokenizer.EndTag && tok.Name == "head":
		tb.pop()
		tb.mode = AfterHead
		return false, nil
	default:
		tb.pop()
		tb.mode = AfterHead
		return true, nil
	}
}

func (tb *TreeBuilder) processAfterHead(tok tokenizer.Token) (bool, error) {
	switch {
	case isWhitespaceChar(tok):
		tb.insertCharacter(tok.Char)
		return false, nil
	case tok.Type == tokenizer.StartTag && tok.Name == "body":
		tb.insertHTMLElement(tok)
		tb.mode = InBody
		return false, nil
	default:
		tb.insertHTMLElement(synthesize("body"))
		tb.mode = InBody
		return true, nil
	}
}

func (tb *TreeBuilder) processInBody(tok tokenizer.Token) (bool, error) {
	switch {
	case tok.Type == tokenizer.Character:
		tb.insertCharacter(tok.Char)
		return false, nil
	case tok.Type == tokenizer.Comment:
		return false, nil // dropped; see DESIGN.md's minimal-mode comment decision
	case tok.Type == tokenizer.EndTag && tok.Name == "body":
		tb.mode = AfterBody
		return false, nil
	case tok.Type == tokenizer.EOF:
		return false, nil // stop parsing
	default:
		return false, nil
	}
}

func (tb *TreeBuilder) processAfterBody(tok tokenizer.Token) (bool, error) {
	switch {
	case isWhitespaceChar(tok):
		tb.insertCharacter(tok.Char)
		return false, nil
	case tok.Type == tokenizer.EndTag && tok.Name == "html":
		tb.mode = AfterAfterBody
		return false, nil
	default:
		// Not named explicitly in this mode's in-scope behaviour; fall
		// back to the living standard's generic "anything else" rule for
		// AfterBody: treat the token as if InBody were still current.
		tb.mode = InBody
		return true, nil
	}
}

func (tb *TreeBuilder) processAfterAfterBody(tok tokenizer.Token) (bool, error) {
	switch {
	case isWhitespaceChar(tok):
		tb.insertCharacter(tok.Char)
		return false, nil
	case tok.Type == tokenizer.EOF:
		return false, nil // stop parsing
	default:
		tb.mode = InBody
		return true, nil
	}
}

func isOneOf(name string, options ...string) bool {
	for _, o := range options {
		if name == o {
			return true
		}
	}
	return false
}
