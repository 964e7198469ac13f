package treebuilder

import (
	"testing"

	"github.com/tamarisk-labs/htmlcore/arena"
	"github.com/tamarisk-labs/htmlcore/htmlerr"
	"github.com/tamarisk-labs/htmlcore/tokenizer"
)

// build runs html through a real Tokenizer and a fresh TreeBuilder, failing
// the test on any error.
func build(t *testing.T, html string) *TreeBuilder {
	t.Helper()
	tb := New()
	tok := tokenizer.New(html)
	if err := tb.Build(tok); err != nil {
		t.Fatalf("Build(%q) error: %v", html, err)
	}
	return tb
}

func TestSeedScenarioBasicDocument(t *testing.T) {
	tb := build(t, "<!DOCTYPE html><html><head></head><body>Test</body></html>")
	got := tb.Tree().Render()
	want := "#document\n| <!DOCTYPE html>\n| <html>\n|   <head>\n|   <body>\n|     \"Test\""
	if got != want {
		t.Fatalf("render =\n%s\nwant\n%s", got, want)
	}
}

func TestSeedScenarioMetaInHead(t *testing.T) {
	tb := build(t, `<!DOCTYPE html><html><head><meta charset="utf-8"></head><body></body></html>`)
	htmlIdx := childNamed(tb, tb.Tree().Root(), "html")
	headIdx := childNamed(tb, htmlIdx, "head")
	if headIdx == arena.NoIndex {
		t.Fatalf("no head element found")
	}
	children := tb.Tree().Children(headIdx)
	if len(children) != 1 {
		t.Fatalf("head children = %#v, want exactly the popped meta element", children)
	}
	meta := tb.Tree().GetNode(children[0])
	if meta.LocalName != "meta" || meta.Attrs["charset"] != "utf-8" {
		t.Fatalf("meta node = %#v", meta)
	}
}

func TestSeedScenarioSynthesizedHeadAndBody(t *testing.T) {
	tb := build(t, "<!DOCTYPE html>Test")
	got := tb.Tree().Render()
	want := "#document\n| <!DOCTYPE html>\n| <html>\n|   <head>\n|   <body>\n|     \"Test\""
	if got != want {
		t.Fatalf("render =\n%s\nwant\n%s", got, want)
	}
}

func TestSeedScenarioCommentInBodyIsDropped(t *testing.T) {
	tb := build(t, "<!DOCTYPE html><html><head></head><body><!-- x -->A</body></html>")
	got := tb.Tree().Render()
	want := "#document\n| <!DOCTYPE html>\n| <html>\n|   <head>\n|   <body>\n|     \"A\""
	if got != want {
		t.Fatalf("render =\n%s\nwant\n%s (comment must be dropped, not inserted)", got, want)
	}
}

func TestSeedScenarioCharactersCoalesceIntoOneTextNode(t *testing.T) {
	tb := build(t, "<!DOCTYPE html><html><head></head><body>AB</body></html>")
	htmlIdx := childNamed(tb, tb.Tree().Root(), "html")
	bodyIdx := childNamed(tb, htmlIdx, "body")
	if bodyIdx == arena.NoIndex {
		t.Fatalf("no body element found")
	}
	children := tb.Tree().Children(bodyIdx)
	if len(children) != 1 {
		t.Fatalf("body children = %#v, want a single coalesced Text node", children)
	}
	if tb.Tree().GetNode(children[0]).Data != "AB" {
		t.Fatalf("text = %#v, want \"AB\"", tb.Tree().GetNode(children[0]))
	}
}

func TestSeedScenarioTagNameCaseFolding(t *testing.T) {
	tb := build(t, "<!DOCTYPE html><HTML><HEAD></HEAD><BODY></BODY></HTML>")
	for _, html := range tb.Tree().Children(tb.Tree().Root()) {
		if html == tb.Tree().Root() {
			continue
		}
		if tb.Tree().GetNode(html).Type != arena.ElementNode {
			continue
		}
		if tb.Tree().GetNode(html).LocalName != "html" {
			t.Fatalf("local name = %q, want lowercase html", tb.Tree().GetNode(html).LocalName)
		}
	}
}

func TestReprocessingSkipsStraightToBeforeHead(t *testing.T) {
	// No <html> start tag at all: BeforeHtml synthesizes one and reprocesses
	// the same token under BeforeHead, which in turn synthesizes <head>.
	tb := build(t, "<!DOCTYPE html><body>hi</body>")
	root := tb.Tree().Root()
	children := tb.Tree().Children(root)
	if len(children) != 2 {
		t.Fatalf("document children = %#v, want doctype + synthesized html", children)
	}
	htmlNode := tb.Tree().GetNode(children[1])
	if htmlNode.LocalName != "html" {
		t.Fatalf("second child = %#v, want synthesized html element", htmlNode)
	}
}

func TestUnsupportedInsertionModeHaltsBuild(t *testing.T) {
	tb := New()
	tb.mode = InTable // out of scope, no handling logic
	err := tb.ProcessToken(tokenizer.Token{Type: tokenizer.Character, Char: 'x'})
	var uce *htmlerr.UnsupportedConstructError
	if err == nil {
		t.Fatal("expected an unsupported-construct error")
	}
	if !asUnsupported(err, &uce) {
		t.Fatalf("error = %#v, want *htmlerr.UnsupportedConstructError", err)
	}
}

func TestPopFromEmptyStackPanicsWithInvariantViolation(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		if _, ok := r.(htmlerr.InvariantViolation); !ok {
			t.Fatalf("recovered %#v, want htmlerr.InvariantViolation", r)
		}
	}()
	tb := New()
	tb.pop()
}

func asUnsupported(err error, target **htmlerr.UnsupportedConstructError) bool {
	if uce, ok := err.(*htmlerr.UnsupportedConstructError); ok {
		*target = uce
		return true
	}
	return false
}

// childNamed returns the first element child of parent with the given local
// name, or arena.NoIndex if none exists.
func childNamed(tb *TreeBuilder, parent arena.Index, name string) arena.Index {
	for _, c := range tb.Tree().Children(parent) {
		n := tb.Tree().GetNode(c)
		if n.Type == arena.ElementNode && n.LocalName == name {
			return c
		}
	}
	return arena.NoIndex
}
