package tokenizer

import (
	"testing"

	"github.com/tamarisk-labs/htmlcore/htmlerr"
)

func collectTokens(t *testing.T, html string) []Token {
	t.Helper()
	tok := New(html)
	var out []Token
	for {
		tt, err := tok.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, tt)
		if tt.Type == EOF {
			break
		}
	}
	return out
}

func TestDoctypeHtmlStartTags(t *testing.T) {
	tokens := collectTokens(t, "<!DOCTYPE html><html><head></head><body>Test</body></html>")
	var kinds []TokenKind
	for _, tt := range tokens {
		kinds = append(kinds, tt.Type)
	}
	want := []TokenKind{DOCTYPE, StartTag, StartTag, EndTag, StartTag, Character, Character, Character, Character, EndTag, EndTag, EOF}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %#v, want %d tokens", kinds, len(want))
	}
	if tokens[0].Name != "html" {
		t.Fatalf("doctype name = %q, want html", tokens[0].Name)
	}
}

func TestCharacterTokenIsSingleCodePoint(t *testing.T) {
	tokens := collectTokens(t, "AB")
	if len(tokens) != 3 {
		t.Fatalf("tokens = %#v, want 3 (two Character, one EOF)", tokens)
	}
	if tokens[0].Type != Character || tokens[0].Char != 'A' {
		t.Fatalf("tokens[0] = %#v, want Character('A')", tokens[0])
	}
	if tokens[1].Type != Character || tokens[1].Char != 'B' {
		t.Fatalf("tokens[1] = %#v, want Character('B')", tokens[1])
	}
}

func TestAttributeParsingAndDeduplication(t *testing.T) {
	tokens := collectTokens(t, `<div a="1" b='2' a="3">`)
	if len(tokens) != 2 || tokens[0].Type != StartTag {
		t.Fatalf("tokens = %#v, want single StartTag", tokens)
	}
	if got := tokens[0].Attrs["a"]; got != "1" {
		t.Fatalf(`attrs["a"] = %q, want "1" (first occurrence wins)`, got)
	}
	if got := tokens[0].Attrs["b"]; got != "2" {
		t.Fatalf(`attrs["b"] = %q, want "2"`, got)
	}
}

func TestUnquotedAttributeValue(t *testing.T) {
	tokens := collectTokens(t, "<div a=b>")
	if tokens[0].Attrs["a"] != "b" {
		t.Fatalf("attrs = %#v", tokens[0].Attrs)
	}
}

func TestMissingAttributeValue(t *testing.T) {
	tokens := collectTokens(t, "<div a=>")
	if got, ok := tokens[0].AttrVal("a"); !ok || got != "" {
		t.Fatalf("attrs[a] = %q, ok=%v, want empty/true", got, ok)
	}
}

func TestNullInDataIsReplaced(t *testing.T) {
	tok := New("a b")
	var chars []rune
	for {
		tt, err := tok.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tt.Type == EOF {
			break
		}
		chars = append(chars, tt.Char)
	}
	if string(chars) != "a�b" {
		t.Fatalf("chars = %q, want %q", string(chars), "a�b")
	}
	if errs := tok.Errors(); len(errs) != 1 || errs[0].Code != htmlerr.UnexpectedNullCharacter {
		t.Fatalf("errors = %#v", errs)
	}
}

func TestCommentTokenAccumulatesData(t *testing.T) {
	tokens := collectTokens(t, "<!-- hello -->")
	if len(tokens) != 2 || tokens[0].Type != Comment {
		t.Fatalf("tokens = %#v, want single Comment", tokens)
	}
	if tokens[0].Data != " hello " {
		t.Fatalf("data = %q, want %q", tokens[0].Data, " hello ")
	}
}

func TestEmptyCommentAbruptClose(t *testing.T) {
	tok := New("<!-->")
	tt, err := tok.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tt.Type != Comment || tt.Data != "" {
		t.Fatalf("tt = %#v, want empty Comment", tt)
	}
	if errs := tok.Errors(); len(errs) != 1 || errs[0].Code != htmlerr.AbruptClosingOfEmptyComment {
		t.Fatalf("errors = %#v", errs)
	}
}

func TestCarriageReturnIsUnsupported(t *testing.T) {
	tok := New("a\rb")
	tok.Next() // 'a'
	if _, err := tok.Next(); err == nil {
		t.Fatal("expected an unsupported-construct error for a raw CR")
	}
}

func TestTitleDoesNotSwitchToRCDATA(t *testing.T) {
	tok := New("<title>")
	_, err := tok.Next() // StartTag(title)
	if err != nil {
		t.Fatalf("unexpected error emitting the start tag: %v", err)
	}
	// This tokenizer never switches into RCDATA for <title> (that
	// transition is out of scope), so the next character is read in Data
	// and the stream terminates normally rather than raising an error.
	tt, err := tok.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tt.Type != EOF {
		t.Fatalf("tt = %#v, want EOF", tt)
	}
}

func TestLazyStreamTerminatesWithExactlyOneEOF(t *testing.T) {
	tokens := collectTokens(t, "<p>hi</p>")
	last := tokens[len(tokens)-1]
	if last.Type != EOF {
		t.Fatalf("last token = %#v, want EOF", last)
	}
	for _, tt := range tokens[:len(tokens)-1] {
		if tt.Type == EOF {
			t.Fatalf("EOF appeared before the end of the stream: %#v", tokens)
		}
	}
}
