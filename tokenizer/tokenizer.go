// Package tokenizer implements the character-driven state machine that
// classifies an already-decoded code point stream into HTML tokens.
//
// Only a subset of the named HTML5 tokenizer states carry real transition
// logic here: Data, TagOpen, EndTagOpen, TagName, BeforeAttributeName,
// AttributeName, BeforeAttributeValue, AttributeValueDoubleQuoted,
// AttributeValueSingleQuoted, AttributeValueUnquoted,
// AfterAttributeValueQuoted, MarkupDeclarationOpen, CommentStart,
// CommentStartDash, Comment, CommentEndDash, CommentEnd, DOCTYPE,
// BeforeDOCTYPEName, and DOCTYPEName. Every other named state (RCDATA,
// RAWTEXT, script data, CDATA, character references, and so on) is a valid
// dispatch target but immediately raises an unsupported-construct error
// rather than guessing at behavior the caller never asked for.
package tokenizer

import (
	"fmt"

	"github.com/tamarisk-labs/htmlcore/htmlerr"
	"github.com/tamarisk-labs/htmlcore/internal/constants"
)

// Tokenizer pulls tokens one at a time from a fully materialized code
// point stream. It never buffers more than the token currently under
// construction.
type Tokenizer struct {
	input []rune
	pos   int
	line  int
	col   int

	state State

	eofEmitted bool
	errs       []htmlerr.ParseError

	// Tag under construction.
	tagKind     TokenKind // StartTag or EndTag
	tagName     []rune
	tagAttrs    map[string]string
	selfClosing bool

	// Attribute scratch, accumulated name/value independent of tagAttrs
	// until finishAttribute folds it in.
	attrName  []rune
	attrValue []rune
	quote     rune // the quote that opened the current quoted value

	// Comment data accumulator.
	commentData []rune

	// DOCTYPE under construction.
	doctypeName        []rune
	doctypeNameClosed  bool
	doctypeForceQuirks bool
}

// New constructs a Tokenizer over html, starting in the Data state.
func New(html string) *Tokenizer {
	return &Tokenizer{
		input: []rune(html),
		state: DataState,
		line:  1,
		col:   1,
	}
}

// Errors returns every parse error (kind 1) collected so far.
func (t *Tokenizer) Errors() []htmlerr.ParseError {
	return t.errs
}

const eof = -1

// getChar consumes and returns the next input code point, or eof at the
// end of input. Per the open question recorded in this module's design
// notes, a raw carriage return is treated as evidence that upstream line
// ending normalization did not happen, and is surfaced as an
// unsupported-construct error rather than silently handled.
func (t *Tokenizer) getChar() (rune, error) {
	if t.pos >= len(t.input) {
		return eof, nil
	}
	c := t.input[t.pos]
	t.pos++
	if c == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}
	if c == '\r' {
		return 0, &htmlerr.UnsupportedConstructError{
			Where:   "tokenizer input stream",
			Trigger: "U+000D CARRIAGE RETURN (line ending normalization is assumed to happen upstream)",
		}
	}
	return c, nil
}

// reconsume rewinds the cursor by one so the next getChar returns the same
// code point again, to be read under a different state.
func (t *Tokenizer) reconsume() {
	t.pos--
}

func (t *Tokenizer) parseError(code string) {
	t.errs = append(t.errs, htmlerr.ParseError{Code: code, Line: t.line, Column: t.col})
}

func (t *Tokenizer) unsupported(trigger string) (Token, error) {
	return Token{Type: EOF}, &htmlerr.UnsupportedConstructError{
		Where:   "tokenizer state " + t.state.String(),
		Trigger: trigger,
	}
}

// Next pulls and returns the next token. Once an EndOfFile token has been
// returned, every subsequent call returns EndOfFile again with no error.
// A non-nil error is an unsupported-construct error (kind 2); the returned
// token should be discarded by the caller in that case.
func (t *Tokenizer) Next() (Token, error) {
	if t.eofEmitted {
		return Token{Type: EOF}, nil
	}
	for {
		tok, emitted, err := t.step()
		if err != nil {
			t.eofEmitted = true
			return tok, err
		}
		if emitted {
			if tok.Type == EOF {
				t.eofEmitted = true
			}
			return tok, nil
		}
	}
}

// step runs exactly one character's worth of state transition, returning a
// token if one became ready. The dispatcher is a single trampoline: no
// state handler calls another state's handler directly, so a long run of
// non-emitting transitions (e.g. scanning a comment) loops here instead of
// recursing.
func (t *Tokenizer) step() (Token, bool, error) {
	if !inScope(t.state) {
		return t.unsupportedStep()
	}
	switch t.state {
	case DataState:
		return t.stepData()
	case TagOpenState:
		return t.stepTagOpen()
	case EndTagOpenState:
		return t.stepEndTagOpen()
	case TagNameState:
		return t.stepTagName()
	case BeforeAttributeNameState:
		return t.stepBeforeAttributeName()
	case AttributeNameState:
		return t.stepAttributeName()
	case BeforeAttributeValueState:
		return t.stepBeforeAttributeValue()
	case AttributeValueDoubleQuotedState, AttributeValueSingleQuotedState:
		return t.stepAttributeValueQuoted()
	case AttributeValueUnquotedState:
		return t.stepAttributeValueUnquoted()
	case AfterAttributeValueQuotedState:
		return t.stepAfterAttributeValueQuoted()
	case MarkupDeclarationOpenState:
		return t.stepMarkupDeclarationOpen()
	case CommentStartState:
		return t.stepCommentStart()
	case CommentStartDashState:
		return t.stepCommentStartDash()
	case CommentState:
		return t.stepComment()
	case CommentEndDashState:
		return t.stepCommentEndDash()
	case CommentEndState:
		return t.stepCommentEnd()
	case DOCTYPEState:
		return t.stepDoctype()
	case BeforeDOCTYPENameState:
		return t.stepBeforeDoctypeName()
	case DOCTYPENameState:
		return t.stepDoctypeName()
	default:
		return t.unsupportedStep()
	}
}

func (t *Tokenizer) unsupportedStep() (Token, bool, error) {
	tok, err := t.unsupported(fmt.Sprintf("reaching state %s", t.state))
	return tok, true, err
}

// --- Data ---

func (t *Tokenizer) stepData() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch c {
	case eof:
		return Token{Type: EOF}, true, nil
	case '&':
		t.state = CharacterReferenceState
		return Token{}, false, nil
	case '<':
		t.state = TagOpenState
		return Token{}, false, nil
	case 0:
		t.parseError(htmlerr.UnexpectedNullCharacter)
		return Token{Type: Character, Char: '�'}, true, nil
	default:
		return Token{Type: Character, Char: c}, true, nil
	}
}

// --- Tag open / names ---

func (t *Tokenizer) stepTagOpen() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch {
	case c == eof:
		t.parseError(htmlerr.EOFBeforeTagName)
		t.state = DataState
		return Token{Type: Character, Char: '<'}, true, nil
	case c == '!':
		t.state = MarkupDeclarationOpenState
		return Token{}, false, nil
	case c == '/':
		t.state = EndTagOpenState
		return Token{}, false, nil
	case isASCIIAlpha(c):
		t.startTag(StartTag)
		t.reconsume()
		t.state = TagNameState
		return Token{}, false, nil
	default:
		t.parseError(htmlerr.InvalidFirstCharacterOfTagName)
		t.reconsume()
		t.state = DataState
		return Token{Type: Character, Char: '<'}, true, nil
	}
}

func (t *Tokenizer) stepEndTagOpen() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch {
	case c == eof:
		t.parseError(htmlerr.EOFBeforeTagName)
		t.state = DataState
		return Token{Type: Character, Char: '<'}, true, nil
	case isASCIIAlpha(c):
		t.startTag(EndTag)
		t.reconsume()
		t.state = TagNameState
		return Token{}, false, nil
	case c == '>':
		t.parseError(htmlerr.InvalidFirstCharacterOfTagName)
		t.state = DataState
		return Token{}, false, nil
	default:
		t.parseError(htmlerr.InvalidFirstCharacterOfTagName)
		// Rewind over c and the "/" so Data emits the "/" as text next.
		t.reconsume()
		t.reconsume()
		t.state = DataState
		return Token{Type: Character, Char: '<'}, true, nil
	}
}

func (t *Tokenizer) startTag(kind TokenKind) {
	t.tagKind = kind
	t.tagName = t.tagName[:0]
	t.tagAttrs = map[string]string{}
	t.selfClosing = false
}

func (t *Tokenizer) stepTagName() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch {
	case isWhitespace(c):
		t.state = BeforeAttributeNameState
		return Token{}, false, nil
	case c == '/':
		t.state = SelfClosingStartTagState
		return Token{}, false, nil
	case c == '>':
		t.state = DataState
		return t.emitTag(), true, nil
	case c == eof:
		t.parseError(htmlerr.EOFInTag)
		return Token{Type: EOF}, true, nil
	case isASCIIUpper(c):
		t.tagName = append(t.tagName, toLower(c))
		return Token{}, false, nil
	case c == 0:
		t.parseError(htmlerr.UnexpectedNullCharacter)
		t.tagName = append(t.tagName, '�')
		return Token{}, false, nil
	default:
		t.tagName = append(t.tagName, c)
		return Token{}, false, nil
	}
}

func (t *Tokenizer) emitTag() Token {
	name := constants.InternTagName(string(t.tagName))
	return Token{Type: t.tagKind, Name: name, Attrs: t.tagAttrs, SelfClosing: t.selfClosing}
}

// --- Attributes ---
//
// AfterAttributeNameState is folded directly into AttributeName's
// whitespace/"/"/">"/EOF branches: its own behavior (skip whitespace, then
// dispatch) is trivial and spec.md's in-scope list never names it as a
// separately reachable label.

func (t *Tokenizer) stepBeforeAttributeName() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch {
	case isWhitespace(c):
		return Token{}, false, nil
	case c == '/':
		t.state = SelfClosingStartTagState
		return Token{}, false, nil
	case c == eof:
		t.parseError(htmlerr.EOFInTag)
		return Token{Type: EOF}, true, nil
	case c == '>':
		t.state = DataState
		return t.emitTag(), true, nil
	case c == '=':
		t.parseError(htmlerr.UnexpectedEqualsSignBeforeAttributeName)
		t.attrName = append(t.attrName[:0], '=')
		t.attrValue = t.attrValue[:0]
		t.state = AttributeNameState
		return Token{}, false, nil
	case isASCIIUpper(c):
		t.attrName = append(t.attrName[:0], toLower(c))
		t.attrValue = t.attrValue[:0]
		t.state = AttributeNameState
		return Token{}, false, nil
	default:
		t.attrName = t.attrName[:0]
		t.attrValue = t.attrValue[:0]
		t.reconsume()
		t.state = AttributeNameState
		return Token{}, false, nil
	}
}

func (t *Tokenizer) stepAttributeName() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch {
	case isWhitespace(c):
		// AfterAttributeName: skip further whitespace; an "=" after it
		// still introduces this attribute's value.
		for isWhitespace(c) {
			if c, err = t.getChar(); err != nil {
				return Token{}, false, err
			}
		}
		if c == '=' {
			t.state = BeforeAttributeValueState
			return Token{}, false, nil
		}
		if c != eof {
			t.reconsume()
		}
		t.finishAttribute(string(t.attrName), "")
		t.state = BeforeAttributeNameState
		return Token{}, false, nil
	case c == '/':
		t.finishAttribute(string(t.attrName), "")
		t.state = SelfClosingStartTagState
		return Token{}, false, nil
	case c == '=':
		t.state = BeforeAttributeValueState
		return Token{}, false, nil
	case c == '>':
		t.finishAttribute(string(t.attrName), "")
		t.state = DataState
		return t.emitTag(), true, nil
	case c == eof:
		t.parseError(htmlerr.EOFInTag)
		return Token{Type: EOF}, true, nil
	case isASCIIUpper(c):
		t.attrName = append(t.attrName, toLower(c))
		return Token{}, false, nil
	case c == 0:
		t.parseError(htmlerr.UnexpectedNullCharacter)
		t.attrName = append(t.attrName, '�')
		return Token{}, false, nil
	default:
		t.attrName = append(t.attrName, c)
		return Token{}, false, nil
	}
}

// finishAttribute folds the scratch name/value into the tag's attribute
// mapping: first occurrence wins, later duplicates are discarded with a
// parse error, exactly once per attribute regardless of which state ended
// it.
func (t *Tokenizer) finishAttribute(name, value string) {
	name = constants.InternAttributeName(name)
	if _, exists := t.tagAttrs[name]; exists {
		t.parseError(htmlerr.DuplicateAttribute)
		return
	}
	t.tagAttrs[name] = value
}

func (t *Tokenizer) stepBeforeAttributeValue() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch {
	case isWhitespace(c):
		return Token{}, false, nil
	case c == '"':
		t.quote = '"'
		t.attrValue = t.attrValue[:0]
		t.state = AttributeValueDoubleQuotedState
		return Token{}, false, nil
	case c == '\'':
		t.quote = '\''
		t.attrValue = t.attrValue[:0]
		t.state = AttributeValueSingleQuotedState
		return Token{}, false, nil
	case c == '>':
		t.parseError(htmlerr.MissingAttributeValue)
		t.finishAttribute(string(t.attrName), "")
		t.state = DataState
		return t.emitTag(), true, nil
	default:
		t.attrValue = t.attrValue[:0]
		t.reconsume()
		t.state = AttributeValueUnquotedState
		return Token{}, false, nil
	}
}

func (t *Tokenizer) stepAttributeValueQuoted() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch {
	case c == t.quote:
		t.finishAttribute(string(t.attrName), string(t.attrValue))
		t.state = AfterAttributeValueQuotedState
		return Token{}, false, nil
	case c == eof:
		t.parseError(htmlerr.EOFInTag)
		return Token{Type: EOF}, true, nil
	case c == 0:
		t.parseError(htmlerr.UnexpectedNullCharacter)
		t.attrValue = append(t.attrValue, '�')
		return Token{}, false, nil
	default:
		t.attrValue = append(t.attrValue, c)
		return Token{}, false, nil
	}
}

func (t *Tokenizer) stepAttributeValueUnquoted() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch {
	case isWhitespace(c):
		t.finishAttribute(string(t.attrName), string(t.attrValue))
		t.state = BeforeAttributeNameState
		return Token{}, false, nil
	case c == '>':
		t.finishAttribute(string(t.attrName), string(t.attrValue))
		t.state = DataState
		return t.emitTag(), true, nil
	case c == eof:
		t.parseError(htmlerr.EOFInTag)
		return Token{Type: EOF}, true, nil
	case c == 0:
		t.parseError(htmlerr.UnexpectedNullCharacter)
		t.attrValue = append(t.attrValue, '�')
		return Token{}, false, nil
	default:
		t.attrValue = append(t.attrValue, c)
		return Token{}, false, nil
	}
}

func (t *Tokenizer) stepAfterAttributeValueQuoted() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch {
	case isWhitespace(c):
		t.state = BeforeAttributeNameState
		return Token{}, false, nil
	case c == '/':
		t.state = SelfClosingStartTagState
		return Token{}, false, nil
	case c == '>':
		t.state = DataState
		return t.emitTag(), true, nil
	case c == eof:
		t.parseError(htmlerr.EOFInTag)
		return Token{Type: EOF}, true, nil
	default:
		t.parseError(htmlerr.MissingWhitespaceBetweenAttributes)
		t.reconsume()
		t.state = BeforeAttributeNameState
		return Token{}, false, nil
	}
}

// --- Markup declaration / comments ---

func (t *Tokenizer) stepMarkupDeclarationOpen() (Token, bool, error) {
	if t.consumeLiteral("--") {
		t.commentData = t.commentData[:0]
		t.state = CommentStartState
		return Token{}, false, nil
	}
	if t.consumeLiteralFold("doctype") {
		t.doctypeName = t.doctypeName[:0]
		t.doctypeNameClosed = false
		t.doctypeForceQuirks = false
		t.state = DOCTYPEState
		return Token{}, false, nil
	}
	t.parseError(htmlerr.IncorrectlyOpenedComment)
	tok, err := t.unsupported("markup declaration that is neither a comment nor a DOCTYPE")
	return tok, true, err
}

// consumeLiteral consumes exactly len(lit) runes if they match lit, and
// advances the cursor past them. It leaves the cursor untouched otherwise.
func (t *Tokenizer) consumeLiteral(lit string) bool {
	want := []rune(lit)
	if t.pos+len(want) > len(t.input) {
		return false
	}
	for i, w := range want {
		if t.input[t.pos+i] != w {
			return false
		}
	}
	t.pos += len(want)
	return true
}

func (t *Tokenizer) consumeLiteralFold(lit string) bool {
	want := []rune(lit)
	if t.pos+len(want) > len(t.input) {
		return false
	}
	for i, w := range want {
		if toLower(t.input[t.pos+i]) != w {
			return false
		}
	}
	t.pos += len(want)
	return true
}

func (t *Tokenizer) stepCommentStart() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch c {
	case '-':
		t.state = CommentStartDashState
		return Token{}, false, nil
	case '>':
		t.parseError(htmlerr.AbruptClosingOfEmptyComment)
		t.state = DataState
		return Token{Type: Comment, Data: string(t.commentData)}, true, nil
	default:
		t.reconsume()
		t.state = CommentState
		return Token{}, false, nil
	}
}

func (t *Tokenizer) stepCommentStartDash() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch c {
	case '-':
		t.state = CommentEndState
		return Token{}, false, nil
	case '>':
		t.parseError(htmlerr.AbruptClosingOfEmptyComment)
		t.state = DataState
		return Token{Type: Comment, Data: string(t.commentData)}, true, nil
	case eof:
		t.parseError(htmlerr.EOFInComment)
		return Token{Type: EOF}, true, nil
	default:
		t.commentData = append(t.commentData, '-')
		t.reconsume()
		t.state = CommentState
		return Token{}, false, nil
	}
}

func (t *Tokenizer) stepComment() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch c {
	case '-':
		t.state = CommentEndDashState
		return Token{}, false, nil
	case eof:
		t.parseError(htmlerr.EOFInComment)
		return Token{Type: EOF}, true, nil
	case 0:
		t.parseError(htmlerr.UnexpectedNullCharacter)
		t.commentData = append(t.commentData, '�')
		return Token{}, false, nil
	default:
		t.commentData = append(t.commentData, c)
		return Token{}, false, nil
	}
}

func (t *Tokenizer) stepCommentEndDash() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch c {
	case '-':
		t.state = CommentEndState
		return Token{}, false, nil
	case eof:
		t.parseError(htmlerr.EOFInComment)
		return Token{Type: EOF}, true, nil
	default:
		t.commentData = append(t.commentData, '-')
		t.reconsume()
		t.state = CommentState
		return Token{}, false, nil
	}
}

func (t *Tokenizer) stepCommentEnd() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch c {
	case '>':
		t.state = DataState
		return Token{Type: Comment, Data: string(t.commentData)}, true, nil
	case '-':
		t.commentData = append(t.commentData, '-')
		return Token{}, false, nil
	case eof:
		t.parseError(htmlerr.EOFInComment)
		return Token{Type: EOF}, true, nil
	default:
		t.parseError(htmlerr.IncorrectlyClosedComment)
		t.commentData = append(t.commentData, '-', '-')
		t.reconsume()
		t.state = CommentState
		return Token{}, false, nil
	}
}

// --- DOCTYPE ---

func (t *Tokenizer) stepDoctype() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch {
	case isWhitespace(c):
		t.state = BeforeDOCTYPENameState
		return Token{}, false, nil
	case c == eof:
		t.parseError(htmlerr.EOFInDoctype)
		return Token{Type: EOF}, true, nil
	default:
		t.parseError(htmlerr.MissingWhitespaceBeforeDoctypeName)
		t.reconsume()
		t.state = BeforeDOCTYPENameState
		return Token{}, false, nil
	}
}

func (t *Tokenizer) stepBeforeDoctypeName() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch {
	case isWhitespace(c):
		return Token{}, false, nil
	case isASCIIUpper(c):
		t.doctypeName = append(t.doctypeName[:0], toLower(c))
		t.state = DOCTYPENameState
		return Token{}, false, nil
	case c == 0:
		t.parseError(htmlerr.UnexpectedNullCharacter)
		t.doctypeName = append(t.doctypeName[:0], '�')
		t.state = DOCTYPENameState
		return Token{}, false, nil
	case c == '>':
		t.parseError(htmlerr.ExpectedDoctypeNameButGotRightBracket)
		t.state = DataState
		return t.emitDoctype(true), true, nil
	case c == eof:
		t.parseError(htmlerr.EOFInDoctype)
		t.state = DataState
		return t.emitDoctype(true), true, nil
	default:
		t.doctypeName = append(t.doctypeName[:0], c)
		t.state = DOCTYPENameState
		return Token{}, false, nil
	}
}

func (t *Tokenizer) stepDoctypeName() (Token, bool, error) {
	c, err := t.getChar()
	if err != nil {
		return Token{}, false, err
	}
	switch {
	case c == '>':
		t.state = DataState
		return t.emitDoctype(t.doctypeForceQuirks), true, nil
	case c == eof:
		t.parseError(htmlerr.EOFInDoctype)
		t.state = DataState
		return t.emitDoctype(true), true, nil
	case isWhitespace(c):
		t.doctypeNameClosed = true
		return Token{}, false, nil
	case t.doctypeNameClosed:
		tok, err := t.unsupported("content after DOCTYPE name (PUBLIC/SYSTEM identifiers are out of scope)")
		return tok, true, err
	case isASCIIUpper(c):
		t.doctypeName = append(t.doctypeName, toLower(c))
		return Token{}, false, nil
	case c == 0:
		t.parseError(htmlerr.UnexpectedNullCharacter)
		t.doctypeName = append(t.doctypeName, '�')
		return Token{}, false, nil
	default:
		t.doctypeName = append(t.doctypeName, c)
		return Token{}, false, nil
	}
}

func (t *Tokenizer) emitDoctype(forceQuirks bool) Token {
	name := constants.InternTagName(string(t.doctypeName))
	return Token{Type: DOCTYPE, Name: name, ForceQuirks: forceQuirks}
}

// --- character classes ---
//
// Delegated to internal/constants' lookup tables rather than reimplemented
// here; the tokenizer's hot path is exactly what those tables exist for.
// The eof marker is negative and never indexes a table.

func isWhitespace(c rune) bool { return c != eof && constants.IsWhitespace(c) }
func isASCIIUpper(c rune) bool { return c != eof && constants.IsASCIIUpper(c) }
func isASCIILower(c rune) bool { return c != eof && constants.IsASCIILower(c) }
func isASCIIAlpha(c rune) bool { return c != eof && constants.IsASCIIAlpha(c) }
func toLower(c rune) rune      { return constants.ToLower(c) }
