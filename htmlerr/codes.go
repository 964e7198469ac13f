package htmlerr

// Error codes as defined by the WHATWG HTML5 specification, scoped to the
// codes the in-scope tokenizer states can actually raise.
// See: https://html.spec.whatwg.org/multipage/parsing.html#parse-errors
const (
	AbruptClosingOfEmptyComment                 = "abrupt-closing-of-empty-comment"
	DuplicateAttribute                          = "duplicate-attribute"
	EOFBeforeTagName                             = "eof-before-tag-name"
	EOFInComment                                 = "eof-in-comment"
	EOFInDoctype                                 = "eof-in-doctype"
	EOFInTag                                     = "eof-in-tag"
	ExpectedDoctypeNameButGotRightBracket         = "expected-doctype-name-but-got-right-bracket"
	IncorrectlyClosedComment                     = "incorrectly-closed-comment"
	IncorrectlyOpenedComment                     = "incorrectly-opened-comment"
	InvalidFirstCharacterOfTagName                = "invalid-first-character-of-tag-name"
	MissingWhitespaceBeforeDoctypeName            = "missing-whitespace-before-doctype-name"
	MissingWhitespaceBetweenAttributes            = "missing-whitespace-between-attributes"
	UnexpectedNullCharacter                       = "unexpected-null-character"
	UnexpectedEqualsSignBeforeAttributeName       = "unexpected-equals-sign-before-attribute-name"
	MissingAttributeValue                         = "missing-attribute-value"
)

var messages = map[string]string{
	AbruptClosingOfEmptyComment:          "an empty comment was abruptly closed by a U+003E (>)",
	DuplicateAttribute:                   "an attribute with the same name as an earlier attribute on the same tag",
	EOFBeforeTagName:                     "end of file where a tag name was expected",
	EOFInComment:                         "end of file inside a comment",
	EOFInDoctype:                         "end of file inside a DOCTYPE",
	EOFInTag:                             "end of file inside a tag",
	ExpectedDoctypeNameButGotRightBracket: "a U+003E (>) where a DOCTYPE name was expected",
	IncorrectlyClosedComment:             "a comment was closed by something other than \"-->\"",
	IncorrectlyOpenedComment:             "a comment-like construct that is not \"<!--\"",
	InvalidFirstCharacterOfTagName:       "an invalid first character of a tag name",
	MissingWhitespaceBeforeDoctypeName:   "a DOCTYPE with no whitespace before its name",
	MissingWhitespaceBetweenAttributes:   "missing whitespace between two attributes",
	UnexpectedNullCharacter:              "a U+0000 NULL character where text was expected",
	UnexpectedEqualsSignBeforeAttributeName: "a U+003D (=) where an attribute name was expected",
	MissingAttributeValue:                "an attribute name not followed by an attribute value",
}

// Message returns the human-readable message for an error code.
func Message(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return "unknown error"
}
