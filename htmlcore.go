// Package htmlcore wires the tokenizer and tree builder together into a
// single parse entry point.
//
//	tree, errs, err := htmlcore.Parse("<!DOCTYPE html><html>...")
//
// Without options, a non-nil err is always an
// *htmlerr.UnsupportedConstructError: the input exercised a tokenizer state
// or insertion mode outside the supported subset. Recorded parse errors
// (malformed-but-recoverable input) never stop the build and are always
// returned in errs; they become the returned err only with WithStrictMode
// (the first one, as *htmlerr.ParseError) or WithCollectErrors (all of them,
// as htmlerr.ParseErrors).
package htmlcore

import (
	"github.com/tamarisk-labs/htmlcore/arena"
	"github.com/tamarisk-labs/htmlcore/htmlerr"
	"github.com/tamarisk-labs/htmlcore/tokenizer"
	"github.com/tamarisk-labs/htmlcore/treebuilder"
)

// Parse runs html through the tokenizer and tree builder in lockstep,
// pulling one token at a time and feeding it straight to the builder
// before pulling the next, the same loop shape the tree builder's own
// Build method uses internally.
func Parse(html string, opts ...Option) (*arena.Tree, []htmlerr.ParseError, error) {
	cfg := newConfig(opts...)

	tok := tokenizer.New(html)
	tb := treebuilder.New()

	for {
		tt, err := tok.Next()
		if err != nil {
			return nil, tok.Errors(), err
		}
		if err := tb.ProcessToken(tt); err != nil {
			return nil, tok.Errors(), err
		}
		if tt.Type == tokenizer.EOF {
			break
		}
	}

	errs := tok.Errors()
	if cfg.strict && len(errs) > 0 {
		return tb.Tree(), errs, &errs[0]
	}
	if cfg.collectErrors && len(errs) > 0 {
		parseErrs := make(htmlerr.ParseErrors, len(errs))
		for i := range errs {
			parseErrs[i] = &errs[i]
		}
		return tb.Tree(), errs, parseErrs
	}
	return tb.Tree(), errs, nil
}
