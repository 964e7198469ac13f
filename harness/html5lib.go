// Package harness reads html5lib-style tree-construction test files and
// runs each block through htmlcore.Parse, comparing the built tree's
// rendered form against the file's expected #document section.
package harness

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/tamarisk-labs/htmlcore"
)

// Case is a single #data/#errors/#document block.
type Case struct {
	Data     string
	Errors   []string
	Document string
}

// Result is the outcome of running one Case.
type Result struct {
	Case       Case
	Passed     bool
	Actual     string
	FirstDiff  string // empty when Passed
	RunErr     error  // a non-nil Parse error (unsupported construct)
}

// Summary aggregates Results for one file, in the teacher's
// TestSummary.FormatSummary style.
type Summary struct {
	FileName string
	Passed   int
	Failed   int
	Results  []Result
}

// FormatSummary renders "<file>: passed/total (pct%)", matching the
// teacher's percentage-of-runnable convention.
func (s *Summary) FormatSummary() string {
	total := s.Passed + s.Failed
	if total == 0 {
		return fmt.Sprintf("%s: 0/0 (N/A)", s.FileName)
	}
	pct := float64(s.Passed) * 100 / float64(total)
	return fmt.Sprintf("%s: %d/%d (%.0f%%)", s.FileName, s.Passed, total, pct)
}

// unrecognizedHeaders are accepted by the real html5lib-tests corpus but
// describe features this module never implements (script directives,
// fragment-context parsing, a second error-reporting dialect). Rather than
// silently skip them, as the teacher's ParseTreeConstructionFile does, this
// harness treats them as a hard parse error for the file.
var unrecognizedHeaders = map[string]bool{
	"new-errors":        true,
	"document-fragment": true,
	"script-off":        true,
	"script-on":         true,
}

// ParseFile reads path and splits it into Cases, returning an error if an
// unrecognized header appears anywhere in the file.
func ParseFile(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("harness: opening %s: %w", path, err)
	}
	defer f.Close()

	var cases []Case
	var cur *Case
	var section string
	var dataLines, errorLines, documentLines []string

	flush := func() {
		if cur != nil && (len(dataLines) > 0 || len(documentLines) > 0) {
			cur.Data = strings.Join(dataLines, "\n")
			cur.Errors = append([]string(nil), errorLines...)
			cur.Document = strings.Join(documentLines, "\n")
			cases = append(cases, *cur)
		}
		cur = &Case{}
		dataLines, errorLines, documentLines = nil, nil, nil
		section = ""
	}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.HasPrefix(line, "#") {
			header := strings.TrimPrefix(line, "#")
			if unrecognizedHeaders[header] {
				return nil, fmt.Errorf("harness: %s:%d: unrecognized header #%s is not supported by this module", path, lineNo, header)
			}
			switch header {
			case "data":
				flush()
				section = "data"
			case "errors":
				section = "errors"
			case "document":
				section = "document"
			default:
				return nil, fmt.Errorf("harness: %s:%d: unknown section header #%s", path, lineNo, header)
			}
			continue
		}

		switch section {
		case "data":
			dataLines = append(dataLines, line)
		case "errors":
			if strings.TrimSpace(line) != "" {
				errorLines = append(errorLines, line)
			}
		case "document":
			documentLines = append(documentLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("harness: reading %s: %w", path, err)
	}
	flush()

	return cases, nil
}

// RunFile parses path and runs every case through htmlcore.Parse,
// comparing each built tree's render to the expected #document text.
func RunFile(path string) (*Summary, error) {
	cases, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	summary := &Summary{FileName: path}
	for _, c := range cases {
		result := runCase(c)
		summary.Results = append(summary.Results, result)
		if result.Passed {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}
	return summary, nil
}

func runCase(c Case) Result {
	tree, _, err := htmlcore.Parse(c.Data)
	if err != nil {
		return Result{Case: c, Passed: false, RunErr: err}
	}

	// The section's own "#document" header stands for the render's root line.
	want := "#document\n" + c.Document
	actual := tree.Render()
	if actual == want {
		return Result{Case: c, Passed: true, Actual: actual}
	}
	return Result{Case: c, Passed: false, Actual: actual, FirstDiff: firstDiffLine(want, actual)}
}

// firstDiffLine reports the first line index and content where want and got
// diverge, using go-cmp to compute the line-oriented diff and condensing it
// down to the single line spec.md's exit-conditions clause asks for.
func firstDiffLine(want, got string) string {
	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")

	diff := cmp.Diff(wantLines, gotLines)
	if diff == "" {
		return ""
	}

	max := len(wantLines)
	if len(gotLines) > max {
		max = len(gotLines)
	}
	for i := 0; i < max; i++ {
		var w, g string
		if i < len(wantLines) {
			w = wantLines[i]
		}
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if w != g {
			return fmt.Sprintf("line %d: want %q, got %q", i+1, w, g)
		}
	}
	return diff
}
