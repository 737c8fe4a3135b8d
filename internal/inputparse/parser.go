// Package inputparse converts a flat sequence of already-trimmed input
// lines into an ordered sequence of (orig, new) path tuples, under one of
// the five textual layouts from spec.md §4.2.
package inputparse

import (
	"strings"

	"github.com/xuanyiying/movr/internal/problem"
	"golang.org/x/text/unicode/norm"
)

// Structure selects how lines are interpreted.
type Structure string

const (
	RenameOnly Structure = "rename"
	Paragraphs Structure = "paragraphs"
	Pairs      Structure = "pairs"
	Rows       Structure = "rows"
	Flat       Structure = "flat"
)

// Pair is a parsed (orig, new) tuple before any hook or validation runs.
// New is empty for RenameOnly, to be filled in later by a rename hook.
type Pair struct {
	Orig string
	New  string
}

// Parse splits lines according to structure, returning the ordered pairs
// or a single plan-level *problem error describing the structural
// violation. lines must already be newline-split; blank-line handling is
// structure-specific per spec.md §4.2.
func Parse(lines []string, structure Structure) ([]Pair, error) {
	normalized := make([]string, len(lines))
	for i, l := range lines {
		normalized[i] = norm.NFC.String(l)
	}

	var origs, news []string
	var err error

	switch structure {
	case RenameOnly:
		origs = nonEmpty(normalized)
		news = make([]string, len(origs))
	case Paragraphs:
		origs, news, err = parseParagraphs(normalized)
	case Pairs:
		origs, news, err = parsePairs(normalized)
	case Rows:
		origs, news, err = parseRows(normalized)
	case Flat:
		origs, news = parseFlat(normalized)
	default:
		origs, news = parseFlat(normalized)
	}
	if err != nil {
		return nil, err
	}

	if len(origs) == 0 {
		return nil, problemError(problem.ParsingNoPaths)
	}
	if len(origs) != len(news) {
		return nil, problemError(problem.ParsingImbalance, len(origs), len(news))
	}

	pairs := make([]Pair, len(origs))
	for i := range origs {
		pairs[i] = Pair{Orig: origs[i], New: news[i]}
	}
	return pairs, nil
}

func nonEmpty(lines []string) []string {
	var out []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// parseParagraphs groups consecutive non-empty lines into paragraphs split
// by blank lines, requiring exactly two (origs, news).
func parseParagraphs(lines []string) ([]string, []string, error) {
	var groups [][]string
	var cur []string
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			if len(cur) > 0 {
				groups = append(groups, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	if len(groups) != 2 {
		return nil, nil, problemError(problem.ParsingParagraphs, len(groups))
	}
	return groups[0], groups[1], nil
}

// parsePairs takes non-empty lines in order: even index -> orig, odd -> new.
func parsePairs(lines []string) ([]string, []string, error) {
	items := nonEmpty(lines)
	var origs, news []string
	for i, l := range items {
		if i%2 == 0 {
			origs = append(origs, l)
		} else {
			news = append(news, l)
		}
	}
	if len(origs) != len(news) {
		return nil, nil, problemError(problem.ParsingImbalance, len(origs), len(news))
	}
	return origs, news, nil
}

// parseRows splits each non-empty line on a single tab, requiring exactly
// two non-empty cells.
func parseRows(lines []string) ([]string, []string, error) {
	var origs, news []string
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		cells := strings.Split(l, "\t")
		nonEmptyCells := make([]string, 0, len(cells))
		for _, c := range cells {
			if strings.TrimSpace(c) != "" {
				nonEmptyCells = append(nonEmptyCells, c)
			}
		}
		if len(nonEmptyCells) != 2 {
			return nil, nil, problemError(problem.ParsingRow, l)
		}
		origs = append(origs, nonEmptyCells[0])
		news = append(news, nonEmptyCells[1])
	}
	return origs, news, nil
}

// parseFlat concatenates every non-empty line and halves the result by
// integer division: no error on an odd count.
func parseFlat(lines []string) ([]string, []string) {
	items := nonEmpty(lines)
	half := len(items) / 2
	return items[:half], items[half : half*2]
}

// problemError adapts a problem.Kind into an error value callers can
// surface directly; the planner's own Problem type (in package plan)
// wraps the Kind again when it records this as a plan-level problem.
func problemError(kind problem.Kind, args ...interface{}) error {
	return &ParseError{Kind: kind, Message: problem.Message(kind, args...)}
}

// ParseError is returned by Parse for any of the plan-level parsing
// problem kinds (parsing_no_paths, parsing_paragraphs, parsing_row,
// parsing_imbalance).
type ParseError struct {
	Kind    problem.Kind
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}
