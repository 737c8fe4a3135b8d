package visualizer

import (
	"fmt"
	"strings"

	"github.com/xuanyiying/movr/internal/output"
	"github.com/xuanyiying/movr/internal/plan"
)

// DiffEntry is one prepared pair rendered as an orig -> new change, adapted
// from the teacher's directory-comparison DiffEntry to a single rename
// pair instead of a filesystem-tree comparison. Excluded pairs never reach
// here: the planner drops them before a plan's Pairs() is populated.
type DiffEntry struct {
	Orig         string
	New          string
	CreateParent bool
	Clobber      bool
}

// DiffResult is the rendered-ready summary of a plan's prepared pairs.
type DiffResult struct {
	Entries      []*DiffEntry
	RenameCount  int
	ClobberCount int
	CreateCount  int
}

// DiffRenderer renders a RenamingPlan's prepared pairs as an orig -> new
// listing, in the teacher's styled-builder rendering idiom.
type DiffRenderer struct {
	console *output.Console
	styler  *output.Styler
}

// Symbols for diff display.
const (
	SymbolRename  = "→"
	SymbolClobber = "⚠"
	SymbolCreate  = "+"
)

// NewDiffRenderer creates a new diff renderer.
func NewDiffRenderer(console *output.Console) *DiffRenderer {
	return &DiffRenderer{
		console: console,
		styler:  output.NewStyler(true),
	}
}

// Compare turns a plan's prepared pairs into a DiffResult.
func Compare(pairs []plan.RenamePair) *DiffResult {
	result := &DiffResult{}
	for _, p := range pairs {
		result.Entries = append(result.Entries, &DiffEntry{
			Orig:         p.Orig,
			New:          p.New,
			CreateParent: p.CreateParent,
			Clobber:      p.Clobber,
		})
		result.RenameCount++
		if p.Clobber {
			result.ClobberCount++
		}
		if p.CreateParent {
			result.CreateCount++
		}
	}
	return result
}

// Render renders result as an orig -> new listing, one line per pair.
func (r *DiffRenderer) Render(result *DiffResult) string {
	if len(result.Entries) == 0 {
		return r.styler.Dim("No pairs to rename")
	}

	var b strings.Builder
	for _, entry := range result.Entries {
		symbol := r.styler.Green(SymbolRename)
		var flags []string
		if entry.Clobber {
			flags = append(flags, r.styler.Yellow(SymbolClobber+" clobber"))
		}
		if entry.CreateParent {
			flags = append(flags, r.styler.Blue(SymbolCreate+" create parent"))
		}
		suffix := ""
		if len(flags) > 0 {
			suffix = " (" + strings.Join(flags, ", ") + ")"
		}
		b.WriteString(fmt.Sprintf("  %s %s %s%s\n", entry.Orig, symbol, entry.New, suffix))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderSummary renders a one-line-per-kind count summary.
func (r *DiffRenderer) RenderSummary(result *DiffResult) string {
	if len(result.Entries) == 0 {
		return r.styler.Dim("No pairs to rename")
	}

	var b strings.Builder
	b.WriteString(r.styler.Bold("Summary:") + "\n")
	b.WriteString(fmt.Sprintf("  %s %d pair(s) renamed\n", r.styler.Green(SymbolRename), result.RenameCount))
	if result.ClobberCount > 0 {
		b.WriteString(fmt.Sprintf("  %s %d existing target(s) clobbered\n", r.styler.Yellow(SymbolClobber), result.ClobberCount))
	}
	if result.CreateCount > 0 {
		b.WriteString(fmt.Sprintf("  %s %d parent director(y/ies) created\n", r.styler.Blue(SymbolCreate), result.CreateCount))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
