package visualizer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuanyiying/movr/internal/output"
	"github.com/xuanyiying/movr/internal/plan"
)

func TestCompare_CountsClobberAndCreateParent(t *testing.T) {
	pairs := []plan.RenamePair{
		{Orig: "a", New: "a1"},
		{Orig: "b", New: "b1", Clobber: true},
		{Orig: "c", New: "xy/c1", CreateParent: true},
	}

	result := Compare(pairs)

	if result.RenameCount != 3 {
		t.Fatalf("expected RenameCount 3, got %d", result.RenameCount)
	}
	if result.ClobberCount != 1 {
		t.Fatalf("expected ClobberCount 1, got %d", result.ClobberCount)
	}
	if result.CreateCount != 1 {
		t.Fatalf("expected CreateCount 1, got %d", result.CreateCount)
	}
}

func TestRender_ShowsOrigArrowNewForEveryPair(t *testing.T) {
	console := output.NewConsole(&bytes.Buffer{})
	renderer := NewDiffRenderer(console)

	result := Compare([]plan.RenamePair{{Orig: "report.txt", New: "2026-report.txt"}})
	rendered := renderer.Render(result)

	if !strings.Contains(rendered, "report.txt") || !strings.Contains(rendered, "2026-report.txt") {
		t.Fatalf("rendered output missing orig/new paths: %q", rendered)
	}
	if !strings.Contains(rendered, SymbolRename) {
		t.Fatalf("rendered output missing rename symbol: %q", rendered)
	}
}

func TestRender_FlagsClobberAndCreateParent(t *testing.T) {
	console := output.NewConsole(&bytes.Buffer{})
	renderer := NewDiffRenderer(console)

	result := Compare([]plan.RenamePair{
		{Orig: "a", New: "a1", Clobber: true},
		{Orig: "b", New: "xy/b1", CreateParent: true},
	})
	rendered := renderer.Render(result)

	if !strings.Contains(rendered, "clobber") {
		t.Fatalf("expected clobber flag in rendering: %q", rendered)
	}
	if !strings.Contains(rendered, "create parent") {
		t.Fatalf("expected create parent flag in rendering: %q", rendered)
	}
}

func TestRender_EmptyResultReportsNoPairs(t *testing.T) {
	console := output.NewConsole(&bytes.Buffer{})
	renderer := NewDiffRenderer(console)

	rendered := renderer.Render(&DiffResult{})
	if !strings.Contains(rendered, "No pairs to rename") {
		t.Fatalf("expected empty-result message, got %q", rendered)
	}
}

func TestRenderSummary_ReportsCountsPerKind(t *testing.T) {
	console := output.NewConsole(&bytes.Buffer{})
	renderer := NewDiffRenderer(console)

	result := Compare([]plan.RenamePair{
		{Orig: "a", New: "a1"},
		{Orig: "b", New: "b1", Clobber: true},
		{Orig: "c", New: "xy/c1", CreateParent: true},
	})
	summary := renderer.RenderSummary(result)

	if !strings.Contains(summary, "3 pair(s) renamed") {
		t.Fatalf("summary missing rename count: %q", summary)
	}
	if !strings.Contains(summary, "1 existing target(s) clobbered") {
		t.Fatalf("summary missing clobber count: %q", summary)
	}
	if !strings.Contains(summary, "1 parent director(y/ies) created") {
		t.Fatalf("summary missing create-parent count: %q", summary)
	}
}

func TestRenderSummary_EmptyResultReportsNoPairs(t *testing.T) {
	console := output.NewConsole(&bytes.Buffer{})
	renderer := NewDiffRenderer(console)

	summary := renderer.RenderSummary(&DiffResult{})
	if !strings.Contains(summary, "No pairs to rename") {
		t.Fatalf("expected empty-result message, got %q", summary)
	}
}
