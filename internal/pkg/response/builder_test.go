package response

import (
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestBuilderHeader(t *testing.T) {
	got := New().Header("Sheet %s", "Values").Build()
	if got != "═══ Sheet Values ═══\n" {
		t.Errorf("Header = %q", got)
	}
}

func TestBuilderKeyValue(t *testing.T) {
	got := New().KeyValue("Range", "Sheet1!A1:B2").Build()
	want := "• Range: Sheet1!A1:B2\n"
	if got != want {
		t.Errorf("KeyValue = %q, want %q", got, want)
	}
}

func TestBuilderKeyValueIf(t *testing.T) {
	got := New().
		KeyValueIf("Empty", "").
		KeyValueIf("Zero", 0).
		KeyValueIf("Zero64", int64(0)).
		KeyValueIf("Nil", nil).
		KeyValueIf("Locale", "en_US").
		KeyValueIf("Frozen rows", int64(1)).
		Build()
	want := "• Locale: en_US\n• Frozen rows: 1\n"
	if got != want {
		t.Errorf("KeyValueIf = %q, want %q", got, want)
	}
}

func TestBuilderItem(t *testing.T) {
	got := New().Item("Sheet%d", 1).Build()
	want := "  → Sheet1\n"
	if got != want {
		t.Errorf("Item = %q, want %q", got, want)
	}
}

func TestBuilderBlock(t *testing.T) {
	got := New().Block("a\nb").Block("").Block("c\n").Build()
	if got != "a\nb\nc\n" {
		t.Errorf("Block = %q", got)
	}
}

func TestBuilderMore(t *testing.T) {
	if got := New().More(50, 50, "rows").Build(); got != "" {
		t.Errorf("More with nothing hidden = %q", got)
	}
	if got := New().More(50, 72, "rows").Build(); got != "... and 22 more rows\n" {
		t.Errorf("More = %q", got)
	}
}

func TestBuilderComposite(t *testing.T) {
	got := New().
		Header("Spreadsheet Info").
		KeyValue("Sheets", 3).
		Blank().
		Section("Sheets").
		Item("Sheet1").
		Line("Row %2d: %s", 1, "a | b").
		Build()

	for _, want := range []string{"Spreadsheet Info", "Sheets: 3", "── Sheets ──", "→ Sheet1", "Row  1: a | b"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestTextResult(t *testing.T) {
	res := New().Line("done").TextResult()
	if len(res.Content) != 1 {
		t.Fatalf("content len = %d", len(res.Content))
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok || tc.Text != "done\n" {
		t.Errorf("content = %#v", res.Content[0])
	}
}
