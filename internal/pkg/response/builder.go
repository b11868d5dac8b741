// Package response assembles the plain-text results every Sheets tool
// returns to the calling agent.
package response

import (
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Builder accumulates lines of a tool result.
type Builder struct {
	sb strings.Builder
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Header writes the title line of a result.
func (b *Builder) Header(format string, args ...any) *Builder {
	b.sb.WriteString("═══ ")
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteString(" ═══\n")
	return b
}

// Section writes a sub-heading.
func (b *Builder) Section(format string, args ...any) *Builder {
	b.sb.WriteString("── ")
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteString(" ──\n")
	return b
}

// KeyValue writes "• key: value".
func (b *Builder) KeyValue(key string, value any) *Builder {
	fmt.Fprintf(&b.sb, "• %s: %v\n", key, value)
	return b
}

// KeyValueIf writes the pair only when value is not its zero value.
func (b *Builder) KeyValueIf(key string, value any) *Builder {
	switch v := value.(type) {
	case string:
		if v == "" {
			return b
		}
	case int:
		if v == 0 {
			return b
		}
	case int64:
		if v == 0 {
			return b
		}
	case nil:
		return b
	}
	return b.KeyValue(key, value)
}

// Item writes an indented bullet.
func (b *Builder) Item(format string, args ...any) *Builder {
	b.sb.WriteString("  → ")
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteByte('\n')
	return b
}

// Line writes a formatted line.
func (b *Builder) Line(format string, args ...any) *Builder {
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteByte('\n')
	return b
}

// Block writes pre-rendered multi-line text, ensuring it ends in a newline.
// Empty text writes nothing.
func (b *Builder) Block(text string) *Builder {
	if text == "" {
		return b
	}
	b.sb.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.sb.WriteByte('\n')
	}
	return b
}

// More notes how many entries of a truncated listing were not shown.
func (b *Builder) More(shown, total int, noun string) *Builder {
	if total > shown {
		fmt.Fprintf(&b.sb, "... and %d more %s\n", total-shown, noun)
	}
	return b
}

// Blank writes an empty line.
func (b *Builder) Blank() *Builder {
	b.sb.WriteByte('\n')
	return b
}

// Build returns the assembled text.
func (b *Builder) Build() string {
	return b.sb.String()
}

// TextResult wraps the text in an MCP tool result.
func (b *Builder) TextResult() *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: b.sb.String()}},
	}
}
