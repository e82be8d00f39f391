package output

import (
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.TerminalColor
		wantDim  bool
	}{
		{
			name:   "created returns green",
			status: StatusCreated,
			wantFG: ColorGreen,
		},
		{
			name:    "would create returns faint",
			status:  StatusWouldWrite,
			wantDim: true,
		},
		{
			name:   "exists returns yellow",
			status: StatusExists,
			wantFG: ColorYellow,
		},
		{
			name:     "failed returns bold red",
			status:   StatusFailed,
			wantBold: true,
			wantFG:   ColorBoldRed,
		},
		{
			name:   "unknown returns default unstyled",
			status: "unknown-value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
			if tt.wantFG != nil {
				assert.Equal(t, tt.wantFG, style.GetForeground(), "foreground color mismatch")
			}
		})
	}
}

func TestFormatFileLine(t *testing.T) {
	result := stripAnsi(FormatFileLine("content/posts/2024-03-09-hello.md", StatusCreated))

	assert.True(t, strings.HasPrefix(result, "f:"), "should start with f: prefix")
	assert.Contains(t, result, "content/posts/2024-03-09-hello.md")
	assert.True(t, strings.HasSuffix(result, StatusCreated))

	t.Run("alignment consistency", func(t *testing.T) {
		line1 := stripAnsi(FormatFileLine("a.md", StatusCreated))
		line2 := stripAnsi(FormatFileLine("content/posts/b.md", StatusCreated))

		assert.Equal(t,
			strings.Index(line1, StatusCreated),
			strings.Index(line2, StatusCreated),
			"status words should align to same column")
	})

	t.Run("long paths keep a gap", func(t *testing.T) {
		long := strings.Repeat("x", 60) + ".md"
		line := stripAnsi(FormatFileLine(long, StatusExists))
		assert.Contains(t, line, long+"  "+StatusExists)
	})
}

func TestFormatCheckmark(t *testing.T) {
	result := FormatCheckmark("Content file written")
	assert.Contains(t, result, "✔", "should contain checkmark")
	assert.Contains(t, result, "Content file written", "should contain message")
}
