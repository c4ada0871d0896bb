package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccview/ccview/internal/transcript"
)

func TestConversationEmpty(t *testing.T) {
	assert.Equal(t, "(empty session)", Conversation(nil, Options{}))
}

func TestConversationHeadersAndBody(t *testing.T) {
	messages := []transcript.Message{
		{Role: transcript.RoleUser, Text: "hello", Timestamp: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{Role: transcript.RoleAssistant, Text: "hi\nthere"},
	}

	out := Conversation(messages, Options{})
	assert.Contains(t, out, "USER >")
	assert.Contains(t, out, "2024-01-15 10:30:00")
	assert.Contains(t, out, "ASSISTANT >")
	assert.Contains(t, out, "  hello")
	assert.Contains(t, out, "  hi")
	assert.Contains(t, out, "  there")
}

func TestConversationSeparatorBetweenMessages(t *testing.T) {
	messages := []transcript.Message{
		{Role: transcript.RoleUser, Text: "a"},
		{Role: transcript.RoleAssistant, Text: "b"},
		{Role: transcript.RoleUser, Text: "c"},
	}

	out := Conversation(messages, Options{})
	separator := "\033[2m" + strings.Repeat("-", 50) + "\033[0m"
	assert.Equal(t, 2, strings.Count(out, separator))
}

func TestConversationOmitsZeroTimestamp(t *testing.T) {
	out := Conversation([]transcript.Message{{Role: transcript.RoleUser, Text: "x"}}, Options{})
	assert.NotContains(t, out, "0001")
}

func TestWrapLinePlain(t *testing.T) {
	lines := wrapLine("abcdefghij", 4)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, lines)
}

func TestWrapLineNoWrapWhenZero(t *testing.T) {
	assert.Equal(t, []string{"abcdef"}, wrapLine("abcdef", 0))
}

func TestWrapLineSkipsANSIWhenMeasuring(t *testing.T) {
	line := "\033[1;34mabcd\033[0m"
	lines := wrapLine(line, 4)
	require.Len(t, lines, 1)
	assert.Equal(t, line, lines[0])
}

func TestWrapLineWideRunes(t *testing.T) {
	// each ideograph is two columns wide
	lines := wrapLine("日本語", 4)
	assert.Equal(t, []string{"日本", "語"}, lines)
}

func TestWrapLineEmpty(t *testing.T) {
	assert.Equal(t, []string{""}, wrapLine("", 10))
}

func TestIndentLines(t *testing.T) {
	assert.Equal(t, "  a\n  b", indentLines("a\nb", "  "))
}
