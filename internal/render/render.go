package render

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/ccview/ccview/internal/transcript"
)

const (
	colorReset  = "\033[0m"
	colorUser   = "\033[1;34m" // bold blue
	colorAssist = "\033[1;32m" // bold green
	colorSystem = "\033[1;33m" // bold yellow
	colorTool   = "\033[36m"   // cyan
	colorResult = "\033[2;36m" // dim cyan
	colorDim    = "\033[2m"
)

type Options struct {
	Width int // wrap width (0 = no wrap)
}

// Conversation renders a message sequence with ANSI role coloring, one
// block per message separated by dim rules.
func Conversation(messages []transcript.Message, opts Options) string {
	if len(messages) == 0 {
		return "(empty session)"
	}

	var b strings.Builder
	separator := colorDim + "--------------------------------------------------" + colorReset

	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}

	for i, m := range messages {
		if i > 0 {
			writeLine(separator)
		}

		header := roleColor(m.Role) + m.Role.Label() + " >" + colorReset
		if ts := m.TimestampString(); ts != "" {
			header += " " + colorDim + ts + colorReset
		}
		writeLine(header)

		text := m.Text
		if m.Role == transcript.RoleToolResult {
			text = colorDim + text + colorReset
		}
		for _, tl := range strings.Split(indentLines(text, "  "), "\n") {
			writeLine(tl)
		}
		writeLine("")
	}

	return b.String()
}

func roleColor(role transcript.Role) string {
	switch role {
	case transcript.RoleUser:
		return colorUser
	case transcript.RoleAssistant:
		return colorAssist
	case transcript.RoleSystem:
		return colorSystem
	case transcript.RoleToolUse:
		return colorTool
	case transcript.RoleToolResult:
		return colorResult
	}
	return colorDim
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}
