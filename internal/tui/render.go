package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const wrongSpaceMark = '•'

// cell is one rendered passage rune with its display width.
type cell struct {
	text  string
	width int
	space bool
}

type span struct {
	start int
	end   int
}

// passageCells styles every passage rune against the typed input. Typed runes
// are green or red, the word under the cursor is highlighted, the rest is
// dimmed. A letter typed where a space belongs shows as a red dot.
func passageCells(target, input []rune, cursor int) []cell {
	active, hasActive := activeWord(wordSpans(target), cursor)

	out := make([]cell, 0, len(target))
	for i, want := range target {
		shown := want
		style := pendingStyle
		switch {
		case i < len(input) && want == ' ' && input[i] != ' ':
			shown = wrongSpaceMark
			style = incorrectStyle
		case i < len(input) && input[i] == want:
			style = correctStyle
		case i < len(input):
			style = incorrectStyle
		case want != ' ' && hasActive && i >= active.start && i < active.end:
			style = currentWordStyle
		}
		if i == cursor && i >= len(input) {
			style = style.Underline(true)
		}
		out = append(out, cell{
			text:  style.Render(string(shown)),
			width: runewidth.RuneWidth(shown),
			space: want == ' ',
		})
	}
	return out
}

func wordSpans(target []rune) []span {
	var spans []span
	start := -1
	for i, r := range target {
		if r == ' ' {
			if start >= 0 {
				spans = append(spans, span{start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, span{start: start, end: len(target)})
	}
	return spans
}

// activeWord returns the word containing the cursor, or the next word when the
// cursor sits on a space.
func activeWord(spans []span, cursor int) (span, bool) {
	if len(spans) == 0 {
		return span{}, false
	}
	if cursor < 0 {
		return spans[0], true
	}
	for _, w := range spans {
		if cursor < w.end {
			return w, true
		}
	}
	return spans[len(spans)-1], true
}

func joinCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.text)
	}
	return b.String()
}

// wrapCells breaks lines at the last space that fits within width. Words
// longer than a line are split hard.
func wrapCells(cells []cell, width int) string {
	if width <= 0 {
		return joinCells(cells)
	}
	var out strings.Builder
	line := make([]cell, 0, width)
	used := 0
	lastSpace := -1

	for i := 0; i < len(cells); {
		c := cells[i]
		if used+c.width > width && len(line) > 0 {
			if lastSpace >= 0 {
				out.WriteString(joinCells(line[:lastSpace]))
				out.WriteByte('\n')
				line = append([]cell{}, line[lastSpace+1:]...)
			} else {
				out.WriteString(joinCells(line))
				out.WriteByte('\n')
				line = line[:0]
			}
			used, lastSpace = measure(line)
			continue
		}
		line = append(line, c)
		used += c.width
		if c.space {
			lastSpace = len(line) - 1
		}
		i++
	}
	out.WriteString(joinCells(line))
	return out.String()
}

func measure(line []cell) (width, lastSpace int) {
	lastSpace = -1
	for i, c := range line {
		width += c.width
		if c.space {
			lastSpace = i
		}
	}
	return width, lastSpace
}
