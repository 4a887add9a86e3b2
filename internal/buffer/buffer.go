package buffer

import (
	"os"
	"strings"
)

// Buffer is the ordered list of lines being edited. Coordinates outside the
// buffer are ignored by every mutating method.
type Buffer struct {
	Name  string
	lines [][]rune
}

func New(name, text string) *Buffer {
	return &Buffer{Name: name, lines: splitLines(text)}
}

// Open reads path into a new buffer. A file that does not exist yet yields an
// empty buffer carrying the path as its name.
func Open(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(path, ""), nil
		}
		return nil, err
	}
	return New(path, string(data)), nil
}

func splitLines(text string) [][]rune {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return lines
}

func (b *Buffer) Len() int {
	return len(b.lines)
}

func (b *Buffer) Line(i int) (string, bool) {
	if i < 0 || i >= len(b.lines) {
		return "", false
	}
	return string(b.lines[i]), true
}

// LineLen returns the number of runes on line i, or 0 when i is out of range.
func (b *Buffer) LineLen(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return len(b.lines[i])
}

func (b *Buffer) InsertChar(col, line int, r rune) {
	if line < 0 || line >= len(b.lines) {
		return
	}
	l := b.lines[line]
	if col < 0 || col > len(l) {
		return
	}
	l = append(l, 0)
	copy(l[col+1:], l[col:])
	l[col] = r
	b.lines[line] = l
}

func (b *Buffer) RemoveChar(col, line int) {
	if line < 0 || line >= len(b.lines) {
		return
	}
	l := b.lines[line]
	if col < 0 || col >= len(l) {
		return
	}
	b.lines[line] = append(l[:col], l[col+1:]...)
}

// InsertLine places text at index i, shifting the following lines down.
// i == Len() appends.
func (b *Buffer) InsertLine(i int, text string) {
	if i < 0 || i > len(b.lines) {
		return
	}
	b.lines = append(b.lines, nil)
	copy(b.lines[i+1:], b.lines[i:])
	b.lines[i] = []rune(text)
}

func (b *Buffer) RemoveLine(i int) {
	if i < 0 || i >= len(b.lines) {
		return
	}
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
}

// ViewportText joins lines [top, top+height) with newlines. Highlighters get
// this text, so their byte offsets are relative to the first visible line.
func (b *Buffer) ViewportText(top, height int) string {
	if top < 0 {
		top = 0
	}
	end := top + height
	if end > len(b.lines) {
		end = len(b.lines)
	}
	if top >= end {
		return ""
	}
	return joinLines(b.lines[top:end])
}

func (b *Buffer) Content() string {
	return joinLines(b.lines)
}

func joinLines(lines [][]rune) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}
