package dokuwiki

import (
	"strings"

	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
)

// cell is a table cell as found in a row line.
type cell struct {
	kind  doc.CellKind
	align doc.Alignment
	text  string
	span  int
}

// splitRow splits a table row into cells. A cell is preceded by `^` for
// head cells or `|` for data cells. Separators inside links and images do
// not count. An empty cell extends the preceding cell by one column.
func splitRow(line string) []cell {
	line = strings.TrimSpace(line)
	var cells []cell
	var cur *cell
	var b strings.Builder
	nesting := 0
	finish := func() {
		if cur == nil {
			return
		}
		cur.text = b.String()
		b.Reset()
		if cur.text == "" && len(cells) > 0 {
			cells[len(cells)-1].span++
		} else {
			cells = append(cells, *cur)
		}
		cur = nil
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case (c == '[' || c == '{') && i+1 < len(line) && line[i+1] == c:
			nesting++
			b.WriteString(line[i : i+2])
			i++
			continue
		case (c == ']' || c == '}') && i+1 < len(line) && line[i+1] == c && nesting > 0:
			nesting--
			b.WriteString(line[i : i+2])
			i++
			continue
		case (c == '|' || c == '^') && nesting == 0:
			finish()
			kind := doc.DataCell
			if c == '^' {
				kind = doc.HeadCell
			}
			cur = &cell{kind: kind, span: 1}
			continue
		}
		b.WriteByte(c)
	}
	// text after the final separator does not form a cell
	for i := range cells {
		cells[i].align, cells[i].text = alignment(cells[i].text)
	}
	return cells
}

// alignment derives a cell's alignment from its padding: more blanks on the
// right align left, more on the left align right, padding on both sides
// centers.
func alignment(text string) (doc.Alignment, string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return doc.AlignDefault, ""
	}
	left := len(text) - len(strings.TrimLeft(text, " \t"))
	right := len(text) - len(strings.TrimRight(text, " \t"))
	switch {
	case left >= 2 && right >= 2:
		return doc.AlignCenter, trimmed
	case left >= 2 && left > right:
		return doc.AlignRight, trimmed
	case right >= 2 && right > left:
		return doc.AlignLeft, trimmed
	}
	return doc.AlignDefault, trimmed
}

func row(m *assembly.Manager, match assembly.Match) error {
	cells := splitRow(match.Group(1))
	if err := m.Send(doc.RowEvent()); err != nil {
		return err
	}
	for _, c := range cells {
		if err := m.Send(doc.CellEvent(c.kind, c.align, c.span, 1)); err != nil {
			return err
		}
		if c.text == "" {
			continue
		}
		if err := m.ParseText(c.text); err != nil {
			return err
		}
	}
	return nil
}
