package markdown

import (
	"regexp"
	"strings"

	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
)

var tableRow = regexp.MustCompile(`^\s*\|.*\|\s*$`)

var delimiterRow = regexp.MustCompile(`^\s*\|(?:\s*:?-+:?\s*\|)+\s*$`)

// tableParser collects the rows of a pipe table. Whether the first row is
// a header is known only with the second row, so rows are buffered and
// sent when the table ends.
type tableParser struct {
	rows []string
}

func table(m *assembly.Manager, match assembly.Match) error {
	m.PushParser(&tableParser{rows: []string{match.Text()}})
	return nil
}

func (tp *tableParser) ParseLine(m *assembly.Manager, line string) error {
	if tableRow.MatchString(line) {
		tp.rows = append(tp.rows, line)
		return nil
	}
	m.PopParser()
	if err := tp.emit(m); err != nil {
		return err
	}
	return m.ParseLine(line)
}

// Flush implements assembly.Flusher.
func (tp *tableParser) Flush(m *assembly.Manager) error {
	return tp.emit(m)
}

func (tp *tableParser) emit(m *assembly.Manager) error {
	rows := tp.rows
	var aligns []doc.Alignment
	hasHead := len(rows) > 1 && delimiterRow.MatchString(rows[1])
	if hasHead {
		aligns = alignments(rows[1])
		rows = append([]string{rows[0]}, rows[2:]...)
	}
	for i, r := range rows {
		if err := m.Send(doc.RowEvent()); err != nil {
			return err
		}
		for j, text := range splitCells(r) {
			kind, align := doc.DataCell, doc.AlignDefault
			if hasHead && i == 0 {
				kind = doc.HeadCell
			}
			if j < len(aligns) {
				align = aligns[j]
			}
			if err := m.Send(doc.CellEvent(kind, align, 1, 1)); err != nil {
				return err
			}
			if text != "" {
				if err := m.ParseText(text); err != nil {
					return err
				}
			}
		}
	}
	tp.rows = nil
	return m.Send(doc.ParEndEvent())
}

// alignments reads column alignments from a delimiter row like
// `| :--- | :---: | ---: |`.
func alignments(delim string) []doc.Alignment {
	var aligns []doc.Alignment
	for _, c := range splitCells(delim) {
		left, right := strings.HasPrefix(c, ":"), strings.HasSuffix(c, ":")
		switch {
		case left && right:
			aligns = append(aligns, doc.AlignCenter)
		case left:
			aligns = append(aligns, doc.AlignLeft)
		case right:
			aligns = append(aligns, doc.AlignRight)
		default:
			aligns = append(aligns, doc.AlignDefault)
		}
	}
	return aligns
}

// splitCells splits a table row at unescaped pipes outside of code spans.
// Cell texts are trimmed.
func splitCells(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")
	var cells []string
	var b strings.Builder
	inCode := false
	for i := 0; i < len(row); i++ {
		c := row[i]
		switch {
		case c == '\\' && i+1 < len(row) && row[i+1] == '|':
			b.WriteByte('|')
			i++
			continue
		case c == '`':
			inCode = !inCode
		case c == '|' && !inCode:
			cells = append(cells, strings.TrimSpace(b.String()))
			b.Reset()
			continue
		}
		b.WriteByte(c)
	}
	return append(cells, strings.TrimSpace(b.String()))
}
