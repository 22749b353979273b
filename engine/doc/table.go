package doc

// CellKind distinguishes header cells from data cells.
type CellKind uint8

// Cell kinds
const (
	DataCell CellKind = iota
	HeadCell
)

func (k CellKind) String() string {
	if k == HeadCell {
		return "head"
	}
	return "data"
}

// Alignment is the horizontal alignment of cells and images.
type Alignment uint8

// Alignments
const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "default"
}

// Table is a sequence of rows.
type Table struct {
	Container
}

// NewTable creates a table node.
func NewTable() *Table {
	return &Table{}
}

func (t *Table) Kind() Kind           { return KindTable }
func (t *Table) Numbering() string    { return "table" }
func (t *Table) AcceptsLabel() bool   { return true }
func (t *Table) AcceptsCaption() bool { return true }
func (t *Table) Feature() string      { return "table" }

// Rows returns the table's rows.
func (t *Table) Rows() []*Row {
	rows := make([]*Row, 0, len(t.children))
	for _, ch := range t.children {
		if r, ok := ch.(*Row); ok {
			rows = append(rows, r)
		}
	}
	return rows
}

// Columns returns the number of columns, taking spans into account.
func (t *Table) Columns() int {
	cols := 0
	for _, r := range t.Rows() {
		n := 0
		for _, c := range r.Cells() {
			n += c.hspan
		}
		if n > cols {
			cols = n
		}
	}
	return cols
}

func (t *Table) Handle(ev Event, ctx Context) (Disposition, error) {
	if ev.Level() == LevelParagraph {
		switch ev.ID() {
		case IDNewRow:
			row := NewRow()
			attach(ctx, &t.Container, row)
			ctx.Push(row)
			return Consumed, nil
		case IDNewCell:
			row := NewRow()
			attach(ctx, &t.Container, row)
			ctx.Push(row)
			return Replay, nil
		}
	}
	return Forward, nil
}

func (t *Table) Generate(r Renderer) {
	r.TableBegin(t)
	t.generateContent(r)
	r.TableEnd(t)
}

// Row is a sequence of cells.
type Row struct {
	Container
}

// NewRow creates a row node.
func NewRow() *Row {
	return &Row{}
}

func (row *Row) Kind() Kind { return KindRow }

// Cells returns the row's cells.
func (row *Row) Cells() []*Cell {
	cells := make([]*Cell, 0, len(row.children))
	for _, ch := range row.children {
		if c, ok := ch.(*Cell); ok {
			cells = append(cells, c)
		}
	}
	return cells
}

func (row *Row) Handle(ev Event, ctx Context) (Disposition, error) {
	switch {
	case ev.Is(LevelParagraph, IDNewCell):
		c, ok := ev.Make().(*Cell)
		if !ok {
			c = NewCell(DataCell, AlignDefault)
		}
		attach(ctx, &row.Container, c)
		ctx.Push(c)
		return Consumed, nil
	case ev.Level() == LevelInline:
		c := NewCell(DataCell, AlignDefault)
		attach(ctx, &row.Container, c)
		ctx.Push(c)
		return Replay, nil
	}
	return Forward, nil
}

func (row *Row) Generate(r Renderer) {
	r.RowBegin(row)
	row.generateContent(r)
	r.RowEnd(row)
}

// Cell is a table cell. Cells are never removed by cleanup, even if empty,
// as this would change the shape of the table.
type Cell struct {
	Container
	kind  CellKind
	align Alignment
	hspan int
	vspan int
}

// NewCell creates a cell spanning one row and one column.
func NewCell(kind CellKind, align Alignment) *Cell {
	return &Cell{kind: kind, align: align, hspan: 1, vspan: 1}
}

func (c *Cell) Kind() Kind         { return KindCell }
func (c *Cell) IsEmpty() bool      { return false }
func (c *Cell) CellKind() CellKind { return c.kind }
func (c *Cell) Align() Alignment   { return c.align }
func (c *Cell) Span() (int, int)   { return c.hspan, c.vspan }
func (c *Cell) IsHead() bool       { return c.kind == HeadCell }

// SetSpan sets the number of columns and rows the cell spans. Values
// below 1 are taken as 1.
func (c *Cell) SetSpan(hspan, vspan int) {
	if hspan < 1 {
		hspan = 1
	}
	if vspan < 1 {
		vspan = 1
	}
	c.hspan, c.vspan = hspan, vspan
}

func (c *Cell) Handle(ev Event, ctx Context) (Disposition, error) {
	if ev.Level() == LevelInline {
		d, _ := handleBlocks(&c.Container, ev, ctx)
		return d, nil
	}
	return Forward, nil
}

func (c *Cell) Generate(r Renderer) {
	r.CellBegin(c)
	c.generateContent(r)
	r.CellEnd(c)
}
