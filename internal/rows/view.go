package rows

import (
	"slices"
	"strings"
)

// View is the rendered side of a List. It keeps one block per row, applies
// list events as they happen and tracks a selection cursor that stays on the
// same row when rows are inserted or removed above it.
type View struct {
	list     *List
	renderer *Renderer
	blocks   []string
	cursor   int
	renders  int
}

// NewView attaches a view to list. Rows already in the list are rendered
// immediately.
func NewView(list *List, renderer *Renderer) *View {
	v := &View{list: list, renderer: renderer}
	v.rebuild()
	list.Observe(v.apply)
	return v
}

// Renders returns how many row blocks have been rendered so far.
func (v *View) Renders() int { return v.renders }

// Len returns the number of blocks.
func (v *View) Len() int { return len(v.blocks) }

// Block returns the rendered block at index i.
func (v *View) Block(i int) string { return v.blocks[i] }

// Cursor returns the selected index, or -1 when the view is empty.
func (v *View) Cursor() int {
	if len(v.blocks) == 0 {
		return -1
	}
	return v.cursor
}

// Selected returns the row under the cursor.
func (v *View) Selected() (Row, bool) {
	if len(v.blocks) == 0 || v.list.State() == TornDown {
		return nil, false
	}
	return v.list.At(v.cursor), true
}

// MoveCursor moves the selection by delta rows, clamped to the list.
func (v *View) MoveCursor(delta int) {
	v.SetCursor(v.cursor + delta)
}

// SetCursor selects row i, clamped to the list.
func (v *View) SetCursor(i int) {
	v.cursor = max(0, min(i, len(v.blocks)-1))
}

// CursorLine returns the first line of the selected block within Content.
func (v *View) CursorLine() int {
	line := 0
	for i := 0; i < v.cursor && i < len(v.blocks); i++ {
		line += strings.Count(v.blocks[i], "\n") + 1
	}
	return line
}

// SetRenderer swaps the renderer and re-renders every row, for theme or
// width changes.
func (v *View) SetRenderer(r *Renderer) {
	v.renderer = r
	v.rebuild()
}

// Content joins all blocks, highlighting the selected one when highlight is set.
func (v *View) Content(highlight bool) string {
	if len(v.blocks) == 0 {
		return ""
	}
	if !highlight {
		return strings.Join(v.blocks, "\n")
	}
	out := slices.Clone(v.blocks)
	lines := strings.Split(out[v.cursor], "\n")
	for i, line := range lines {
		lines[i] = v.renderer.Palette.Selected.Render(line)
	}
	out[v.cursor] = strings.Join(lines, "\n")
	return strings.Join(out, "\n")
}

func (v *View) rebuild() {
	v.blocks = v.blocks[:0]
	if v.list.State() != TornDown {
		for i := 0; i < v.list.Len(); i++ {
			v.blocks = append(v.blocks, v.render(v.list.At(i)))
		}
	}
	v.SetCursor(v.cursor)
}

func (v *View) render(r Row) string {
	v.renders++
	return v.renderer.Render(r)
}

func (v *View) apply(e Event) {
	switch e.Kind {
	case Inserted:
		v.blocks = slices.Insert(v.blocks, e.Index, v.render(v.list.At(e.Index)))
		if len(v.blocks) > 1 && e.Index <= v.cursor {
			v.cursor++
		}
	case Removed:
		v.blocks = slices.Delete(v.blocks, e.Index, e.Index+1)
		if e.Index < v.cursor {
			v.cursor--
		}
		v.SetCursor(v.cursor)
	case Changed:
		block := v.render(v.list.At(e.Index))
		if !e.Moved() {
			v.blocks[e.Index] = block
			return
		}
		v.blocks = slices.Delete(v.blocks, e.From, e.From+1)
		v.blocks = slices.Insert(v.blocks, e.Index, block)
		switch {
		case v.cursor == e.From:
			v.cursor = e.Index
		case e.Index <= v.cursor && v.cursor < e.From:
			v.cursor++
		}
	}
}
