// Package grid records which terminal cells show which raster.
package grid

import (
	"sort"

	"github.com/cam-per/sixel/graphics"
)

// Placement is one cell showing part of a raster. StartColumn is the column
// the raster was inserted at and OffsetY is the raster row, in cells, that
// this line shows.
type Placement struct {
	Raster      *graphics.Raster
	Line        int
	Column      int
	StartColumn int
	OffsetY     int
}

type cell struct {
	line, column int
}

// Store maps cells to placements and counts references per raster. When
// the last cell referencing a raster is overwritten or cleared, the evict
// callback receives its id.
type Store struct {
	lines, columns int
	cells          map[cell]Placement
	refs           map[uint64]int
	evict          func(id uint64)
}

func NewStore(lines, columns int) *Store {
	return &Store{
		lines:   lines,
		columns: columns,
		cells:   make(map[cell]Placement),
		refs:    make(map[uint64]int),
	}
}

// OnEvict sets the callback run when a raster loses its last cell.
func (store *Store) OnEvict(fn func(id uint64)) { store.evict = fn }

// Insert places raster with its top-left corner at (line, column) and
// returns how many cells now reference it. Cells outside the grid are
// skipped.
func (store *Store) Insert(raster *graphics.Raster, line, column, cellWidth int) int {
	if raster.Empty() || cellWidth <= 0 || raster.CellHeight() <= 0 {
		return 0
	}
	columns := ceilDiv(raster.Width(), cellWidth)
	lines := ceilDiv(raster.Height(), raster.CellHeight())

	n := 0
	for y := 0; y < lines; y++ {
		for x := 0; x < columns; x++ {
			l, c := line+y, column+x
			if l < 0 || l >= store.lines || c < 0 || c >= store.columns {
				continue
			}
			store.set(cell{l, c}, Placement{
				Raster:      raster,
				Line:        l,
				Column:      c,
				StartColumn: column,
				OffsetY:     y,
			})
			n++
		}
	}
	return n
}

func (store *Store) set(at cell, p Placement) {
	store.release(at)
	store.cells[at] = p
	store.refs[p.Raster.ID()]++
}

// Clear empties one cell.
func (store *Store) Clear(line, column int) {
	store.release(cell{line, column})
}

// Reset empties every cell.
func (store *Store) Reset() {
	for at := range store.cells {
		store.release(at)
	}
}

func (store *Store) release(at cell) {
	old, ok := store.cells[at]
	if !ok {
		return
	}
	delete(store.cells, at)

	id := old.Raster.ID()
	store.refs[id]--
	if store.refs[id] > 0 {
		return
	}
	delete(store.refs, id)
	if store.evict != nil {
		store.evict(id)
	}
}

// At returns the placement in a cell.
func (store *Store) At(line, column int) (Placement, bool) {
	p, ok := store.cells[cell{line, column}]
	return p, ok
}

// Placements returns every occupied cell in reading order.
func (store *Store) Placements() []Placement {
	out := make([]Placement, 0, len(store.cells))
	for _, p := range store.cells {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})
	return out
}

// Refs returns how many cells reference raster id.
func (store *Store) Refs(id uint64) int { return store.refs[id] }

func (store *Store) Len() int { return len(store.cells) }

func ceilDiv(a, b int) int { return (a + b - 1) / b }
