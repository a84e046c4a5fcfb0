// Package systems provides the per-frame simulation systems: movement strategies,
// chunked scheduling, collision and the neighbour grid.
package systems

import "gonum.org/v1/gonum/spatial/r2"

// SpatialGrid buckets enemy indices by position for neighbour lookups.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int // flat grid of index lists
	points   []r2.Vec
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all indices from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.points = g.points[:0]
}

// Insert adds index i at position p.
func (g *SpatialGrid) Insert(i int, p r2.Vec) {
	for len(g.points) <= i {
		g.points = append(g.points, r2.Vec{})
	}
	g.points[i] = p
	idx := g.cellIndex(p)
	g.cells[idx] = append(g.cells[idx], i)
}

// QueryRadiusInto appends every inserted index strictly within radius of p to dst.
// Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []int, p r2.Vec, radius float64) []int {
	cellRadius := int(radius/g.cellSize) + 1
	centerCol, centerRow := g.cellCoords(p)
	radiusSq := radius * radius

	for dc := -cellRadius; dc <= cellRadius; dc++ {
		col := centerCol + dc
		if col < 0 || col >= g.cols {
			continue
		}
		for dr := -cellRadius; dr <= cellRadius; dr++ {
			row := centerRow + dr
			if row < 0 || row >= g.rows {
				continue
			}
			for _, i := range g.cells[row*g.cols+col] {
				if r2.Norm2(r2.Sub(g.points[i], p)) < radiusSq {
					dst = append(dst, i)
				}
			}
		}
	}
	return dst
}

// cellCoords returns the clamped column and row for a world position.
func (g *SpatialGrid) cellCoords(p r2.Vec) (col, row int) {
	col = int(p.X / g.cellSize)
	row = int(p.Y / g.cellSize)

	// Clamp to valid range
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(p r2.Vec) int {
	col, row := g.cellCoords(p)
	return row*g.cols + col
}
