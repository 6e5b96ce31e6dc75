package raster

// LabelMap assigns each cell of a BinaryRaster a component label. Label 0 is
// background; every positive label names one 8-connected foreground component.
type LabelMap struct {
	Rows   int
	Cols   int
	Labels []int
}

// NewLabelMap allocates an all-background LabelMap.
func NewLabelMap(rows, cols int) *LabelMap {
	return &LabelMap{Rows: rows, Cols: cols, Labels: make([]int, rows*cols)}
}

// At returns the label at (row, col).
func (m *LabelMap) At(row, col int) int {
	return m.Labels[row*m.Cols+col]
}

// ComponentStats maps each positive label to its area in cells.
type ComponentStats map[int]int

// TotalArea returns the sum of all component areas.
func (s ComponentStats) TotalArea() int {
	total := 0
	for _, area := range s {
		total += area
	}
	return total
}
