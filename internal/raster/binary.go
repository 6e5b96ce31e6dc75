package raster

// BinaryRaster is a rows x cols grid of foreground (true) and background
// (false) cells. Like Raster it is treated as immutable by every operation in
// this module.
type BinaryRaster struct {
	rows int
	cols int
	set  []bool
}

// NewBinary creates a BinaryRaster from row-major cells. The slice is copied.
func NewBinary(rows, cols int, cells []bool) (*BinaryRaster, error) {
	if rows <= 0 || cols <= 0 {
		return nil, shapeError("binary raster dimensions must be positive, got %dx%d", rows, cols)
	}
	if len(cells) != rows*cols {
		return nil, shapeError("binary raster %dx%d needs %d cells, got %d", rows, cols, rows*cols, len(cells))
	}
	cp := make([]bool, len(cells))
	copy(cp, cells)
	return &BinaryRaster{rows: rows, cols: cols, set: cp}, nil
}

// BinaryFromRows parses rows of '#' (foreground) and '.' (background)
// characters. Any character other than '#' is background.
func BinaryFromRows(lines ...string) (*BinaryRaster, error) {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, shapeError("binary raster must have at least one row and one column")
	}
	cols := len(lines[0])
	cells := make([]bool, 0, len(lines)*cols)
	for i, line := range lines {
		if len(line) != cols {
			return nil, shapeError("row %d has %d columns, want %d", i, len(line), cols)
		}
		for j := 0; j < cols; j++ {
			cells = append(cells, line[j] == '#')
		}
	}
	return &BinaryRaster{rows: len(lines), cols: cols, set: cells}, nil
}

// BinaryBuilder accumulates cells for a new BinaryRaster. It is the only
// mutable view of binary data and is consumed by Build.
type BinaryBuilder struct {
	b *BinaryRaster
}

// NewBinaryBuilder starts an all-background grid of the given shape. The
// caller must have validated the dimensions.
func NewBinaryBuilder(rows, cols int) *BinaryBuilder {
	return &BinaryBuilder{b: &BinaryRaster{rows: rows, cols: cols, set: make([]bool, rows*cols)}}
}

// Set marks (row, col) as foreground or background.
func (bb *BinaryBuilder) Set(row, col int, v bool) {
	bb.b.set[row*bb.b.cols+col] = v
}

// Build returns the finished BinaryRaster. The builder must not be used afterwards.
func (bb *BinaryBuilder) Build() *BinaryRaster {
	b := bb.b
	bb.b = nil
	return b
}

// Rows returns the number of rows.
func (b *BinaryRaster) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *BinaryRaster) Cols() int { return b.cols }

// At reports whether (row, col) is foreground.
func (b *BinaryRaster) At(row, col int) bool {
	return b.set[row*b.cols+col]
}

// Count returns the number of foreground cells.
func (b *BinaryRaster) Count() int {
	n := 0
	for _, v := range b.set {
		if v {
			n++
		}
	}
	return n
}

// Equal reports whether b and o have the same shape and cells.
func (b *BinaryRaster) Equal(o *BinaryRaster) bool {
	if b.rows != o.rows || b.cols != o.cols {
		return false
	}
	for i, v := range b.set {
		if o.set[i] != v {
			return false
		}
	}
	return true
}

// String renders b using '#' for foreground and '.' for background, one line
// per row. Useful in test failure output.
func (b *BinaryRaster) String() string {
	buf := make([]byte, 0, b.rows*(b.cols+1))
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if b.set[r*b.cols+c] {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// ValidateBinary returns an ErrShape error when b is nil or empty.
func ValidateBinary(b *BinaryRaster) error {
	if b == nil {
		return shapeError("nil binary raster")
	}
	if b.rows <= 0 || b.cols <= 0 || len(b.set) != b.rows*b.cols {
		return shapeError("binary raster has invalid dimensions %dx%d", b.rows, b.cols)
	}
	return nil
}
