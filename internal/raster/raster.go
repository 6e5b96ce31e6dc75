package raster

import (
	"image"
)

// Raster is an immutable rows x cols grid of 8-bit intensity samples.
//
// The zero value is not a valid Raster; use New, FromRows or FromGray.
type Raster struct {
	rows int
	cols int
	pix  []uint8
}

// New creates a Raster from row-major samples. The slice is copied, so the
// caller may reuse it afterwards.
//
// Returns an ErrShape error when rows or cols is not positive or when
// len(pix) != rows*cols.
func New(rows, cols int, pix []uint8) (*Raster, error) {
	if rows <= 0 || cols <= 0 {
		return nil, shapeError("raster dimensions must be positive, got %dx%d", rows, cols)
	}
	if len(pix) != rows*cols {
		return nil, shapeError("raster %dx%d needs %d samples, got %d", rows, cols, rows*cols, len(pix))
	}
	cp := make([]uint8, len(pix))
	copy(cp, pix)
	return &Raster{rows: rows, cols: cols, pix: cp}, nil
}

// Filled creates a Raster with every sample set to v.
func Filled(rows, cols int, v uint8) (*Raster, error) {
	if rows <= 0 || cols <= 0 {
		return nil, shapeError("raster dimensions must be positive, got %dx%d", rows, cols)
	}
	pix := make([]uint8, rows*cols)
	if v != 0 {
		for i := range pix {
			pix[i] = v
		}
	}
	return &Raster{rows: rows, cols: cols, pix: pix}, nil
}

// FromRows creates a Raster from a slice of equally long rows.
func FromRows(data [][]uint8) (*Raster, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, shapeError("raster must have at least one row and one column")
	}
	cols := len(data[0])
	pix := make([]uint8, 0, len(data)*cols)
	for i, row := range data {
		if len(row) != cols {
			return nil, shapeError("row %d has %d columns, want %d", i, len(row), cols)
		}
		pix = append(pix, row...)
	}
	return &Raster{rows: len(data), cols: cols, pix: pix}, nil
}

// FromGray copies an *image.Gray into a Raster. Row 0 is the image's Min.Y line.
func FromGray(img *image.Gray) (*Raster, error) {
	if img == nil {
		return nil, shapeError("nil image")
	}
	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	if rows <= 0 || cols <= 0 {
		return nil, shapeError("image bounds %v are empty", b)
	}
	pix := make([]uint8, rows*cols)
	for y := 0; y < rows; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[y*cols:(y+1)*cols], img.Pix[off:off+cols])
	}
	return &Raster{rows: rows, cols: cols, pix: pix}, nil
}

// wrap adopts pix without copying. Only for freshly allocated slices.
func wrap(rows, cols int, pix []uint8) *Raster {
	return &Raster{rows: rows, cols: cols, pix: pix}
}

// Rows returns the number of rows.
func (r *Raster) Rows() int { return r.rows }

// Cols returns the number of columns.
func (r *Raster) Cols() int { return r.cols }

// Len returns rows*cols.
func (r *Raster) Len() int { return len(r.pix) }

// At returns the sample at (row, col). It panics if the cell is out of range,
// like slice indexing.
func (r *Raster) At(row, col int) uint8 {
	return r.pix[row*r.cols+col]
}

// Pix returns a copy of the row-major samples.
func (r *Raster) Pix() []uint8 {
	cp := make([]uint8, len(r.pix))
	copy(cp, r.pix)
	return cp
}

// SameShape reports whether r and o have identical dimensions.
func (r *Raster) SameShape(o *Raster) bool {
	return r.rows == o.rows && r.cols == o.cols
}

// Equal reports whether r and o have the same shape and samples.
func (r *Raster) Equal(o *Raster) bool {
	if !r.SameShape(o) {
		return false
	}
	for i, v := range r.pix {
		if o.pix[i] != v {
			return false
		}
	}
	return true
}

// With returns a copy of r with the sample at (row, col) replaced by v.
func (r *Raster) With(row, col int, v uint8) *Raster {
	pix := r.Pix()
	pix[row*r.cols+col] = v
	return wrap(r.rows, r.cols, pix)
}

// ToGray renders the raster as an *image.Gray anchored at (0,0).
func (r *Raster) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.cols, r.rows))
	for y := 0; y < r.rows; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+r.cols], r.pix[y*r.cols:(y+1)*r.cols])
	}
	return img
}

// Validate returns an ErrShape error when r is nil or empty.
func Validate(r *Raster) error {
	if r == nil {
		return shapeError("nil raster")
	}
	if r.rows <= 0 || r.cols <= 0 || len(r.pix) != r.rows*r.cols {
		return shapeError("raster has invalid dimensions %dx%d", r.rows, r.cols)
	}
	return nil
}
