package raster

// DefaultBinarizeLevel splits 8-bit samples into two halves: values above it
// are foreground.
const DefaultBinarizeLevel = 127

// Invert returns a new Raster with every sample v replaced by 255-v.
func Invert(r *Raster) (*Raster, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	pix := make([]uint8, len(r.pix))
	for i, v := range r.pix {
		pix[i] = 255 - v
	}
	return wrap(r.rows, r.cols, pix), nil
}

// Binarize marks every cell whose sample is strictly greater than level as
// foreground.
func Binarize(r *Raster, level uint8) (*BinaryRaster, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	set := make([]bool, len(r.pix))
	for i, v := range r.pix {
		set[i] = v > level
	}
	return &BinaryRaster{rows: r.rows, cols: r.cols, set: set}, nil
}

// FromBinary renders b as a Raster with foreground cells set to fg and
// background cells set to bg.
func FromBinary(b *BinaryRaster, fg, bg uint8) (*Raster, error) {
	if err := ValidateBinary(b); err != nil {
		return nil, err
	}
	pix := make([]uint8, len(b.set))
	for i, v := range b.set {
		if v {
			pix[i] = fg
		} else {
			pix[i] = bg
		}
	}
	return wrap(b.rows, b.cols, pix), nil
}

// Diff returns the pixel-wise absolute difference |a-b|. It is used to
// visualize the noise a cleaning step removed.
//
// Returns an ErrShape error when either raster is empty or the shapes differ.
func Diff(a, b *Raster) (*Raster, error) {
	if err := Validate(a); err != nil {
		return nil, err
	}
	if err := Validate(b); err != nil {
		return nil, err
	}
	if !a.SameShape(b) {
		return nil, shapeError("cannot diff %dx%d with %dx%d", a.rows, a.cols, b.rows, b.cols)
	}
	pix := make([]uint8, len(a.pix))
	for i, va := range a.pix {
		vb := b.pix[i]
		if va > vb {
			pix[i] = va - vb
		} else {
			pix[i] = vb - va
		}
	}
	return wrap(a.rows, a.cols, pix), nil
}
