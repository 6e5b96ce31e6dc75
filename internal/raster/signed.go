package raster

// SignedRaster is a working grid of signed samples with the same shape as a
// Raster. It holds values in [-8, 263]: a clamped sample plus at most one
// adjustment of +/-1 per direction of a Crimmins pass.
//
// Unlike Raster, SignedRaster is mutable. It exists only inside filter passes.
type SignedRaster struct {
	Rows int
	Cols int
	Pix  []int16
}

// NewSigned widens r into a SignedRaster.
func NewSigned(r *Raster) *SignedRaster {
	pix := make([]int16, len(r.pix))
	for i, v := range r.pix {
		pix[i] = int16(v)
	}
	return &SignedRaster{Rows: r.rows, Cols: r.cols, Pix: pix}
}

// Clone returns an independent copy of s.
func (s *SignedRaster) Clone() *SignedRaster {
	pix := make([]int16, len(s.Pix))
	copy(pix, s.Pix)
	return &SignedRaster{Rows: s.Rows, Cols: s.Cols, Pix: pix}
}

// Clamp limits every sample of s to [0,255] in place.
func (s *SignedRaster) Clamp() {
	for i, v := range s.Pix {
		if v < 0 {
			s.Pix[i] = 0
		} else if v > 255 {
			s.Pix[i] = 255
		}
	}
}

// Narrow clamps a copy of s to [0,255] and returns it as a Raster.
func (s *SignedRaster) Narrow() *Raster {
	pix := make([]uint8, len(s.Pix))
	for i, v := range s.Pix {
		switch {
		case v < 0:
			pix[i] = 0
		case v > 255:
			pix[i] = 255
		default:
			pix[i] = uint8(v)
		}
	}
	return wrap(s.Rows, s.Cols, pix)
}
