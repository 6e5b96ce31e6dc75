package cleaning

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

// Report summarizes a removed-noise diff raster.
type Report struct {
	// ChangedPixels is the number of non-zero diff samples.
	ChangedPixels int `json:"changed_pixels"`

	// ChangedPercent is ChangedPixels relative to the raster size, 0-100.
	ChangedPercent float64 `json:"changed_percent"`

	// Mean and StdDev describe all diff samples, including unchanged ones.
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`

	// Max is the largest single-pixel change.
	Max uint8 `json:"max"`
}

// Summarize computes a Report for diff. A nil raster yields a zero Report.
func Summarize(diff *raster.Raster) Report {
	if diff == nil || diff.Len() == 0 {
		return Report{}
	}
	pix := diff.Pix()
	values := make([]float64, len(pix))
	var rep Report
	for i, v := range pix {
		values[i] = float64(v)
		if v != 0 {
			rep.ChangedPixels++
		}
		if v > rep.Max {
			rep.Max = v
		}
	}
	rep.Mean, rep.StdDev = stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		// Sample standard deviation is undefined for a single value.
		rep.StdDev = 0
	}
	rep.ChangedPercent = float64(rep.ChangedPixels) * 100 / float64(len(pix))
	return rep
}
