package profiling

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DensityGridSize is the number of points the density curve is evaluated at
const DensityGridSize = 200

// Histogram holds equal-width bin counts over [Edges[0], Edges[len-1]]
type Histogram struct {
	Edges    []float64 `json:"edges"`
	Counts   []float64 `json:"counts"`
	BinWidth float64   `json:"bin_width"`
}

// Centers returns the midpoint of each bin
func (h Histogram) Centers() []float64 {
	centers := make([]float64, len(h.Counts))
	for i := range centers {
		centers[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}
	return centers
}

// Total returns the sum of all bin counts
func (h Histogram) Total() float64 {
	return floats.Sum(h.Counts)
}

// DensityCurve is a kernel density estimate evaluated on a grid
type DensityCurve struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// DistributionAnalyzer handles distribution shape analysis
type DistributionAnalyzer struct {
	bins int
}

// NewDistributionAnalyzer creates an analyzer producing the given number of bins
func NewDistributionAnalyzer(bins int) *DistributionAnalyzer {
	if bins < 1 {
		bins = 1
	}
	return &DistributionAnalyzer{bins: bins}
}

// Histogram bins data into equal-width bins spanning [min, max], right edge inclusive.
// A degenerate range is widened to [v-0.5, v+0.5]. Empty input yields an empty histogram.
func (da *DistributionAnalyzer) Histogram(data []float64) Histogram {
	if len(data) == 0 {
		return Histogram{}
	}
	sorted := sortedCopy(data)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	edges := floats.Span(make([]float64, da.bins+1), lo, hi)
	edges[len(edges)-1] = hi
	dividers := append([]float64(nil), edges...)
	dividers[len(dividers)-1] = math.Nextafter(hi, math.Inf(1))

	return Histogram{
		Edges:    edges,
		Counts:   stat.Histogram(nil, dividers, sorted, nil),
		BinWidth: (hi - lo) / float64(da.bins),
	}
}

// Density estimates a Gaussian KDE with Scott's bandwidth over [min, max].
// The second result is false when the data has fewer than two points or no spread.
func (da *DistributionAnalyzer) Density(data []float64) (DensityCurve, bool) {
	if len(data) < 2 {
		return DensityCurve{}, false
	}
	stdDev := stat.StdDev(data, nil)
	if stdDev == 0 || math.IsNaN(stdDev) {
		return DensityCurve{}, false
	}
	bandwidth := stdDev * math.Pow(float64(len(data)), -0.2)

	lo, hi := floats.Min(data), floats.Max(data)
	grid := floats.Span(make([]float64, DensityGridSize), lo, hi)
	ys := make([]float64, len(grid))
	n := float64(len(data))
	for _, x := range data {
		kernel := distuv.Normal{Mu: x, Sigma: bandwidth}
		for i, g := range grid {
			ys[i] += kernel.Prob(g) / n
		}
	}
	return DensityCurve{X: grid, Y: ys}, true
}

// ScaledDensity returns the density curve scaled to histogram counts
func (da *DistributionAnalyzer) ScaledDensity(data []float64, h Histogram) (DensityCurve, bool) {
	curve, ok := da.Density(data)
	if !ok {
		return curve, false
	}
	floats.Scale(float64(len(data))*h.BinWidth, curve.Y)
	return curve, true
}

func sortedCopy(data []float64) []float64 {
	out := append([]float64(nil), data...)
	sort.Float64s(out)
	return out
}
