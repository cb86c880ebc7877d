package eda

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/edakit/internal/frame"
)

// MissingLabel is the default label for NaN inputs.
const MissingLabel = "missing"

// Breaks selects bin boundaries: explicit edges or k percentile cut points.
type Breaks struct {
	edges     []float64
	k         int
	quantiles bool
}

// Edges uses the given boundaries as-is.
func Edges(edges ...float64) Breaks { return Breaks{edges: edges} }

// Quantiles places k boundaries at the 100/(k+1)-spaced percentiles of the
// data, giving k+1 bins.
func Quantiles(k int) Breaks { return Breaks{k: k, quantiles: true} }

func (b Breaks) String() string {
	if b.quantiles {
		return fmt.Sprintf("quantiles(%d)", b.k)
	}
	return fmt.Sprintf("edges%v", b.edges)
}

// Resolve returns the concrete boundaries for x.
func (b Breaks) Resolve(x []float64) ([]float64, error) {
	if !b.quantiles {
		out := make([]float64, len(b.edges))
		copy(out, b.edges)
		return out, nil
	}
	if b.k < 1 {
		return nil, invalid("cut", ErrInvalidBreaks, "number of breaks must be at least 1, got %d", b.k)
	}
	ps := make([]float64, b.k)
	for i := range ps {
		ps[i] = 100 / float64(b.k+1) * float64(i+1)
	}
	return Percentiles(x, ps...), nil
}

// Bins is an ordered partition of the real line into right-open intervals.
type Bins struct {
	Edges  []float64
	Labels []string // len(Edges)+1
}

// NewBins validates edges and labels. With nil labels, interval labels are
// generated from the edges.
func NewBins(edges []float64, labels []string) (*Bins, error) {
	seen := make(map[float64]struct{}, len(edges))
	for _, e := range edges {
		if math.IsNaN(e) {
			return nil, invalid("cut", ErrInvalidBreaks, "breaks contain NaN")
		}
		if _, dup := seen[e]; dup {
			return nil, invalid("cut", ErrDuplicateBreaks, "%v appears more than once", e)
		}
		seen[e] = struct{}{}
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] < edges[i-1] {
			return nil, invalid("cut", ErrInvalidBreaks, "breaks must be increasing, got %v", edges)
		}
	}
	if labels == nil {
		labels = intervalLabels(edges)
	} else if len(labels) != len(edges)+1 {
		return nil, invalid("cut", ErrLabelCount, "labels should have length %d, not %d", len(edges)+1, len(labels))
	}
	return &Bins{Edges: edges, Labels: labels}, nil
}

// Index returns the number of edges <= v, i.e. the bin holding v. A value
// equal to an edge falls into the bin above it.
func (b *Bins) Index(v float64) int {
	return sort.Search(len(b.Edges), func(i int) bool { return b.Edges[i] > v })
}

// Label returns the label of the bin holding v, or missing for NaN.
func (b *Bins) Label(v float64, missing string) string {
	if math.IsNaN(v) {
		return missing
	}
	return b.Labels[b.Index(v)]
}

func intervalLabels(edges []float64) []string {
	bounds := make([]string, 0, len(edges)+2)
	bounds = append(bounds, "-inf")
	for _, s := range DifferentDigits(edges, AutoDigits) {
		bounds = append(bounds, trimZeros(s))
	}
	bounds = append(bounds, "inf")
	labels := make([]string, len(edges)+1)
	for i := range labels {
		open := "["
		if i == 0 {
			open = "("
		}
		labels[i] = fmt.Sprintf("%s%s, %s)", open, bounds[i], bounds[i+1])
	}
	return labels
}

// CutOptions tunes CutWith.
type CutOptions struct {
	// Labels names the bins; nil generates interval labels. When set it
	// must hold exactly one more label than there are boundaries.
	Labels []string
	// Missing labels NaN inputs; "" means MissingLabel.
	Missing string
}

// Cut maps each value of x to the label of its bin. NaN inputs map to
// MissingLabel.
func Cut(x []float64, breaks Breaks, labels []string) ([]string, error) {
	return CutWith(x, breaks, CutOptions{Labels: labels})
}

// CutWith is Cut with options.
func CutWith(x []float64, breaks Breaks, opt CutOptions) ([]string, error) {
	edges, err := breaks.Resolve(x)
	if err != nil {
		return nil, err
	}
	bins, err := NewBins(edges, opt.Labels)
	if err != nil {
		return nil, err
	}
	missing := opt.Missing
	if missing == "" {
		missing = MissingLabel
	}
	out := make([]string, len(x))
	for i, v := range x {
		out[i] = bins.Label(v, missing)
	}
	return out, nil
}

// CutColumn bins a numeric column into a categorical column of the same name.
func CutColumn(col *frame.Column, breaks Breaks, opt CutOptions) (*frame.Column, error) {
	if col.Kind() != frame.Numeric {
		return nil, invalid("cut", ErrNotNumeric, "%q is %s", col.Name, col.Kind())
	}
	labels, err := CutWith(col.Floats(), breaks, opt)
	if err != nil {
		return nil, err
	}
	return frame.NewCategorical(col.Name, labels), nil
}
