package eda

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/KaramelBytes/edakit/internal/frame"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultTopLevels is how many levels a categorical summary keeps.
const DefaultTopLevels = 5

// Summary is a per-column descriptive record: *NumericSummary or
// *CategoricalSummary.
type Summary interface {
	Display
	summary()
}

// NumericSummary describes a numeric column. All statistics ignore NaN;
// NaN counts the missing values.
type NumericSummary struct {
	Min  float64 `json:"min"`
	Q25  float64 `json:"q25"`
	Med  float64 `json:"med"`
	Mean float64 `json:"mean"`
	Q75  float64 `json:"q75"`
	Max  float64 `json:"max"`
	NaN  int     `json:"nan"`
}

// LevelCount is one categorical level and its number of occurrences.
type LevelCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalSummary keeps the most frequent levels of a column.
type CategoricalSummary struct {
	Top    []LevelCount `json:"top"`
	Levels int          `json:"levels"` // distinct values
	Count  int          `json:"count"`  // observations
}

func (*NumericSummary) summary()     {}
func (*CategoricalSummary) summary() {}

// Shown is the number of observations covered by Top.
func (s *CategoricalSummary) Shown() int {
	n := 0
	for _, lc := range s.Top {
		n += lc.Count
	}
	return n
}

// SummaryOptions tunes Summarize.
type SummaryOptions struct {
	// TopLevels caps the levels kept for categorical columns; <= 0 means DefaultTopLevels.
	TopLevels int
}

// Summarize describes a single column.
func Summarize(col *frame.Column) Summary {
	return SummarizeWith(col, SummaryOptions{})
}

// SummarizeWith is Summarize with options.
func SummarizeWith(col *frame.Column, opt SummaryOptions) Summary {
	if col.Kind() == frame.Numeric {
		return summarizeNumeric(col.Floats())
	}
	top := opt.TopLevels
	if top <= 0 {
		top = DefaultTopLevels
	}
	return summarizeCategorical(col.Strings(), top)
}

func summarizeNumeric(xs []float64) *NumericSummary {
	sorted, nan := nonMissing(xs)
	s := &NumericSummary{NaN: nan}
	if len(sorted) == 0 {
		s.Min, s.Q25, s.Med, s.Mean, s.Q75, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.Min = floats.Min(sorted)
	s.Q25 = quantile(sorted, 0.25)
	s.Med = quantile(sorted, 0.5)
	s.Q75 = quantile(sorted, 0.75)
	s.Max = floats.Max(sorted)
	s.Mean = stat.Mean(sorted, nil)
	return s
}

// summarizeCategorical ranks levels by descending count; equal counts keep
// the ascending order of the level value.
func summarizeCategorical(xs []string, top int) *CategoricalSummary {
	counts := make(map[string]int)
	for _, v := range xs {
		counts[v]++
	}
	levels := make([]LevelCount, 0, len(counts))
	for v, n := range counts {
		levels = append(levels, LevelCount{Value: v, Count: n})
	}
	sort.Slice(levels, func(i, j int) bool {
		if levels[i].Count == levels[j].Count {
			return levels[i].Value < levels[j].Value
		}
		return levels[i].Count > levels[j].Count
	})
	if len(levels) > top {
		levels = levels[:top]
	}
	return &CategoricalSummary{Top: levels, Levels: len(counts), Count: len(xs)}
}

// NamedSummary pairs a column name with its summary.
type NamedSummary struct {
	Name    string  `json:"name"`
	Summary Summary `json:"summary"`
}

// SummaryTable holds summaries in input column order.
type SummaryTable struct {
	Items []NamedSummary `json:"columns"`
}

// Get returns the summary for a column name.
func (t *SummaryTable) Get(name string) (Summary, bool) {
	for _, it := range t.Items {
		if it.Name == name {
			return it.Summary, true
		}
	}
	return nil, false
}

// SummarizeTable describes every column of t, preserving column order.
func SummarizeTable(t *frame.Table) *SummaryTable {
	return SummarizeTableWith(t, SummaryOptions{})
}

// SummarizeTableWith is SummarizeTable with options.
func SummarizeTableWith(t *frame.Table, opt SummaryOptions) *SummaryTable {
	out := &SummaryTable{Items: make([]NamedSummary, 0, t.NumCols())}
	for _, c := range t.Columns() {
		out.Items = append(out.Items, NamedSummary{Name: c.Name, Summary: SummarizeWith(c, opt)})
	}
	return out
}

// MarshalJSON encodes NaN statistics as null.
func (s *NumericSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string   `json:"kind"`
		Min  *float64 `json:"min"`
		Q25  *float64 `json:"q25"`
		Med  *float64 `json:"med"`
		Mean *float64 `json:"mean"`
		Q75  *float64 `json:"q75"`
		Max  *float64 `json:"max"`
		NaN  int      `json:"nan"`
	}{"numeric", finite(s.Min), finite(s.Q25), finite(s.Med), finite(s.Mean), finite(s.Q75), finite(s.Max), s.NaN})
}

func (s *CategoricalSummary) MarshalJSON() ([]byte, error) {
	type alias CategoricalSummary
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"categorical", (*alias)(s)})
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
