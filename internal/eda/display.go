package eda

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/KaramelBytes/edakit/internal/frame"
)

// Display is the rendering capability shared by every result type. HTML is
// the notebook view; Markdown and String are plain-text views.
type Display interface {
	HTML() string
	Markdown() string
	String() string
}

// Grid is implemented by results that are naturally a rectangle of cells.
type Grid interface {
	Grid() (header []string, rows [][]string)
}

// Frame adapts a flat crosstab table to Display.
type Frame struct {
	*frame.Table
}

var (
	_ Display = (*NumericSummary)(nil)
	_ Display = (*CategoricalSummary)(nil)
	_ Display = (*SummaryTable)(nil)
	_ Display = (*CountSeries)(nil)
	_ Display = (*PivotTable)(nil)
	_ Display = (*Frame)(nil)
)

func fmtNum(f float64) string { return frame.FormatFloat(f) }

// Lines returns the label/value lines of the numeric block.
func (s *NumericSummary) Lines() []string {
	lines := []string{
		"min:  " + fmtNum(s.Min),
		"25%:  " + fmtNum(s.Q25),
		"med:  " + fmtNum(s.Med),
		"mean: " + fmtNum(s.Mean),
		"75%:  " + fmtNum(s.Q75),
		"max:  " + fmtNum(s.Max),
	}
	if s.NaN > 0 {
		lines = append(lines, fmt.Sprintf("(nan): %d", s.NaN))
	}
	return lines
}

func (s *NumericSummary) String() string { return strings.Join(s.Lines(), "\n") }

func (s *NumericSummary) HTML() string { return pre(s.Lines()) }

func (s *NumericSummary) Markdown() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("min %s, 25%% %s, med %s, mean %s, 75%% %s, max %s",
		fmtNum(s.Min), fmtNum(s.Q25), fmtNum(s.Med), fmtNum(s.Mean), fmtNum(s.Q75), fmtNum(s.Max)))
	if s.NaN > 0 {
		b.WriteString(fmt.Sprintf("; nan %d", s.NaN))
	}
	return b.String()
}

// Lines returns "value: n" per kept level plus the remainder line.
func (s *CategoricalSummary) Lines() []string {
	lines := make([]string, 0, len(s.Top)+1)
	for _, lc := range s.Top {
		lines = append(lines, fmt.Sprintf("%s: %d", lc.Value, lc.Count))
	}
	if r := s.remainder(); r != "" {
		lines = append(lines, r)
	}
	return lines
}

// remainder describes the observations not covered by Top; "" if none.
func (s *CategoricalSummary) remainder() string {
	shown := s.Shown()
	if shown >= s.Count {
		return ""
	}
	plural := "s"
	if s.Count == shown+1 {
		plural = ""
	}
	return fmt.Sprintf("(%d other%s): %d", s.Levels-len(s.Top), plural, s.Count-shown)
}

func (s *CategoricalSummary) String() string { return strings.Join(s.Lines(), "\n") }

func (s *CategoricalSummary) HTML() string { return pre(s.Lines()) }

func (s *CategoricalSummary) Markdown() string {
	var b strings.Builder
	b.WriteString("top: ")
	for i, lc := range s.Top {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("%s(%d)", safeVal(lc.Value), lc.Count))
	}
	if r := s.remainder(); r != "" {
		b.WriteString("; ")
		b.WriteString(r)
	}
	b.WriteString(fmt.Sprintf("; levels=%d, count=%d", s.Levels, s.Count))
	return b.String()
}

func pre(lines []string) string {
	var b strings.Builder
	b.WriteString("<pre>")
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(html.EscapeString(l))
	}
	b.WriteString("</pre>")
	return b.String()
}

const boxStyle = "display: inline-block; font-size: 90%; background-color: rgb(240,240,240); margin: 0.5em; padding: 0.2em; vertical-align: top"

func (t *SummaryTable) HTML() string {
	var b strings.Builder
	for _, it := range t.Items {
		b.WriteString(`<div style="` + boxStyle + `">`)
		b.WriteString("<strong>" + html.EscapeString(it.Name) + "</strong>")
		b.WriteString(it.Summary.HTML())
		b.WriteString("</div>")
	}
	return b.String()
}

func (t *SummaryTable) Markdown() string {
	var b strings.Builder
	for _, it := range t.Items {
		kind := "categorical"
		if _, ok := it.Summary.(*NumericSummary); ok {
			kind = "numeric"
		}
		b.WriteString(fmt.Sprintf("- %s (%s): %s\n", safeName(it.Name), kind, it.Summary.Markdown()))
	}
	return b.String()
}

func (t *SummaryTable) String() string {
	var b strings.Builder
	for i, it := range t.Items {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(safeName(it.Name))
		b.WriteString("\n")
		b.WriteString(it.Summary.String())
	}
	return b.String()
}

// Grid lists key columns followed by the count.
func (s *CountSeries) Grid() ([]string, [][]string) {
	header := append(append([]string{}, s.Names...), "count")
	rows := make([][]string, len(s.Keys))
	for i, k := range s.Keys {
		row := make([]string, 0, len(k)+1)
		for _, v := range k {
			row = append(row, v.String())
		}
		rows[i] = append(row, strconv.Itoa(s.Counts[i]))
	}
	return header, rows
}

// Grid lists row keys then one cell per column key. The last row-key header
// reads "row \ column" to name both dimensions.
func (p *PivotTable) Grid() ([]string, [][]string) {
	colLabels := make([]string, len(p.ColKeys))
	for j, k := range p.ColKeys {
		if len(k) == 0 {
			colLabels[j] = p.Value
			continue
		}
		colLabels[j] = joinValues(k)
	}
	var header []string
	switch {
	case len(p.RowNames) == 0:
		header = append([]string{strings.Join(p.ColNames, " / ")}, colLabels...)
	case len(p.ColNames) == 0:
		header = append(append([]string{}, p.RowNames...), colLabels...)
	default:
		header = append([]string{}, p.RowNames...)
		last := len(header) - 1
		header[last] = header[last] + ` \ ` + strings.Join(p.ColNames, " / ")
		header = append(header, colLabels...)
	}
	rows := make([][]string, len(p.RowKeys))
	for i, k := range p.RowKeys {
		var row []string
		if len(p.RowNames) == 0 {
			row = append(row, p.Value)
		}
		for _, v := range k {
			row = append(row, v.String())
		}
		for _, n := range p.Counts[i] {
			row = append(row, strconv.Itoa(n))
		}
		rows[i] = row
	}
	return header, rows
}

// Grid lists the table's columns and rows.
func (f *Frame) Grid() ([]string, [][]string) {
	rows := make([][]string, f.Len())
	for i := range rows {
		rows[i] = f.Row(i)
	}
	return f.Names(), rows
}

// MarshalJSON encodes the table as one object per row.
func (f *Frame) MarshalJSON() ([]byte, error) {
	cols := f.Columns()
	rows := make([]map[string]frame.Value, f.Len())
	for i := range rows {
		rows[i] = make(map[string]frame.Value, len(cols))
		for _, c := range cols {
			rows[i][c.Name] = c.Value(i)
		}
	}
	return json.Marshal(rows)
}

func (s *CountSeries) HTML() string     { return gridHTML(s) }
func (s *CountSeries) Markdown() string { return gridMarkdown(s) }
func (s *CountSeries) String() string   { return gridText(s) }
func (p *PivotTable) HTML() string      { return gridHTML(p) }
func (p *PivotTable) Markdown() string  { return gridMarkdown(p) }
func (p *PivotTable) String() string    { return gridText(p) }
func (f *Frame) HTML() string           { return gridHTML(f) }
func (f *Frame) Markdown() string       { return gridMarkdown(f) }
func (f *Frame) String() string         { return gridText(f) }

func gridHTML(g Grid) string {
	header, rows := g.Grid()
	var b strings.Builder
	b.WriteString("<table>\n<thead><tr>")
	for _, h := range header {
		b.WriteString("<th>" + html.EscapeString(h) + "</th>")
	}
	b.WriteString("</tr></thead>\n<tbody>\n")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, c := range row {
			b.WriteString("<td>" + html.EscapeString(c) + "</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>")
	return b.String()
}

func gridMarkdown(g Grid) string {
	header, rows := g.Grid()
	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("| ")
		for i, c := range cells {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeVal(c))
		}
		b.WriteString(" |\n")
	}
	writeRow(header)
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}

// gridText aligns cells in space-padded columns.
func gridText(g Grid) string {
	header, rows := g.Grid()
	widths := make([]int, len(header))
	all := append([][]string{header}, rows...)
	for _, row := range all {
		for i, c := range row {
			if i < len(widths) && len([]rune(c)) > widths[i] {
				widths[i] = len([]rune(c))
			}
		}
	}
	var b strings.Builder
	for r, row := range all {
		if r > 0 {
			b.WriteString("\n")
		}
		for i, c := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			pad := 0
			if i < len(widths) {
				pad = widths[i] - len([]rune(c))
			}
			b.WriteString(c)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
	}
	return b.String()
}

func joinValues(k []frame.Value) string {
	parts := make([]string, len(k))
	for i, v := range k {
		parts[i] = v.String()
	}
	return strings.Join(parts, " / ")
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
