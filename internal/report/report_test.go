package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/KaramelBytes/edakit/internal/eda"
	"github.com/KaramelBytes/edakit/internal/frame"
	"github.com/google/uuid"
)

func buildReport(t *testing.T) *Report {
	t.Helper()
	tbl := frame.MustTable(
		frame.NewCategorical("region", []string{"north", "south", "north"}),
		frame.NewNumeric("sales", []float64{10, 20, 30}),
	)
	r := New("Sales <Q1>")
	if _, err := r.Add("Columns", eda.SummarizeTable(tbl)); err != nil {
		t.Fatalf("add summary: %v", err)
	}
	ct, err := eda.Crosstab(eda.Options{Data: tbl, Format: eda.FormatSeries}, eda.Col("region"))
	if err != nil {
		t.Fatalf("crosstab: %v", err)
	}
	if _, err := r.Add("By region", ct); err != nil {
		t.Fatalf("add crosstab: %v", err)
	}
	return r
}

func TestNewAssignsIDs(t *testing.T) {
	r := buildReport(t)
	if _, err := uuid.Parse(r.ID); err != nil {
		t.Fatalf("report id is not a uuid: %q", r.ID)
	}
	if r.Sections[0].ID == r.Sections[1].ID {
		t.Fatalf("section ids should be unique")
	}
	if _, err := r.Add("nil", nil); err == nil {
		t.Fatalf("expected error for nil body")
	}
}

func TestReportHTML(t *testing.T) {
	r := buildReport(t)
	out := r.HTML()
	if !strings.HasPrefix(out, "<!DOCTYPE html>") || !strings.HasSuffix(out, "</html>") {
		t.Fatalf("not a standalone document:\n%s", out)
	}
	for _, want := range []string{
		"<title>Sales &lt;Q1&gt;</title>",
		`<a href="#` + r.Sections[1].Anchor() + `">By region</a>`,
		`<section id="` + r.Sections[0].Anchor() + `">`,
		"<strong>sales</strong>",
		"<td>north</td><td>2</td>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in html:\n%s", want, out)
		}
	}
}

func TestReportMarkdownAndText(t *testing.T) {
	r := buildReport(t)
	md := r.Markdown()
	if !strings.HasPrefix(md, "# Sales <Q1>\n") || !strings.Contains(md, "## By region\n\n| region | count |") {
		t.Fatalf("unexpected markdown:\n%s", md)
	}
	txt := r.String()
	if !strings.Contains(txt, "Columns") || !strings.Contains(txt, "north") {
		t.Fatalf("unexpected text:\n%s", txt)
	}
}

func TestReportJSON(t *testing.T) {
	b, err := json.Marshal(buildReport(t))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc struct {
		Title    string `json:"title"`
		Sections []struct {
			Heading string          `json:"heading"`
			Body    json.RawMessage `json:"body"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Title != "Sales <Q1>" || len(doc.Sections) != 2 || len(doc.Sections[1].Body) == 0 {
		t.Fatalf("unexpected json: %s", b)
	}
}
