package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/KaramelBytes/edakit/internal/eda"
	"github.com/KaramelBytes/edakit/internal/render"
	"github.com/google/uuid"
)

// Report is an ordered collection of titled results rendered as one document.
type Report struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Sections  []*Section `json:"sections"`
	CreatedAt time.Time  `json:"created_at"`
}

// Section is one result in a report. ID doubles as the HTML anchor.
type Section struct {
	ID      string      `json:"id"`
	Heading string      `json:"heading"`
	Body    eda.Display `json:"body"`
}

// New constructs an empty report.
func New(title string) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		CreatedAt: time.Now(),
	}
}

// Add appends a section and returns it.
func (r *Report) Add(heading string, body eda.Display) (*Section, error) {
	if body == nil {
		return nil, errors.New("section body is nil")
	}
	s := &Section{ID: uuid.NewString(), Heading: strings.TrimSpace(heading), Body: body}
	r.Sections = append(r.Sections, s)
	return s, nil
}

// Anchor is the fragment identifier used by the HTML table of contents.
func (s *Section) Anchor() string { return "sec-" + s.ID }

const css = `body { font-family: sans-serif; margin: 1.5em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 2px 6px; text-align: left; }
pre { margin: 0; }`

// HTML returns a standalone document with a table of contents.
func (r *Report) HTML() string {
	var sb strings.Builder
	title := html.EscapeString(r.title())
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<title>" + title + "</title>\n<style>\n" + css + "\n</style>\n</head>\n<body>\n")
	sb.WriteString(fmt.Sprintf("<h1 id=\"report-%s\">%s</h1>\n", r.ID, title))
	if len(r.Sections) > 1 {
		sb.WriteString("<nav><ul>\n")
		for _, s := range r.Sections {
			sb.WriteString(fmt.Sprintf("<li><a href=\"#%s\">%s</a></li>\n", s.Anchor(), html.EscapeString(s.Heading)))
		}
		sb.WriteString("</ul></nav>\n")
	}
	for _, s := range r.Sections {
		sb.WriteString(fmt.Sprintf("<section id=\"%s\">\n<h2>%s</h2>\n", s.Anchor(), html.EscapeString(s.Heading)))
		sb.WriteString(s.Body.HTML())
		sb.WriteString("\n</section>\n")
	}
	sb.WriteString("</body>\n</html>")
	return sb.String()
}

// Markdown returns the report as a Markdown document.
func (r *Report) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# " + r.title() + "\n")
	for _, s := range r.Sections {
		sb.WriteString("\n## " + s.Heading + "\n\n")
		sb.WriteString(strings.TrimRight(s.Body.Markdown(), "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// String renders every section for the terminal.
func (r *Report) String() string {
	var sb strings.Builder
	sb.WriteString(r.title())
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", len([]rune(r.title()))))
	sb.WriteString("\n")
	for _, s := range r.Sections {
		sb.WriteString("\n" + s.Heading + "\n")
		sb.WriteString(render.Text(s.Body))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r *Report) title() string {
	if r.Title == "" {
		return "Report"
	}
	return r.Title
}

// MarshalJSON keeps sections in order and stamps the creation time in UTC.
func (r *Report) MarshalJSON() ([]byte, error) {
	type alias Report
	cp := *r
	cp.CreatedAt = r.CreatedAt.UTC()
	return json.Marshal((*alias)(&cp))
}
