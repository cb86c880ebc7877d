package render

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/edakit/internal/eda"
	"github.com/KaramelBytes/edakit/internal/utils"
)

// Format is an output encoding for results.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ParseFormat accepts a format name case-insensitively, plus the md/htm
// shorthands. An empty string means FormatText.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use text|markdown|html|json)", s)
	}
}

// Render encodes d in format f. Text output goes through Text.
func Render(d eda.Display, f Format) ([]byte, error) {
	switch f {
	case FormatText, "":
		return []byte(Text(d) + "\n"), nil
	case FormatMarkdown:
		return []byte(strings.TrimRight(d.Markdown(), "\n") + "\n"), nil
	case FormatHTML:
		return []byte(d.HTML() + "\n"), nil
	case FormatJSON:
		b, err := utils.PrettyJSON(d)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
}
