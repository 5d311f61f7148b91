package main

import (
	"strings"

	"github.com/amterp/color"

	"github.com/shabbyrobe/prettify/internal/prefs"
)

// palette holds the colors for diagnostics and diffs. Colors switch
// themselves off when output is not a terminal or NO_COLOR is set.
type palette struct {
	err    *color.Color
	file   *color.Color
	header *color.Color
	hunk   *color.Color
	add    *color.Color
	del    *color.Color
	status *color.Color
}

func newPalette(theme prefs.Theme) palette {
	if theme == prefs.Dark {
		return palette{
			err:    color.New(color.FgHiRed, color.Bold),
			file:   color.New(color.FgHiWhite, color.Bold),
			header: color.New(color.Bold),
			hunk:   color.New(color.FgHiCyan),
			add:    color.New(color.FgHiGreen),
			del:    color.New(color.FgHiRed),
			status: color.New(color.FgHiBlack),
		}
	}
	return palette{
		err:    color.New(color.FgRed, color.Bold),
		file:   color.New(color.FgBlue, color.Bold),
		header: color.New(color.Bold),
		hunk:   color.New(color.FgCyan),
		add:    color.New(color.FgGreen),
		del:    color.New(color.FgRed),
		status: color.New(color.FgBlack, color.Bold),
	}
}

// colorDiff colors the lines of a unified diff.
func (p palette) colorDiff(diff string) string {
	lines := strings.SplitAfter(diff, "\n")
	var sb strings.Builder
	for _, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		nl := line[len(body):]
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			sb.WriteString(p.header.Sprint(body))
		case strings.HasPrefix(body, "@@"):
			sb.WriteString(p.hunk.Sprint(body))
		case strings.HasPrefix(body, "+"):
			sb.WriteString(p.add.Sprint(body))
		case strings.HasPrefix(body, "-"):
			sb.WriteString(p.del.Sprint(body))
		default:
			sb.WriteString(body)
		}
		sb.WriteString(nl)
	}
	return sb.String()
}
