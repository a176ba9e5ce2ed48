package verify

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/mcpsync/mcpsync/internal/redact"
)

// Token thresholds for the total tool cost of one server. Under tokenLow
// the total renders green, under tokenMedium yellow, above that red.
const (
	tokenLow    = 5000
	tokenMedium = 15000
)

// Formatter renders verification results for humans.
type Formatter struct {
	w io.Writer

	glyphOK      func(a ...interface{}) string
	glyphFail    func(a ...interface{}) string
	glyphTimeout func(a ...interface{}) string
	dim          func(a ...interface{}) string
	tokenColor   func(total int) func(a ...interface{}) string
}

// NewFormatter builds a formatter writing to w. When colored is false all
// output is plain text.
func NewFormatter(w io.Writer, colored bool) *Formatter {
	paint := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}

	green := paint(color.FgGreen)
	yellow := paint(color.FgYellow)
	red := paint(color.FgRed)

	return &Formatter{
		w:            w,
		glyphOK:      paint(color.FgGreen, color.Bold),
		glyphFail:    paint(color.FgRed, color.Bold),
		glyphTimeout: paint(color.FgYellow, color.Bold),
		dim:          paint(color.Faint),
		tokenColor: func(total int) func(a ...interface{}) string {
			switch {
			case total <= tokenLow:
				return green
			case total <= tokenMedium:
				return yellow
			default:
				return red
			}
		},
	}
}

// Format renders every result followed by a one-line summary.
func (f *Formatter) Format(results []Result) {
	ok := 0
	for _, r := range results {
		f.formatOne(r)
		if r.OK() {
			ok++
		}
	}
	fmt.Fprintf(f.w, "\n%d/%d servers verified\n", ok, len(results))
}

func (f *Formatter) formatOne(r Result) {
	elapsed := f.dim(fmt.Sprintf("(%dms)", r.ConnectionTime.Milliseconds()))

	switch r.Status {
	case StatusSuccess:
		caps := r.Capabilities
		title := r.Server.Name
		if caps.ServerName != "" {
			title = fmt.Sprintf("%s [%s %s]", r.Server.Name, caps.ServerName, caps.ServerVersion)
		}
		fmt.Fprintf(f.w, "%s %s %s\n", f.glyphOK("✓"), title, elapsed)
		fmt.Fprintf(f.w, "  %d tools, %d resources, %d prompts\n",
			len(caps.Tools), len(caps.Resources), len(caps.Prompts))
		for _, tool := range caps.Tools {
			fmt.Fprintf(f.w, "    %s %s\n", tool.Name, f.dim(fmt.Sprintf("~%d tokens", tool.Tokens)))
		}
		if len(caps.Tools) > 0 {
			c := f.tokenColor(caps.TotalToolTokens)
			fmt.Fprintf(f.w, "  total tool tokens: %s\n", c(fmt.Sprintf("~%d", caps.TotalToolTokens)))
		}

	case StatusTimeout:
		fmt.Fprintf(f.w, "%s %s: %s %s\n",
			f.glyphTimeout("⏱"), r.Server.Name, errMessage(r.Err), elapsed)

	default:
		fmt.Fprintf(f.w, "%s %s: %s %s\n",
			f.glyphFail("✗"), r.Server.Name, errMessage(r.Err), elapsed)
	}
}

// errMessage renders an error for display, stripping credentials and query
// strings from any URL it mentions.
func errMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return redact.SanitizeString(err.Error())
}
