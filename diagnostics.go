package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/pontaoski/minic/errors"
	"github.com/pontaoski/minic/token"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")

	locationStyle = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	summaryStyle  = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)

type printer struct {
	out   io.Writer
	color bool
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// position maps a diagnostic's token offset back to a source position.
func position(toks []token.Token, offset int, file string) string {
	if offset < 0 || offset >= len(toks) {
		return file
	}
	return toks[offset].Location.From.String()
}

func (p *printer) diagnostic(toks []token.Token, file string, d *errors.SemanticError) {
	fmt.Fprintf(p.out, "%s %s %s\n",
		p.render(locationStyle, position(toks, d.Offset, file)+":"),
		p.render(errorStyle, "error:"),
		d.Msg,
	)
}

func (p *printer) syntax(e *errors.SyntaxError) {
	fmt.Fprintf(p.out, "%s %s %s\n",
		p.render(locationStyle, e.Token.Location.From.String()+":"),
		p.render(errorStyle, "syntax error:"),
		e.Msg,
	)
}

func (p *printer) summary(errs, files int) {
	noun := "errors"
	if errs == 1 {
		noun = "error"
	}
	fmt.Fprintln(p.out, p.render(summaryStyle, fmt.Sprintf("%d %s in %d file(s)", errs, noun, files)))
}
