package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xvgu/xvguctl/internal/towererr"
)

// Format selects how results are printed.
type Format string

const (
	FormatText   Format = "text"
	FormatStyled Format = "styled"
	FormatJSON   Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatStyled, FormatJSON:
		return f, nil
	default:
		return "", towererr.New(towererr.InvalidArgument,
			"unknown output format %q (expected text, styled or json)", s)
	}
}

// Printer writes command results in one Format.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	format Format
	width  int
}

// NewPrinter creates a printer. Nil writers default to stdout and stderr.
func NewPrinter(out, errOut io.Writer, format Format) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	if format == "" {
		format = FormatText
	}
	return &Printer{out: out, errOut: errOut, format: format, width: TerminalWidth(out)}
}

// Format returns the printer's output format.
func (p *Printer) Format() Format {
	return p.format
}

type jsonResult struct {
	OK      bool              `json:"ok"`
	Message string            `json:"message,omitempty"`
	Raw     string            `json:"raw,omitempty"`
	Kind    string            `json:"kind,omitempty"`
	Error   string            `json:"error,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func detailMap(details []Detail) map[string]string {
	if len(details) == 0 {
		return nil
	}
	m := make(map[string]string, len(details))
	for _, d := range details {
		m[d.Key] = d.Value
	}
	return m
}

func (p *Printer) writeJSON(w io.Writer, v jsonResult) {
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

// OK prints a confirmation line such as "OK" or "OK buzzer OFF".
func (p *Printer) OK(message string, details ...Detail) {
	switch p.format {
	case FormatJSON:
		p.writeJSON(p.out, jsonResult{OK: true, Message: message, Details: detailMap(details)})
	case FormatStyled:
		_, _ = fmt.Fprintln(p.out, NewSuccessResult(message, details...).SetWidth(p.width).Render())
	default:
		_, _ = fmt.Fprintln(p.out, message)
	}
}

// Raw prints response bytes, given as hex.
func (p *Printer) Raw(hexBytes string, details ...Detail) {
	switch p.format {
	case FormatJSON:
		p.writeJSON(p.out, jsonResult{OK: true, Raw: hexBytes, Details: detailMap(details)})
	case FormatStyled:
		all := append([]Detail{{Key: "Raw", Value: hexBytes}}, details...)
		_, _ = fmt.Fprintln(p.out, NewSuccessResult("Response received", all...).SetWidth(p.width).Render())
	default:
		_, _ = fmt.Fprintln(p.out, "RAW: "+hexBytes)
	}
}

// Error prints err to the error writer.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	switch p.format {
	case FormatJSON:
		p.writeJSON(p.errOut, jsonResult{Kind: towererr.KindOf(err).String(), Error: err.Error()})
	case FormatStyled:
		kind := towererr.KindOf(err)
		result := NewFailureResult(kind.String(), err, towererr.Troubleshooting(err))
		if kind == towererr.BuzzerStuckOn {
			result = NewWarningResult(kind.String(), err, towererr.Troubleshooting(err))
		}
		_, _ = fmt.Fprintln(p.errOut, result.SetWidth(TerminalWidth(p.errOut)).Render())
	default:
		_, _ = fmt.Fprintln(p.errOut, "Error: "+err.Error())
	}
}
