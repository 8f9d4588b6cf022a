// ABOUTME: Line-based prompter shared by the selection engine and scalar validators
// ABOUTME: Owns the buffered input reader, output writer, styling and debug logging

// Package interactive asks a human operator for choices and validated values over a
// line-based terminal stream. Every question follows the same loop: print, read one line,
// validate, and either return the value or print an error and read again.
package interactive

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ErrInput marks an unrecoverable failure of the input stream itself.
// Callers should stop asking questions and exit when they see it.
var ErrInput = errors.New("failed to read line")

// Prompter reads answers from one input stream and writes questions to one output stream
type Prompter struct {
	in    *bufio.Reader
	out   io.Writer
	log   *zap.Logger
	color bool

	headerStyle  lipgloss.Style
	ordinalStyle lipgloss.Style
	nameStyle    lipgloss.Style
	mutedStyle   lipgloss.Style
	errorStyle   lipgloss.Style
}

// Option configures a Prompter
type Option func(*Prompter)

// WithLogger sets the debug logger (default: no-op)
func WithLogger(log *zap.Logger) Option {
	return func(p *Prompter) {
		if log != nil {
			p.log = log
		}
	}
}

// WithColor enables lipgloss styling of menus and error lines
func WithColor(enabled bool) Option {
	return func(p *Prompter) {
		p.color = enabled
	}
}

// New creates a prompter reading lines from in and writing prompts to out.
// The reader is buffered once, so a Prompter must be reused across questions.
func New(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		log: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	renderer := lipgloss.NewRenderer(out)
	p.headerStyle = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	p.ordinalStyle = renderer.NewStyle().Foreground(lipgloss.Color("10"))
	p.nameStyle = renderer.NewStyle().Bold(true)
	p.mutedStyle = renderer.NewStyle().Foreground(lipgloss.Color("241"))
	p.errorStyle = renderer.NewStyle().Foreground(lipgloss.Color("196"))

	return p
}

// Println writes a plain line of text to the output
func (p *Prompter) Println(text string) {
	_, _ = fmt.Fprintln(p.out, text)
}

// Printf writes formatted text to the output
func (p *Prompter) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// reject prints a validation message; the caller then reads again
func (p *Prompter) reject(msg string, input string) {
	p.log.Debug("rejected input", zap.String("input", input), zap.String("reason", msg))
	p.Println(p.paint(p.errorStyle, msg))
}

// readLine blocks for one newline-terminated line and returns it without the terminator.
// A trailing unterminated line is returned before end of input is reported.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}

		p.log.Error("input stream failed", zap.Error(err))

		return "", errors.Mark(errors.Wrap(err, "failed to read line"), ErrInput)
	}

	line = strings.TrimRight(line, "\r\n")
	p.log.Debug("read line", zap.String("line", line))

	return line, nil
}

// paint renders text with style when color is enabled
func (p *Prompter) paint(style lipgloss.Style, text string) string {
	if !p.color {
		return text
	}

	return style.Render(text)
}
