package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/atlas/pkg/ui/styles"
)

// Printer writes status messages to the terminal using the styles
// registry. A Printer created for a non-terminal output degrades to
// plain text automatically.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	format Format
}

// NewPrinter creates a Printer for stdout/stderr, detecting the format.
func NewPrinter() *Printer {
	return &Printer{
		out:    os.Stdout,
		errOut: os.Stderr,
		format: DetectFormat(os.Stdout),
	}
}

// NewPrinterTo creates a Printer for arbitrary writers with an explicit
// format, for tests.
func NewPrinterTo(out, errOut io.Writer, format Format) *Printer {
	return &Printer{out: out, errOut: errOut, format: format}
}

func (p *Printer) render(styleName, label string) string {
	if p.format == FormatText {
		return label
	}
	return styles.GetStyle(styleName).Render(label)
}

// Status prints an informational message
func (p *Printer) Status(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.render("Info", "[INFO]"), fmt.Sprintf(format, args...))
}

// Success prints a success message
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.render("Success", "[SUCCESS]"), fmt.Sprintf(format, args...))
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.render("Warning", "[WARNING]"), fmt.Sprintf(format, args...))
}

// Error prints an error message to stderr
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintf(p.errOut, "%s %s\n", p.render("Error", "[ERROR]"), fmt.Sprintf(format, args...))
}

// ConsoleConfirmer asks yes/no questions on the terminal. The default
// answer is no, matching every destructive prompt in atlas.
type ConsoleConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// NewConsoleConfirmer creates a confirmer bound to stdin/stdout.
func NewConsoleConfirmer() *ConsoleConfirmer {
	return &ConsoleConfirmer{In: os.Stdin, Out: os.Stdout}
}

// Confirm prompts the user and returns their answer. Empty input and
// anything but y/yes count as no.
func (c *ConsoleConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(c.Out, "%s [y/N] ", prompt)

	reader := bufio.NewReader(c.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
