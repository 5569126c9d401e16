// Package ui - Terminal output
// Status lines, tables and a spinner for the CLI.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Out returns the underlying writer
func (w *Writer) Out() io.Writer {
	return w.out
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s", w.color(Green, "✓ ")+msg)
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s", w.color(Yellow, "⚠ ")+msg)
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s", w.color(Red, "✗ ")+msg)
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Println("%s", w.color(Blue, "ℹ ")+msg)
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Println("%s", w.color(Dim, "  "+msg))
}

// Table renders left-aligned columns separated by a single space.
// Widths are minimums; longer cells push the following columns right
// rather than being truncated. The last column is never padded.
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
	grow    bool
}

// NewTable creates a table whose column widths grow to fit the content
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
		grow:    true,
	}
}

// NewFixedTable creates a table with fixed minimum column widths
func (w *Writer) NewFixedTable(widths []int, headers ...string) *Table {
	fixed := make([]int, len(headers))
	copy(fixed, widths)
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  fixed,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if t.grow && len(row[i]) > t.widths[i] {
			t.widths[i] = len(row[i])
		}
	}
	t.rows = append(t.rows, row)
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.w.color(Bold, t.line(t.headers)))
	for _, row := range t.rows {
		t.w.Println("%s", t.line(row))
	}
}

func (t *Table) line(cells []string) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i == len(cells)-1 {
			b.WriteString(cell)
			break
		}
		b.WriteString(fmt.Sprintf("%-*s", t.widths[i], cell))
	}
	return b.String()
}

// Spinner shows a loading spinner
type Spinner struct {
	w       *Writer
	label   string
	frames  []string
	current int
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewSpinner creates a spinner
func (w *Writer) NewSpinner(label string) *Spinner {
	return &Spinner{
		w:      w,
		label:  label,
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start starts the spinner
func (s *Spinner) Start() {
	go func() {
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				close(s.done)
				return
			case <-ticker.C:
				s.current = (s.current + 1) % len(s.frames)
				fmt.Fprintf(s.w.out, "\r%s %s", s.w.color(Cyan, s.frames[s.current]), s.label)
			}
		}
	}()
}

// Stop stops the spinner. It must follow Start and is safe to call twice.
func (s *Spinner) Stop(success bool) {
	s.once.Do(func() {
		close(s.stop)
		<-s.done

		icon := s.w.color(Green, "✓")
		if !success {
			icon = s.w.color(Red, "✗")
		}
		fmt.Fprintf(s.w.out, "\r%s %s\n", icon, s.label)
	})
}

// FormatDuration renders d for status lines
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "< 1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}
