package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")
	colorBorder  = lipgloss.Color("#4B5563")
)

// Printer renders shell output. Styles are bound to the writer's renderer so
// a pipe or a test buffer gets plain text.
type Printer struct {
	w io.Writer

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	mutedStyle   lipgloss.Style
	primaryStyle lipgloss.Style
	headerStyle  lipgloss.Style
	cellStyle    lipgloss.Style
	borderStyle  lipgloss.Style
}

func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:            w,
		successStyle: r.NewStyle().Foreground(colorSuccess).Bold(true),
		errorStyle:   r.NewStyle().Foreground(colorError).Bold(true),
		infoStyle:    r.NewStyle().Foreground(colorInfo),
		mutedStyle:   r.NewStyle().Foreground(colorMuted),
		primaryStyle: r.NewStyle().Foreground(colorPrimary).Bold(true),
		headerStyle:  r.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1),
		cellStyle:    r.NewStyle().Padding(0, 1),
		borderStyle:  r.NewStyle().Foreground(colorBorder),
	}
}

func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.successStyle.Render("✓")+" "+fmt.Sprintf(format, args...))
}

func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.infoStyle.Render("ℹ")+" "+fmt.Sprintf(format, args...))
}

func (p *Printer) Muted(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Section prints a menu or report header.
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.primaryStyle.Render(title))
	fmt.Fprintln(p.w, p.mutedStyle.Render(strings.Repeat("═", lipgloss.Width(title))))
}

// Fail prints err as "[Kind] message". Store failures never show their cause.
func (p *Printer) Fail(err error) {
	if err == nil {
		return
	}
	line := fmt.Sprintf("[%s] %s", domainagg.Kind(err), domainagg.PublicMessage(err))
	fmt.Fprintln(p.w, p.errorStyle.Render("✗")+" "+line)
}

func (p *Printer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.headerStyle
			}
			return p.cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(p.w, t.String())
}

// Println writes a raw line, used by the line prompter.
func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.w, a...)
}

func (p *Printer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}
