package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/olimci/hinagata/pkg/events"
	"github.com/olimci/hinagata/pkg/scaffold"
)

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}

// logHandler prints session events through a charmbracelet logger.
type logHandler struct {
	logger *log.Logger
}

func (h logHandler) Handle(e events.Event) {
	kv := make([]any, 0, 4)
	if e.Source != "" {
		kv = append(kv, "source", e.Source)
	}
	if e.Error != nil {
		kv = append(kv, "err", e.Error)
	}

	switch e.Level {
	case events.Debug:
		h.logger.Debug(e.Message, kv...)
	case events.Info:
		h.logger.Info(e.Message, kv...)
	case events.Warn:
		h.logger.Warn(e.Message, kv...)
	default:
		h.logger.Error(e.Message, kv...)
	}
}

type resultPrinter struct {
	out  io.Writer
	rich bool

	header  lipgloss.Style
	written lipgloss.Style
	staged  lipgloss.Style
	muted   lipgloss.Style
}

func newResultPrinter(out io.Writer) *resultPrinter {
	p := &resultPrinter{out: out}

	if f, ok := out.(*os.File); ok {
		p.rich = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if !p.rich {
		return p
	}

	p.header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4"))
	p.written = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	p.staged = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa"))
	p.muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	return p
}

func (p *resultPrinter) render(s lipgloss.Style, text string) string {
	if !p.rich {
		return text
	}
	return s.Render(text)
}

func (p *resultPrinter) Print(res *scaffold.Result, target string) {
	if res.DryRun {
		fmt.Fprintln(p.out, p.render(p.header, fmt.Sprintf("Dry run: %d files would be written to %s", len(res.Staged), target)))
		for _, c := range res.Staged {
			fmt.Fprintf(p.out, "  %s %s %s\n", p.render(p.staged, "~"), c.Path, p.render(p.muted, fmt.Sprintf("(%d bytes)", len(c.Content))))
		}
		return
	}

	if res.Commit == nil {
		return
	}

	fmt.Fprintln(p.out, p.render(p.header, fmt.Sprintf("Created %d files in %s", len(res.Commit.Written), target)))
	for _, path := range res.Commit.Written {
		fmt.Fprintf(p.out, "  %s %s\n", p.render(p.written, "✓"), path)
	}
	if len(res.Commit.Deleted) > 0 {
		fmt.Fprintf(p.out, "  %s\n", p.render(p.muted, "removed: "+strings.Join(res.Commit.Deleted, ", ")))
	}
}

func (p *resultPrinter) Summary(summary *events.Summary) {
	if summary == nil || (len(summary.Errors) == 0 && len(summary.Warnings) == 0) {
		return
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, summary.String())
}
