package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/tubesync/internal/models"
	"github.com/desertthunder/tubesync/internal/tasks"
)

var styles = NewPalette("#FF0033", "#04B575", "#FF4D4D", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	pane  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
		pane:  lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true).BorderForeground(lipgloss.Color(h)),
	}
}

// Severity returns the style used for events of sev.
func (p *Palette) Severity(sev tasks.Severity) lipgloss.Style {
	switch sev {
	case tasks.SeveritySuccess:
		return p.ok
	case tasks.SeverityWarning:
		return p.warn
	case tasks.SeverityError:
		return p.err
	default:
		return lipgloss.NewStyle()
	}
}

// Status returns the style used for jobs in status.
func (p *Palette) Status(status models.JobStatus) lipgloss.Style {
	switch status {
	case models.JobDone:
		return p.ok
	case models.JobError:
		return p.err
	case models.JobCreating:
		return p.warn
	default:
		return p.help
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
