// Package report renders dry-run plans and host diagnostics for the CLI.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/imamik/volplan/internal/plan"
	"github.com/imamik/volplan/internal/provisioning/dryrun"
	"github.com/imamik/volplan/internal/util/prerequisites"
)

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Renderer formats output, styled for terminals or plain otherwise.
type Renderer struct {
	styled bool
}

// New returns a renderer. Styling is applied only when styled is true.
func New(styled bool) *Renderer {
	return &Renderer{styled: styled}
}

func (r *Renderer) render(style lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return style.Render(s)
}

// PlanSection is the dry-run output of one plan.
type PlanSection struct {
	Name    string
	Missing bool
	Calls   []dryrun.Call
}

// Plan renders dry-run sections followed by a change summary.
func (r *Renderer) Plan(sections []PlanSection) string {
	var b strings.Builder
	changes := 0

	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.render(titleStyle, "Volume plan "+s.Name))
		b.WriteString("\n")
		if s.Missing {
			b.WriteString("  " + r.render(warningStyle, warnMark+" not registered, skipped"))
			b.WriteString("\n")
			continue
		}
		if len(s.Calls) == 0 {
			b.WriteString("  " + r.render(dimStyle, "nothing to do"))
			b.WriteString("\n")
			continue
		}
		for _, c := range s.Calls {
			line := c.String()
			switch {
			case strings.HasPrefix(c.Detail, "failed:"):
				line = r.render(failedStyle, line)
			case c.Changed:
				changes++
				line = r.render(changeStyle, line)
			default:
				line = r.render(dimStyle, line)
			}
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString(r.render(sectionStyle, fmt.Sprintf("%d change(s) on a fresh host", changes)))
	b.WriteString("\n")
	return b.String()
}

// Doctor renders prerequisite check results.
func (r *Renderer) Doctor(results *prerequisites.CheckResults) string {
	var b strings.Builder
	b.WriteString(r.render(titleStyle, "Host tools"))
	b.WriteString("\n")

	for _, res := range results.Results {
		var line string
		switch {
		case res.Found:
			line = r.render(changeStyle, checkMark) + " " + res.Tool.Name
			if res.Version != "" {
				line += " " + r.render(dimStyle, res.Version)
			}
		case res.Tool.Required:
			line = r.render(failedStyle, crossMark) + " " + res.Tool.Name +
				" " + r.render(dimStyle, "(install "+res.Tool.Package+")")
		default:
			line = r.render(warningStyle, warnMark) + " " + res.Tool.Name +
				" " + r.render(dimStyle, res.Tool.Description)
		}
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

// VolumePlan renders the layout a plan declares.
func (r *Renderer) VolumePlan(p *plan.VolumePlan) string {
	var b strings.Builder
	b.WriteString(r.render(titleStyle, "Volume plan "+p.ID))
	b.WriteString("\n")

	if p.HasEBS() {
		b.WriteString(r.render(sectionStyle, "EBS volumes"))
		b.WriteString("\n")
		for _, v := range p.EbsVolumes.Volumes {
			size := humanize.IBytes(uint64(v.SizeGiB) << 30)
			line := fmt.Sprintf("  %s %s at %s", v.Name, size, v.Device)
			if v.VolumeType != "" {
				line += " " + r.render(dimStyle, v.VolumeType)
			}
			b.WriteString(line + "\n")
		}
	}

	for _, g := range p.LvmVolumeGroups {
		b.WriteString(r.render(sectionStyle, "Volume group "+g.Name))
		b.WriteString("\n")
		if g.Skipped() {
			b.WriteString("  " + r.render(dimStyle, "no physical volumes, skipped") + "\n")
			continue
		}
		b.WriteString("  physical volumes: " + strings.Join(g.PhysicalVolumes, ", ") + "\n")
		for _, lv := range g.LogicalVolumes {
			line := fmt.Sprintf("  %s %s %s %s", lv.Name, lv.LogicalExtents, lv.Sizing, lv.Filesystem)
			if lv.Mount != "" {
				line += " on " + lv.Mount
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
