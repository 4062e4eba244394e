package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"husbandry-tracker/internal/clientcache"
	"husbandry-tracker/internal/domain/lifecycle"
)

// Color del badge por urgencia.
var urgencyColors = map[lifecycle.Urgency]string{
	lifecycle.UrgencyOverdue: "#E5484D",
	lifecycle.UrgencyDueSoon: "#F5A524",
	lifecycle.UrgencyOnTrack: "#30A46C",
	lifecycle.UrgencyClosed:  "#8B8D98",
}

type styles struct {
	header lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
	badges map[lifecycle.Urgency]lipgloss.Style
}

// newStyles usa un renderer atado a w: sin TTY no se emiten colores.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	s := styles{
		header: r.NewStyle().Bold(true).Underline(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#8B8D98")),
		warn:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A524")),
		badges: make(map[lifecycle.Urgency]lipgloss.Style, len(urgencyColors)),
	}
	for u, color := range urgencyColors {
		s.badges[u] = r.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	}
	return s
}

func badgeText(urgency string, days int) string {
	switch lifecycle.Urgency(urgency) {
	case lifecycle.UrgencyOverdue:
		return fmt.Sprintf("OVERDUE %dd", -days)
	case lifecycle.UrgencyDueSoon:
		if days == 0 {
			return "DUE TODAY"
		}
		return fmt.Sprintf("DUE IN %dd", days)
	case lifecycle.UrgencyOnTrack:
		return fmt.Sprintf("%dd left", days)
	case lifecycle.UrgencyClosed:
		return "closed"
	}
	return "-"
}

func (s styles) badge(urgency string, days int) string {
	text := badgeText(urgency, days)
	if st, ok := s.badges[lifecycle.Urgency(urgency)]; ok {
		return st.Render(text)
	}
	return text
}

func renderState(w io.Writer, s styles, c *clientcache.Cache) {
	state := c.State()
	if state == clientcache.StateSynced {
		return
	}
	fmt.Fprintln(w, s.warn.Render(fmt.Sprintf("[%s] showing local copy, %d pending change(s)", state, len(c.Pending()))))
}

func renderAnimals(w io.Writer, s styles, list []clientcache.Animal) {
	if len(list) == 0 {
		fmt.Fprintln(w, s.muted.Render("no animals"))
		return
	}
	fmt.Fprintln(w, s.header.Render(fmt.Sprintf("%-8s %-16s %-8s %-7s %-10s %s", "ID", "NAME", "SPECIES", "SEX", "BORN", "STATUS")))
	for _, a := range list {
		sex := a.Sex
		if sex == "" {
			sex = "-"
		}
		fmt.Fprintf(w, "%-8s %-16s %-8s %-7s %-10s %s\n", a.ID, a.Name, a.Species, sex, a.DateOfBirth, a.Status)
	}
}

func renderBreedings(w io.Writer, s styles, list []clientcache.Breeding) {
	if len(list) == 0 {
		fmt.Fprintln(w, s.muted.Render("no breedings"))
		return
	}
	fmt.Fprintln(w, s.header.Render(fmt.Sprintf("%-14s %-22s %-22s %-10s %-10s %-10s %s", "ID", "MALE", "FEMALE", "BRED", "EXPECTED", "STATUS", "DUE")))
	for _, b := range list {
		male := fmt.Sprintf("%s (%s)", b.MaleDisplayName(), b.MaleDisplaySpecies())
		female := fmt.Sprintf("%s (%s)", b.FemaleDisplayName(), b.FemaleDisplaySpecies())
		status := b.Status
		if b.Status == string(lifecycle.BreedingSuccessful) {
			status = fmt.Sprintf("%s/%d", b.Status, b.Offspring)
		}
		fmt.Fprintf(w, "%-14s %-22s %-22s %-10s %-10s %-10s %s\n",
			b.ID, male, female, b.BreedingDate, b.ExpectedDate, status, s.badge(b.Urgency, b.DaysRemaining))
	}
}

func renderHatchings(w io.Writer, s styles, list []clientcache.Hatching) {
	if len(list) == 0 {
		fmt.Fprintln(w, s.muted.Render("no hatchings"))
		return
	}
	fmt.Fprintln(w, s.header.Render(fmt.Sprintf("%-14s %-16s %-9s %-10s %-10s %-10s %-7s %s", "ID", "NAME", "EGGS", "STARTED", "EXPECTED", "STATUS", "RATE", "DUE")))
	for _, h := range list {
		eggs := fmt.Sprintf("%d/%d", h.HatchedEggs, h.TotalEggs)
		rate := fmt.Sprintf("%.1f%%", h.HatchRate)
		fmt.Fprintf(w, "%-14s %-16s %-9s %-10s %-10s %-10s %-7s %s\n",
			h.ID, h.Name, eggs, h.StartDate, h.ExpectedHatchDate, h.Status, rate, s.badge(h.Urgency, h.DaysRemaining))
	}
}

func renderConflicts(w io.Writer, s styles, conflicts []clientcache.Conflict) {
	if len(conflicts) == 0 {
		return
	}
	fmt.Fprintln(w, s.warn.Render(fmt.Sprintf("%d conflict(s) dropped:", len(conflicts))))
	for _, cf := range conflicts {
		line := fmt.Sprintf("  %s: %s", cf.Op, cf.Reason)
		if cf.Detail != "" {
			line += " (" + strings.TrimSpace(cf.Detail) + ")"
		}
		fmt.Fprintln(w, line)
	}
}
