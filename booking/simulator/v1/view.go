package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/meetupaws/coach_seat_booking/booking/internal/allocator"
)

const emptySeat = "-"

type view struct {
	header  lipgloss.Style
	success lipgloss.Style
	info    lipgloss.Style
	failure lipgloss.Style
	warn    lipgloss.Style
	taken   lipgloss.Style
	free    lipgloss.Style
}

func newView(renderer *lipgloss.Renderer) view {
	return view{
		header:  renderer.NewStyle().Bold(true),
		success: renderer.NewStyle().Foreground(lipgloss.Color("2")),
		info:    renderer.NewStyle().Foreground(lipgloss.Color("4")),
		failure: renderer.NewStyle().Foreground(lipgloss.Color("1")),
		warn:    renderer.NewStyle().Foreground(lipgloss.Color("3")),
		taken:   renderer.NewStyle().Bold(true),
		free:    renderer.NewStyle().Faint(true),
	}
}

func (v view) title(text string) string {
	return v.header.Render(text)
}

func (v view) warning(text string) string {
	return v.warn.Render(text)
}

func (v view) outcome(out allocator.Outcome) string {
	switch out.Kind {
	case allocator.Booked, allocator.Cancelled, allocator.RemovedFromWaitlist:
		return v.success.Render(out.Message())
	case allocator.Waitlisted:
		return v.info.Render(out.Message())
	}
	return v.failure.Render(out.Message())
}

// status renders one line per coach with every seat padded to the longest
// name, followed by the waitlist in order.
func (v view) status(st allocator.Status) string {
	width := lipgloss.Width(emptySeat)
	for _, row := range st.Seats {
		for _, name := range row {
			width = max(width, lipgloss.Width(name))
		}
	}
	labelWidth := lipgloss.Width(fmt.Sprintf("Coach %d", st.Rows))

	lines := []string{v.header.Render(fmt.Sprintf("Seats (%d free)", st.FreeSeats()))}
	for i, row := range st.Seats {
		cells := make([]string, len(row))
		for j, name := range row {
			if name == "" {
				cells[j] = v.free.Width(width).Render(emptySeat)
				continue
			}
			cells[j] = v.taken.Width(width).Render(name)
		}
		label := v.header.Width(labelWidth).Render(fmt.Sprintf("Coach %d", i+1))
		lines = append(lines, label+" | "+strings.Join(cells, " "))
	}

	lines = append(lines, v.header.Render(fmt.Sprintf("Waitlist (%d/%d)", len(st.Waitlist), st.MaxWaitlist)))
	if len(st.Waitlist) == 0 {
		lines = append(lines, v.free.Render("  empty"))
	}
	for i, name := range st.Waitlist {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, name))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
