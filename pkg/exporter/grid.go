package exporter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/limaJavier/coursetables/pkg/model"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	periodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	courseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	freeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	columnStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
)

// RenderGrid draws the timetable as one bordered column per day followed by a summary line
func RenderGrid(timetable model.Timetable) string {
	columns := make([]string, 0, model.DaysInWeek)
	for day, lessons := range timetable.Days {
		cells := []string{headerStyle.Render(model.Day(day).String())}
		if len(lessons) == 0 {
			cells = append(cells, freeStyle.Render("free"))
		}
		for _, lesson := range lessons {
			cells = append(cells,
				periodStyle.Render(fmt.Sprintf("P%d-%d", lesson.Start, lesson.End())),
				courseStyle.Render(lesson.CourseName),
				detailStyle.Render(fmt.Sprintf("%s · %s", lesson.Class, lesson.Room)),
				detailStyle.Render(strings.Join(lesson.Lecturers, ", ")),
			)
		}
		columns = append(columns, columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, cells...)))
	}

	summary := detailStyle.Render(fmt.Sprintf("Courses: %d  Credits: %d  Days off: %d",
		len(timetable.Courses()), timetable.Credits(), timetable.DaysOff()))
	return lipgloss.JoinVertical(lipgloss.Left, lipgloss.JoinHorizontal(lipgloss.Top, columns...), summary)
}
