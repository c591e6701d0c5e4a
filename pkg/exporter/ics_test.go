package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/limaJavier/coursetables/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTimetable(t *testing.T) model.Timetable {
	offerings := []model.CourseOffering{
		{Id: "CS101", Name: "Algorithms", Credits: 4, Class: "A1", Lessons: []model.Lesson{
			{Day: model.Tuesday, Start: 2, Duration: 2, Room: "E201", Lecturers: []string{"Dr. Lee"}},
		}},
		{Id: "CS102", Name: "Databases", Credits: 3, Class: "D1", Lessons: []model.Lesson{
			{Day: model.Friday, Start: 5, Duration: 1, Room: "F102", Lecturers: []string{"Dr. Kim", "Dr. Tran"}},
		}},
	}

	timetable := model.EmptyTimetable()
	for _, offering := range offerings {
		var ok bool
		timetable, ok = model.Place(timetable, offering)
		require.True(t, ok)
	}
	return timetable
}

func TestGenerateICS(t *testing.T) {
	//** Arrange
	calendar := Calendar{
		Location:      time.UTC,
		FirstWeek:     time.Date(2026, 9, 9, 12, 0, 0, 0, time.UTC), // Wednesday
		PeriodStarts:  []string{"07:30", "08:20", "09:10"},
		PeriodMinutes: 50,
		Weeks:         15,
	}
	var buf bytes.Buffer

	//** Act
	err := GenerateICS(sampleTimetable(t), calendar, &buf)

	//** Assert
	require.NoError(t, err)
	output := buf.String()
	assert.Equal(t, 2, strings.Count(output, "BEGIN:VEVENT"))
	assert.Contains(t, output, "SUMMARY:Algorithms")
	assert.Contains(t, output, "LOCATION:E201")
	// Tuesday of the week, periods 2..3
	assert.Contains(t, output, "DTSTART:20260908T082000Z")
	assert.Contains(t, output, "DTEND:20260908T100000Z")
	// Period 5 lies past the configured starts: 09:10 + 2*50min
	assert.Contains(t, output, "DTSTART:20260911T105000Z")
	assert.Contains(t, output, "RRULE:FREQ=WEEKLY")
}

func TestGenerateICSStableUids(t *testing.T) {
	calendar := Calendar{FirstWeek: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), PeriodMinutes: 45, Weeks: 1}
	uids := func() []string {
		var buf bytes.Buffer
		require.NoError(t, GenerateICS(sampleTimetable(t), calendar, &buf))
		lines := make([]string, 0)
		for _, line := range strings.Split(buf.String(), "\n") {
			if strings.HasPrefix(line, "UID:") {
				lines = append(lines, strings.TrimSpace(line))
			}
		}
		return lines
	}

	first := uids()
	assert.Len(t, first, 2)
	assert.Equal(t, first, uids())
}

func TestGenerateICSErrors(t *testing.T) {
	var buf bytes.Buffer

	err := GenerateICS(sampleTimetable(t), Calendar{PeriodMinutes: 0}, &buf)
	assert.Error(t, err)

	err = GenerateICS(sampleTimetable(t), Calendar{PeriodMinutes: 50, PeriodStarts: []string{"7h30"}}, &buf)
	assert.ErrorContains(t, err, "invalid period start")
}

func TestPeriodStartWithoutConfiguredStarts(t *testing.T) {
	calendar := Calendar{PeriodMinutes: 60}

	start, err := calendar.periodStart(3)

	require.NoError(t, err)
	assert.Equal(t, 9*time.Hour, start)
}

func TestGenerateICSRejectsMalformedLessons(t *testing.T) {
	calendar := Calendar{PeriodMinutes: 50, PeriodStarts: []string{"07:00"}}
	scenarios := map[string]model.Lesson{
		"zero start":    {Day: model.Monday, Start: 0, Duration: 1},
		"zero duration": {Day: model.Monday, Start: 2, Duration: 0},
	}

	for name, lesson := range scenarios {
		t.Run(name, func(t *testing.T) {
			//** Arrange
			timetable := model.EmptyTimetable()
			timetable.Days[model.Monday] = []model.PlacedLesson{{Lesson: lesson, CourseName: "Algorithms"}}
			var buf bytes.Buffer

			//** Act
			err := GenerateICS(timetable, calendar, &buf)

			//** Assert
			assert.ErrorIs(t, err, ErrInvalidLesson)
		})
	}

	_, err := calendar.periodStart(0)
	assert.ErrorIs(t, err, ErrInvalidLesson)
}
