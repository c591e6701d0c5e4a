package exporter

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/limaJavier/coursetables/pkg/model"
)

// ErrInvalidLesson is wrapped when a lesson cannot be mapped onto the calendar
var ErrInvalidLesson = errors.New("invalid lesson")

// Calendar maps timetable periods onto wall-clock time
type Calendar struct {
	Location      *time.Location
	FirstWeek     time.Time // Any day of the first teaching week
	PeriodStarts  []string  // "15:04" start of each period, period 1 first
	PeriodMinutes int
	Weeks         int
}

const defaultFirstPeriod = 7 * time.Hour

// periodStart returns the offset from midnight at which the period begins. Periods past the
// configured list continue at PeriodMinutes intervals after the last one.
func (calendar Calendar) periodStart(period int) (time.Duration, error) {
	if period < 1 {
		return 0, fmt.Errorf("%w: period %d", ErrInvalidLesson, period)
	}
	length := time.Duration(calendar.PeriodMinutes) * time.Minute
	if len(calendar.PeriodStarts) == 0 {
		return defaultFirstPeriod + time.Duration(period-1)*length, nil
	}

	index := min(period, len(calendar.PeriodStarts)) - 1
	clock, err := time.Parse("15:04", calendar.PeriodStarts[index])
	if err != nil {
		return 0, fmt.Errorf("invalid period start \"%v\": %w", calendar.PeriodStarts[index], err)
	}
	offset := time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute
	return offset + time.Duration(period-1-index)*length, nil
}

// monday returns midnight of the Monday of the first week
func (calendar Calendar) monday() time.Time {
	first := calendar.FirstWeek.In(calendar.Location)
	first = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, calendar.Location)
	return first.AddDate(0, 0, -((int(first.Weekday()) + 6) % 7))
}

// GenerateICS writes the timetable as an iCalendar where every lesson is an event repeating
// weekly for the configured number of weeks
func GenerateICS(timetable model.Timetable, calendar Calendar, w io.Writer) error {
	if calendar.Location == nil {
		calendar.Location = time.UTC
	}
	if calendar.PeriodMinutes <= 0 {
		return fmt.Errorf("period length must be positive: %d", calendar.PeriodMinutes)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//coursetables//timetable export//EN")

	monday := calendar.monday()
	for day, lessons := range timetable.Days {
		date := monday.AddDate(0, 0, day)
		for _, lesson := range lessons {
			if lesson.Start < 1 || lesson.Duration < 1 {
				return fmt.Errorf("%w: \"%v\" on %v starts at period %d and lasts %d", ErrInvalidLesson, lesson.CourseName, model.Day(day), lesson.Start, lesson.Duration)
			}
			begin, err := calendar.periodStart(lesson.Start)
			if err != nil {
				return err
			}
			end, err := calendar.periodStart(lesson.End())
			if err != nil {
				return err
			}
			end += time.Duration(calendar.PeriodMinutes) * time.Minute

			key := fmt.Sprintf("%v~%v~%v~%v~%v", lesson.CourseId, lesson.Class, model.Day(day), lesson.Start, lesson.Room)
			event := cal.AddEvent(uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String())
			event.SetDtStampTime(time.Now())
			event.SetStartAt(date.Add(begin))
			event.SetEndAt(date.Add(end))
			event.SetSummary(lesson.CourseName)
			event.SetLocation(lesson.Room)
			event.SetDescription(fmt.Sprintf("Class: %s\nLecturers: %s", lesson.Class, strings.Join(lesson.Lecturers, ", ")))
			if calendar.Weeks > 1 {
				event.SetProperty(ics.ComponentPropertyRrule, fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", calendar.Weeks))
			}
		}
	}

	return cal.SerializeTo(w)
}
