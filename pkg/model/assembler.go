package model

import (
	"slices"
	"sort"

	"github.com/samber/lo"
)

// EmptyTimetable returns a timetable with seven empty days
func EmptyTimetable() Timetable {
	timetable := Timetable{}
	for day := range timetable.Days {
		timetable.Days[day] = []PlacedLesson{}
	}
	return timetable
}

// Place returns a new timetable holding every lesson of the offering inserted in start order.
// The given timetable is never modified: days the offering does not touch share their
// sequences with it, touched days get fresh ones. It returns false, and the unchanged
// timetable, if any lesson overlaps a lesson already present or falls on an unknown day.
func Place(timetable Timetable, offering CourseOffering) (Timetable, bool) {
	if lo.SomeBy(offering.Lessons, func(lesson Lesson) bool { return !lesson.Day.Valid() }) || conflicts(timetable, offering) {
		return timetable, false
	}

	placed := timetable
	copied := [DaysInWeek]bool{}
	for _, lesson := range offering.Lessons {
		day := lesson.Day
		if !copied[day] {
			placed.Days[day] = slices.Clone(timetable.Days[day])
			copied[day] = true
		}

		sequence := placed.Days[day]
		position := sort.Search(len(sequence), func(i int) bool {
			return sequence[i].Start > lesson.Start
		})
		placed.Days[day] = slices.Insert(sequence, position, placedLesson(lesson, offering))
	}

	return placed, true
}

func placedLesson(lesson Lesson, offering CourseOffering) PlacedLesson {
	return PlacedLesson{
		Lesson:     lesson,
		CourseCode: offering.Code,
		CourseId:   offering.Id,
		CourseName: offering.Name,
		Credits:    offering.Credits,
		Capacity:   offering.Capacity,
		Class:      offering.Class,
	}
}
