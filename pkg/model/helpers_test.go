package model

import (
	"fmt"
	"math/rand"
)

func lesson(day Day, start, duration int, lecturers ...string) Lesson {
	if len(lecturers) == 0 {
		lecturers = []string{"Staff"}
	}
	return Lesson{
		Day:       day,
		Start:     start,
		Duration:  duration,
		Room:      fmt.Sprintf("R%d%d", day, start),
		Lecturers: lecturers,
	}
}

func offering(name, class string, lessons ...Lesson) CourseOffering {
	return CourseOffering{
		Id:       "ID-" + name,
		Name:     name,
		Credits:  3,
		Capacity: 40,
		Class:    class,
		Lessons:  lessons,
	}
}

// chosenClasses returns the class chosen for each course name in the timetable
func chosenClasses(timetable Timetable) map[string]string {
	classes := make(map[string]string)
	for _, lessons := range timetable.Days {
		for _, lesson := range lessons {
			classes[lesson.CourseName] = lesson.Class
		}
	}
	return classes
}

func randomGroups(random *rand.Rand, groups, offerings int) []CourseGroup {
	lecturers := []string{"Dr. Lee", "Dr. Kim", "Dr. Tran", "Dr. Nguyen (Lab)"}
	result := make([]CourseGroup, groups)
	for i := 0; i < groups; i++ {
		name := fmt.Sprintf("Course%d", i)
		result[i] = make(CourseGroup, offerings)
		for j := 0; j < offerings; j++ {
			lessons := make([]Lesson, 0, 2)
			lessonCount := random.Intn(2) + 1
			for k := 0; k < lessonCount; k++ {
				// Lessons of one offering never share a day, so they never overlap
				day := Day((j + k*3 + random.Intn(2)) % 5)
				if k > 0 && day == lessons[0].Day {
					continue
				}
				lessons = append(lessons, lesson(day, random.Intn(10)+1, random.Intn(3)+1, lecturers[random.Intn(len(lecturers))]))
			}
			result[i][j] = offering(name, fmt.Sprintf("%v-%d", name, j), lessons...)
		}
	}
	return result
}

// bruteForce enumerates the whole cartesian product in lexicographic order and keeps the valid timetables
func bruteForce(groups []CourseGroup, filter Filter) []Timetable {
	results := make([]Timetable, 0)
	for _, group := range groups {
		if len(group) == 0 {
			return results
		}
	}

	indices := make([]int, len(groups))
	for {
		timetable, valid := EmptyTimetable(), true
		for i, index := range indices {
			offering := groups[i][index]
			var ok bool
			if timetable, ok = Place(timetable, offering); !ok || !filter.Admits(offering) {
				valid = false
				break
			}
		}
		if valid && filter.Accepts(timetable) {
			results = append(results, timetable)
		}

		// Advance the odometer, last group first
		position := len(indices) - 1
		for ; position >= 0; position-- {
			indices[position]++
			if indices[position] < len(groups[position]) {
				break
			}
			indices[position] = 0
		}
		if position < 0 {
			return results
		}
	}
}
