package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// Lesson is one weekly meeting of an offering. Periods are 1-based and the lesson
// occupies [Start, Start+Duration-1].
type Lesson struct {
	Day       Day      `json:"day" mapstructure:"day"`
	Start     int      `json:"start" mapstructure:"start"`
	Duration  int      `json:"duration" mapstructure:"duration"`
	Room      string   `json:"room" mapstructure:"room"`
	Lecturers []string `json:"lecturers" mapstructure:"lecturers"`
}

// End returns the last occupied period
func (lesson Lesson) End() int {
	return lesson.Start + lesson.Duration - 1
}

type CourseOffering struct {
	Code     string   `json:"code,omitempty" mapstructure:"code"`
	Id       string   `json:"id" mapstructure:"id"`
	Name     string   `json:"name" mapstructure:"name"`
	Credits  int      `json:"credits" mapstructure:"credits"`
	Capacity int      `json:"capacity" mapstructure:"capacity"`
	Class    string   `json:"class" mapstructure:"class"`
	Lessons  []Lesson `json:"lessons" mapstructure:"lessons"`
}

// CourseGroup holds the alternative offerings of a single course, exactly one of which ends up in a timetable
type CourseGroup []CourseOffering

// PlacedLesson is a lesson merged with the identifying fields of its offering
type PlacedLesson struct {
	Lesson
	CourseCode string `json:"courseCode,omitempty"`
	CourseId   string `json:"courseId"`
	CourseName string `json:"courseName"`
	Credits    int    `json:"credits"`
	Capacity   int    `json:"capacity"`
	Class      string `json:"class"`
}

// Timetable holds one sequence per day of the week, each sorted by start period
type Timetable struct {
	Days [DaysInWeek][]PlacedLesson `json:"days"`
}

func (timetable Timetable) Day(day Day) []PlacedLesson {
	return timetable.Days[day]
}

// DaysOff counts the days without any lesson
func (timetable Timetable) DaysOff() int {
	return lo.CountBy(timetable.Days[:], func(lessons []PlacedLesson) bool { return len(lessons) == 0 })
}

// Courses returns the distinct course identities present in the timetable, in order of first appearance through the week
func (timetable Timetable) Courses() []string {
	courses := make([]string, 0)
	for _, lessons := range timetable.Days {
		for _, lesson := range lessons {
			courses = append(courses, courseKey(lesson.CourseId, lesson.CourseName))
		}
	}
	return lo.Uniq(courses)
}

// Credits sums the credits of the distinct courses in the timetable
func (timetable Timetable) Credits() int {
	credits := make(map[string]int)
	for _, lessons := range timetable.Days {
		for _, lesson := range lessons {
			credits[courseKey(lesson.CourseId, lesson.CourseName)] = lesson.Credits
		}
	}
	return lo.Sum(lo.Values(credits))
}

func courseKey(id, name string) string {
	return fmt.Sprintf("%v~%v", id, name)
}

// Input is the content of a generation request file
type Input struct {
	Groups []CourseGroup `mapstructure:"groups"`
	Filter Filter        `mapstructure:"filter"`
}

func InputFromJson(file string) (Input, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Input{}, fmt.Errorf("cannot read input file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Input{}, err
	}

	return InputFromMap(inputJson)
}

// InputFromMap decodes a generic document (as produced by a JSON or YAML decoder) into an Input
func InputFromMap(document map[string]any) (Input, error) {
	var input Input
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       DayDecodeHook,
		WeaklyTypedInput: true,
		Result:           &input,
	})
	if err != nil {
		return Input{}, err
	}
	if err := decoder.Decode(document); err != nil {
		return Input{}, fmt.Errorf("cannot decode input: %w", err)
	}
	return input, nil
}
