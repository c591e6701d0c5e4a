package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/limaJavier/coursetables/pkg/model"
	"github.com/samber/lo"
)

var (
	ErrUnknownCourse   = errors.New("unknown course")
	ErrDuplicateCourse = errors.New("course selected more than once")
)

// Catalog is the course data of one university faculty
type Catalog struct {
	University string                 `json:"university" mapstructure:"university" yaml:"university"`
	Faculty    string                 `json:"faculty" mapstructure:"faculty" yaml:"faculty"`
	Offerings  []model.CourseOffering `json:"offerings" mapstructure:"offerings" yaml:"offerings"`
}

// Names returns the distinct course names in catalog order
func (catalog Catalog) Names() []string {
	return lo.Uniq(lo.Map(catalog.Offerings, func(offering model.CourseOffering, _ int) string { return offering.Name }))
}

// Groups builds one course group per selected name, in selection order. Offerings keep their catalog order.
func (catalog Catalog) Groups(names []string) ([]model.CourseGroup, error) {
	offeringsByName := lo.GroupBy(catalog.Offerings, func(offering model.CourseOffering) string { return offering.Name })

	groups := make([]model.CourseGroup, 0, len(names))
	selected := make(map[string]bool)
	for _, name := range names {
		if selected[name] {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateCourse, name)
		}
		selected[name] = true

		offerings, ok := offeringsByName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownCourse, name)
		}
		groups = append(groups, model.CourseGroup(offerings))
	}
	return groups, nil
}

// Normalize drops repeated offerings (same id, name and class) and merges the lessons of an offering
// that share day, start, duration and room into one lesson listing every lecturer
func Normalize(catalog Catalog) Catalog {
	seen := make(map[[3]string]bool)
	offerings := make([]model.CourseOffering, 0, len(catalog.Offerings))

	for _, offering := range catalog.Offerings {
		key := [3]string{offering.Id, offering.Name, offering.Class}
		if seen[key] {
			continue
		}
		seen[key] = true

		offering.Lessons = mergeLessons(offering.Lessons)
		offerings = append(offerings, offering)
	}

	catalog.Offerings = offerings
	return catalog
}

func mergeLessons(lessons []model.Lesson) []model.Lesson {
	merged := make([]model.Lesson, 0, len(lessons))
	for _, lesson := range lessons {
		index := slices.IndexFunc(merged, func(other model.Lesson) bool {
			return other.Day == lesson.Day &&
				other.Start == lesson.Start &&
				other.Duration == lesson.Duration &&
				other.Room == lesson.Room
		})
		if index < 0 {
			lesson.Lecturers = slices.Clone(lesson.Lecturers)
			merged = append(merged, lesson)
			continue
		}
		merged[index].Lecturers = lo.Uniq(append(merged[index].Lecturers, lesson.Lecturers...))
	}
	return merged
}
