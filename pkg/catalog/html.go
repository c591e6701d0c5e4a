package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/limaJavier/coursetables/pkg/model"
	"github.com/samber/lo"
)

// ParseHtml extracts the offerings of a saved course-registration page. Each offering is a
// tr.offering row with id, name, credits, capacity and class cells; its lessons are
// div.lesson elements carrying data-day, data-start and data-duration attributes plus a
// span.room and one span.lecturer per lecturer. University and faculty come from the
// page's meta tags.
func ParseHtml(r io.Reader) (Catalog, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Catalog{}, fmt.Errorf("cannot parse catalog html: %w", err)
	}

	catalog := Catalog{
		University: meta(doc, "university"),
		Faculty:    meta(doc, "faculty"),
		Offerings:  make([]model.CourseOffering, 0),
	}

	var parseErr error
	doc.Find("tr.offering").EachWithBreak(func(i int, row *goquery.Selection) bool {
		offering, err := parseOffering(row)
		if err != nil {
			parseErr = fmt.Errorf("row %d: %w", i, err)
			return false
		}
		// Rows without identity are headers or separators
		if offering.Id != "" || offering.Name != "" {
			catalog.Offerings = append(catalog.Offerings, offering)
		}
		return true
	})
	if parseErr != nil {
		return Catalog{}, parseErr
	}

	return catalog, nil
}

func parseOffering(row *goquery.Selection) (model.CourseOffering, error) {
	cell := func(class string) string {
		return strings.TrimSpace(row.Find("td." + class).First().Text())
	}

	code, _ := row.Attr("data-code")
	offering := model.CourseOffering{
		Code:    strings.TrimSpace(code),
		Id:      cell("id"),
		Name:    cell("name"),
		Class:   cell("class"),
		Lessons: make([]model.Lesson, 0),
	}

	var err error
	if offering.Credits, err = number(cell("credits")); err != nil {
		return model.CourseOffering{}, fmt.Errorf("credits: %w", err)
	}
	if offering.Capacity, err = number(cell("capacity")); err != nil {
		return model.CourseOffering{}, fmt.Errorf("capacity: %w", err)
	}

	var lessonErr error
	row.Find("div.lesson").EachWithBreak(func(_ int, element *goquery.Selection) bool {
		var lesson model.Lesson
		if lesson, lessonErr = parseLesson(element); lessonErr != nil {
			return false
		}
		offering.Lessons = append(offering.Lessons, lesson)
		return true
	})
	if lessonErr != nil {
		return model.CourseOffering{}, fmt.Errorf("offering \"%v\": %w", offering.Name, lessonErr)
	}

	return offering, nil
}

func parseLesson(element *goquery.Selection) (model.Lesson, error) {
	day, _ := element.Attr("data-day")
	start, _ := element.Attr("data-start")
	duration, _ := element.Attr("data-duration")

	lesson := model.Lesson{
		Day:  model.ParseDay(day),
		Room: strings.TrimSpace(element.Find("span.room").First().Text()),
		Lecturers: lo.Compact(element.Find("span.lecturer").Map(func(_ int, lecturer *goquery.Selection) string {
			return strings.TrimSpace(lecturer.Text())
		})),
	}

	var err error
	if lesson.Start, err = strconv.Atoi(strings.TrimSpace(start)); err != nil {
		return model.Lesson{}, fmt.Errorf("invalid start period \"%v\"", start)
	}
	if lesson.Duration, err = strconv.Atoi(strings.TrimSpace(duration)); err != nil {
		return model.Lesson{}, fmt.Errorf("invalid duration \"%v\"", duration)
	}
	return lesson, nil
}

func meta(doc *goquery.Document, name string) string {
	content, _ := doc.Find(fmt.Sprintf("meta[name=%q]", name)).Attr("content")
	return strings.TrimSpace(content)
}

// number parses an integer cell, treating an empty cell as zero
func number(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
