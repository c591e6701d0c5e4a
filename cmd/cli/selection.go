package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/limaJavier/coursetables/pkg/catalog"
	"github.com/limaJavier/coursetables/pkg/model"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// selection gathers the flags shared by the commands that generate timetables
type selection struct {
	input      string
	catalog    string
	university string
	faculty    string
	courses    []string
	daysOff    int
	off        []string
	expect     []string
	avoid      []string
	strategy   string
	maxResults int
}

func (s *selection) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&s.input, "input", "i", "", "request file holding groups and filter (JSON)")
	flags.StringVar(&s.catalog, "catalog", "", "catalog file (.json, .yaml or .html)")
	flags.StringVar(&s.university, "university", "", "load the catalog of this university from the database")
	flags.StringVar(&s.faculty, "faculty", "", "faculty of the database catalog")
	flags.StringSliceVar(&s.courses, "course", nil, "course name to include; repeatable, order is kept")
	flags.IntVar(&s.daysOff, "days-off", 0, "minimum number of days without lessons")
	flags.StringSliceVar(&s.off, "off", nil, "day that must be free (e.g. Saturday); repeatable")
	flags.StringArrayVar(&s.expect, "expect", nil, `"Course=Lecturer": only accept offerings of Course taught by Lecturer; repeatable`)
	flags.StringArrayVar(&s.avoid, "avoid", nil, `"Course=Lecturer": reject offerings of Course taught by Lecturer; repeatable`)
	flags.StringVar(&s.strategy, "strategy", "", "search strategy: recursive or worklist (defaults to config)")
	flags.IntVar(&s.maxResults, "max", -1, "stop after this many timetables, 0 for no limit (defaults to config)")
}

func (s *selection) timetabler() (model.Timetabler, error) {
	strategy := lo.Ternary(s.strategy == "", cfg.Generator.Strategy, strings.ToLower(s.strategy))
	constructor, ok := model.Timetablers[strategy]
	if !ok {
		return nil, fmt.Errorf("%v is not a valid strategy, expected one of %v", strategy, lo.Keys(model.Timetablers))
	}
	maxResults := lo.Ternary(s.maxResults < 0, cfg.Generator.MaxResults, s.maxResults)
	return constructor(model.Options{MaxResults: maxResults}), nil
}

// load resolves the course groups and the filter. The filter flags are merged into the filter of a request file.
func (s *selection) load(ctx context.Context) ([]model.CourseGroup, model.Filter, error) {
	var (
		groups []model.CourseGroup
		filter model.Filter
	)

	switch {
	case s.input != "":
		input, err := model.InputFromJson(s.input)
		if err != nil {
			return nil, model.Filter{}, fmt.Errorf("cannot parse input file: %w", err)
		}
		groups, filter = input.Groups, input.Filter

	case s.catalog != "" || s.university != "":
		if len(s.courses) == 0 {
			return nil, model.Filter{}, fmt.Errorf("select at least one course with --course")
		}
		courses, err := s.loadCatalog(ctx)
		if err != nil {
			return nil, model.Filter{}, err
		}
		if groups, err = courses.Groups(s.courses); err != nil {
			return nil, model.Filter{}, err
		}

	default:
		return nil, model.Filter{}, fmt.Errorf("an input file, a catalog file or a database catalog must be specified")
	}

	filter, err := mergeFilter(filter, s.daysOff, s.off, s.expect, s.avoid)
	if err != nil {
		return nil, model.Filter{}, err
	}
	return groups, filter, nil
}

func (s *selection) loadCatalog(ctx context.Context) (catalog.Catalog, error) {
	if s.catalog != "" {
		return catalog.LoadFile(s.catalog)
	}

	if cfg.Database.Url == "" {
		return catalog.Catalog{}, fmt.Errorf("database url is not configured")
	}
	store, err := catalog.NewPgStore(ctx, cfg.Database.Url)
	if err != nil {
		return catalog.Catalog{}, err
	}
	defer store.Close()
	return store.Load(ctx, s.university, s.faculty)
}

// mergeFilter adds the command-line rules to the filter
func mergeFilter(filter model.Filter, daysOff int, off, expect, avoid []string) (model.Filter, error) {
	if daysOff < 0 {
		return model.Filter{}, fmt.Errorf("days off must not be negative: %d", daysOff)
	}
	if daysOff > 0 || len(off) > 0 {
		rule := model.DayOffRule{}
		if filter.DayOff != nil {
			rule = *filter.DayOff
			rule.SpecificDays = append([]model.Day{}, rule.SpecificDays...)
		}
		rule.Days = max(rule.Days, daysOff)
		for _, name := range off {
			day := model.ParseDay(name)
			if !day.Valid() {
				return model.Filter{}, fmt.Errorf("unknown day \"%v\"", name)
			}
			rule.SpecificDays = append(rule.SpecificDays, day)
		}
		rule.SpecificDays = lo.Uniq(rule.SpecificDays)
		filter.DayOff = &rule
	}

	if len(expect) == 0 && len(avoid) == 0 {
		return filter, nil
	}
	lecturers := make(map[string]model.LecturerRule, len(filter.Lecturers))
	for course, rule := range filter.Lecturers {
		lecturers[course] = rule
	}
	for _, pair := range expect {
		course, lecturer, err := splitPair(pair)
		if err != nil {
			return model.Filter{}, err
		}
		rule := lecturers[course]
		rule.Expectations = append(rule.Expectations, lecturer)
		lecturers[course] = rule
	}
	for _, pair := range avoid {
		course, lecturer, err := splitPair(pair)
		if err != nil {
			return model.Filter{}, err
		}
		rule := lecturers[course]
		rule.Unexpectations = append(rule.Unexpectations, lecturer)
		lecturers[course] = rule
	}
	filter.Lecturers = lecturers
	return filter, nil
}

func splitPair(pair string) (string, string, error) {
	course, lecturer, ok := strings.Cut(pair, "=")
	course, lecturer = strings.TrimSpace(course), strings.TrimSpace(lecturer)
	if !ok || course == "" || lecturer == "" {
		return "", "", fmt.Errorf("expected \"Course=Lecturer\", got \"%v\"", pair)
	}
	return course, lecturer, nil
}

// generate runs the search and checks its output
func (s *selection) generate(ctx context.Context) ([]model.Timetable, error) {
	groups, filter, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	timetabler, err := s.timetabler()
	if err != nil {
		return nil, err
	}

	log.Debug().Int("groups", len(groups)).Msg("generating timetables")
	timetables, err := timetabler.Generate(ctx, groups, filter)
	if err != nil {
		return nil, fmt.Errorf("an error occurred during timetable generation: %w", err)
	}
	if !timetabler.Verify(timetables, groups, filter) {
		return nil, fmt.Errorf("generated timetables failed verification")
	}
	log.Info().Int("timetables", len(timetables)).Msg("timetables generated")
	return timetables, nil
}
