package model

import (
	"context"
	"math/rand"
	"testing"

	"github.com/onsi/gomega"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecursiveTimetabler(t *testing.T) {
	timetablerExecution(t, NewRecursiveTimetabler)
}

func TestWorklistTimetabler(t *testing.T) {
	timetablerExecution(t, NewWorklistTimetabler)
}

func timetablerExecution(t *testing.T, constructor func(Options) Timetabler) {
	t.Run("Empty groups", func(t *testing.T) {
		timetables, err := constructor(Options{}).Generate(context.Background(), []CourseGroup{}, Filter{})

		require.NoError(t, err)
		require.Len(t, timetables, 1)
		assert.Equal(t, DaysInWeek, timetables[0].DaysOff())
	})

	t.Run("Group without offerings", func(t *testing.T) {
		groups := []CourseGroup{
			{offering("A", "A1", lesson(Monday, 1, 2))},
			{},
		}

		timetables, err := constructor(Options{}).Generate(context.Background(), groups, Filter{})

		require.NoError(t, err)
		assert.NotNil(t, timetables)
		assert.Empty(t, timetables)
	})

	t.Run("Conflicting offering is pruned", func(t *testing.T) {
		//** Arrange
		groups := []CourseGroup{
			{offering("A", "A1", lesson(Monday, 1, 2))},
			{
				offering("B", "B1", lesson(Monday, 1, 2)),
				offering("B", "B2", lesson(Tuesday, 1, 1)),
			},
		}
		timetabler := constructor(Options{})

		//** Act
		timetables, err := timetabler.Generate(context.Background(), groups, Filter{})

		//** Assert
		require.NoError(t, err)
		require.Len(t, timetables, 1)
		assert.Equal(t, map[string]string{"A": "A1", "B": "B2"}, chosenClasses(timetables[0]))
		assert.True(t, timetabler.Verify(timetables, groups, Filter{}))
	})

	t.Run("Emission order", func(t *testing.T) {
		//** Arrange
		groups := []CourseGroup{
			{
				offering("A", "A1", lesson(Monday, 1, 2)),
				offering("A", "A2", lesson(Tuesday, 1, 2)),
			},
			{
				offering("B", "B1", lesson(Wednesday, 1, 1)),
				offering("B", "B2", lesson(Thursday, 1, 1)),
			},
		}

		//** Act
		timetables, err := constructor(Options{}).Generate(context.Background(), groups, Filter{})

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, []map[string]string{
			{"A": "A1", "B": "B1"},
			{"A": "A1", "B": "B2"},
			{"A": "A2", "B": "B1"},
			{"A": "A2", "B": "B2"},
		}, lo.Map(timetables, func(timetable Timetable, _ int) map[string]string { return chosenClasses(timetable) }))
	})

	t.Run("Expected lecturer", func(t *testing.T) {
		//** Arrange
		groups := []CourseGroup{
			{
				offering("CourseX", "X1", lesson(Monday, 1, 2, "Dr. Lee")),
				offering("CourseX", "X2", lesson(Monday, 1, 2, "Dr. Kim")),
				offering("CourseX", "X3", lesson(Monday, 1, 2, "Dr. Lee", "Dr. Kim"), lesson(Friday, 1, 2, "Dr. Kim")),
				offering("CourseX", "X4", lesson(Tuesday, 3, 2, "Dr. Lee (Lab)")),
			},
			{offering("CourseY", "Y1", lesson(Wednesday, 1, 2, "Dr. Kim"))},
		}
		filter := Filter{Lecturers: map[string]LecturerRule{
			"CourseX": {Expectations: []string{"Dr. Lee"}},
		}}
		timetabler := constructor(Options{})

		//** Act
		timetables, err := timetabler.Generate(context.Background(), groups, filter)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"X1", "X4"}, lo.Map(timetables, func(timetable Timetable, _ int) string { return chosenClasses(timetable)["CourseX"] }))
		assert.True(t, timetabler.Verify(timetables, groups, filter))
	})

	t.Run("Unexpected lecturer", func(t *testing.T) {
		groups := []CourseGroup{{
			offering("CourseX", "X1", lesson(Monday, 1, 2, "Dr. Lee")),
			offering("CourseX", "X2", lesson(Monday, 1, 2, "Dr. Kim", "Dr. Tran")),
		}}
		filter := Filter{Lecturers: map[string]LecturerRule{
			"CourseX": {Unexpectations: []string{"Dr. Tran"}},
		}}

		timetables, err := constructor(Options{}).Generate(context.Background(), groups, filter)

		require.NoError(t, err)
		require.Len(t, timetables, 1)
		assert.Equal(t, "X1", chosenClasses(timetables[0])["CourseX"])
	})

	t.Run("Days off", func(t *testing.T) {
		random := rand.New(rand.NewSource(7))
		groups := randomGroups(random, 3, 4)
		filter := Filter{DayOff: &DayOffRule{Days: 4}}

		timetables, err := constructor(Options{}).Generate(context.Background(), groups, filter)

		require.NoError(t, err)
		for _, timetable := range timetables {
			assert.GreaterOrEqual(t, timetable.DaysOff(), 4)
		}
		assert.Equal(t, bruteForce(groups, filter), timetables)
	})

	t.Run("Specific days off", func(t *testing.T) {
		groups := []CourseGroup{
			{
				offering("A", "A1", lesson(Monday, 1, 2)),
				offering("A", "A2", lesson(Friday, 1, 2)),
			},
			{
				offering("B", "B1", lesson(Friday, 3, 1)),
				offering("B", "B2", lesson(Tuesday, 3, 1)),
			},
		}
		filter := Filter{DayOff: &DayOffRule{SpecificDays: []Day{Friday}}}

		timetables, err := constructor(Options{}).Generate(context.Background(), groups, filter)

		require.NoError(t, err)
		require.Len(t, timetables, 1)
		assert.Equal(t, map[string]string{"A": "A1", "B": "B2"}, chosenClasses(timetables[0]))
	})

	t.Run("Maximum results", func(t *testing.T) {
		groups := []CourseGroup{
			{
				offering("A", "A1", lesson(Monday, 1, 2)),
				offering("A", "A2", lesson(Tuesday, 1, 2)),
			},
			{
				offering("B", "B1", lesson(Wednesday, 1, 1)),
				offering("B", "B2", lesson(Thursday, 1, 1)),
			},
		}
		all := bruteForce(groups, Filter{})
		require.Len(t, all, 4)

		timetables, err := constructor(Options{MaxResults: 3}).Generate(context.Background(), groups, Filter{})

		require.NoError(t, err)
		assert.Equal(t, all[:3], timetables)
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		groups := []CourseGroup{{offering("A", "A1", lesson(Monday, 1, 2))}}

		timetables, err := constructor(Options{}).Generate(ctx, groups, Filter{})

		assert.ErrorIs(t, err, ErrCancelled)
		assert.Nil(t, timetables)
	})

	t.Run("Invalid input", func(t *testing.T) {
		scenarios := map[string][]CourseGroup{
			"no lessons":        {{offering("A", "A1")}},
			"zero duration":     {{offering("A", "A1", lesson(Monday, 1, 0))}},
			"zero start":        {{offering("A", "A1", lesson(Monday, 0, 1))}},
			"unknown day":       {{offering("A", "A1", lesson(UnknownDay, 1, 1))}},
			"duplicated course": {{offering("A", "A1", lesson(Monday, 1, 1))}, {offering("A", "A2", lesson(Friday, 1, 1))}},
			"duplicated offering": {{offering("A", "A1", lesson(Monday, 1, 1)), offering("A", "A1", lesson(Friday, 1, 1))}},
			"no lecturers": {{CourseOffering{Name: "A", Lessons: []Lesson{{Day: Monday, Start: 1, Duration: 1, Lecturers: []string{" "}}}}}},
		}

		for name, groups := range scenarios {
			t.Run(name, func(t *testing.T) {
				_, err := constructor(Options{}).Generate(context.Background(), groups, Filter{})
				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}

		_, err := constructor(Options{}).Generate(context.Background(), nil, Filter{DayOff: &DayOffRule{Days: -1}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Random instances", func(t *testing.T) {
		g := gomega.NewWithT(t)
		random := rand.New(rand.NewSource(42))
		timetabler := constructor(Options{})

		for i := 0; i < 20; i++ {
			//** Arrange
			groups := randomGroups(random, random.Intn(4)+1, random.Intn(4)+1)
			filter := Filter{
				DayOff: &DayOffRule{Days: random.Intn(4)},
				Lecturers: map[string]LecturerRule{
					"Course0": {Unexpectations: []string{"Dr. Kim"}},
				},
			}

			//** Act
			timetables, err := timetabler.Generate(context.Background(), groups, filter)

			//** Assert
			g.Expect(err).NotTo(gomega.HaveOccurred())
			g.Expect(timetables).To(gomega.Equal(bruteForce(groups, filter)))
			g.Expect(timetabler.Verify(timetables, groups, filter)).To(gomega.BeTrue())
			for _, timetable := range timetables {
				g.Expect(timetable.Courses()).To(gomega.HaveLen(len(groups)))
			}
		}
	})
}

func TestStrategiesAgree(t *testing.T) {
	g := gomega.NewWithT(t)
	random := rand.New(rand.NewSource(3))

	for i := 0; i < 10; i++ {
		groups := randomGroups(random, 4, 3)
		filter := Filter{DayOff: &DayOffRule{Days: 1, SpecificDays: []Day{Saturday}}}

		recursive, err := NewRecursiveTimetabler(Options{}).Generate(context.Background(), groups, filter)
		g.Expect(err).NotTo(gomega.HaveOccurred())
		worklist, err := NewWorklistTimetabler(Options{}).Generate(context.Background(), groups, filter)
		g.Expect(err).NotTo(gomega.HaveOccurred())

		g.Expect(worklist).To(gomega.Equal(recursive))
	}
}

func TestGenerationWithoutOccupancyMasks(t *testing.T) {
	//** Arrange
	// A period past the mask width forces the pairwise overlap scan
	groups := []CourseGroup{
		{
			offering("A", "A1", lesson(Monday, 70, 2)),
			offering("A", "A2", lesson(Monday, 1, 2)),
		},
		{
			offering("B", "B1", lesson(Monday, 71, 1)),
			offering("B", "B2", lesson(Monday, 2, 1)),
			offering("B", "B3", lesson(Monday, 72, 1)),
		},
	}

	for name, constructor := range Timetablers {
		t.Run(name, func(t *testing.T) {
			//** Act
			timetables, err := constructor(Options{}).Generate(context.Background(), groups, Filter{})

			//** Assert
			require.NoError(t, err)
			assert.Equal(t, bruteForce(groups, Filter{}), timetables)
			assert.Equal(t, []map[string]string{
				{"A": "A1", "B": "B2"},
				{"A": "A1", "B": "B3"},
				{"A": "A2", "B": "B1"},
				{"A": "A2", "B": "B3"},
			}, lo.Map(timetables, func(timetable Timetable, _ int) map[string]string { return chosenClasses(timetable) }))
		})
	}
}

func TestVerifyRejectsBrokenTimetables(t *testing.T) {
	groups := []CourseGroup{
		{offering("A", "A1", lesson(Monday, 1, 2))},
		{offering("B", "B1", lesson(Monday, 2, 2)), offering("B", "B2", lesson(Tuesday, 1, 1))},
	}
	timetabler := NewRecursiveTimetabler(Options{})

	t.Run("Overlap", func(t *testing.T) {
		broken := EmptyTimetable()
		broken.Days[Monday] = []PlacedLesson{
			placedLesson(groups[0][0].Lessons[0], groups[0][0]),
			placedLesson(groups[1][0].Lessons[0], groups[1][0]),
		}
		assert.False(t, timetabler.Verify([]Timetable{broken}, groups, Filter{}))
	})

	t.Run("Missing group", func(t *testing.T) {
		partial, _ := Place(EmptyTimetable(), groups[0][0])
		assert.False(t, timetabler.Verify([]Timetable{partial}, groups, Filter{}))
	})

	t.Run("Unsorted day", func(t *testing.T) {
		broken := EmptyTimetable()
		broken.Days[Monday] = []PlacedLesson{
			placedLesson(lesson(Monday, 5, 1), groups[1][1]),
			placedLesson(groups[0][0].Lessons[0], groups[0][0]),
		}
		assert.False(t, timetabler.Verify([]Timetable{broken}, groups, Filter{}))
	})
}
