package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/limaJavier/coursetables/pkg/model"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const MB float32 = 1024 * 1024

type InstanceSize struct {
	Groups    int
	Offerings int // Per group
}

type TestMetadata struct {
	Name     string
	Seed     int64
	Size     InstanceSize
	Lessons  int
	Filtered bool
	groups   []model.CourseGroup
	filter   model.Filter
}

type BenchmarkResult struct {
	Strategy   string
	Test       TestMetadata
	Duration   int64 // Microseconds
	Memory     float32
	Timetables int
	Verified   bool
}

var (
	sizes = []InstanceSize{
		{Groups: 4, Offerings: 4},
		{Groups: 6, Offerings: 5},
		{Groups: 8, Offerings: 6},
		{Groups: 10, Offerings: 6},
	}
	lecturers = []string{"Dr. Lee", "Dr. Kim", "Dr. Tran", "Dr. Nguyen", "Dr. Pham", "Dr. Hoang", "Dr. Vo", "Dr. Dang"}
)

func main() {
	var (
		seed       int64
		instances  int
		maxResults int
		outFile    string
	)

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "time every search strategy on seeded random instances",
		Run: func(cmd *cobra.Command, args []string) {
			tests := getTests(seed, instances)
			strategies := getStrategies()
			results := make([]BenchmarkResult, 0, len(tests)*len(strategies))

			for _, test := range tests {
				counts := make([]int, 0, len(strategies))
				for _, strategy := range strategies {
					fmt.Printf("Benchmarking test \"%v\" with strategy \"%v\"\n", test.Name, strategy)

					result := measure(cmd.Context(), strategy, model.Options{MaxResults: maxResults}, test)
					counts = append(counts, result.Timetables)
					results = append(results, result)
				}
				if len(lo.Uniq(counts)) > 1 {
					log.Fatalf("strategies disagree on test \"%v\": %v produced %v timetables", test.Name, strategies, counts)
				}
			}

			file, err := os.Create(outFile)
			if err != nil {
				log.Panicf("cannot create CSV file: %v", err)
			}
			defer file.Close()
			toCsv(results, file)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed of the first random instance")
	cmd.Flags().IntVar(&instances, "instances", 3, "random instances per size")
	cmd.Flags().IntVar(&maxResults, "max", 0, "stop every search after this many timetables, 0 for no limit")
	cmd.Flags().StringVarP(&outFile, "out", "o", "benchmark_results.csv", "CSV report path")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getStrategies() []string {
	strategies := lo.Keys(model.Timetablers)
	slices.Sort(strategies)
	return strategies
}

// getTests builds one unfiltered and one filtered test per instance, seeds increasing from seed
func getTests(seed int64, instances int) []TestMetadata {
	tests := make([]TestMetadata, 0, 2*len(sizes)*instances)
	for _, size := range sizes {
		for i := 0; i < instances; i++ {
			instanceSeed := seed + int64(len(tests)/2)
			groups := randomInstance(rand.New(rand.NewSource(instanceSeed)), size)
			lessons := lo.SumBy(groups, func(group model.CourseGroup) int {
				return lo.SumBy(group, func(offering model.CourseOffering) int { return len(offering.Lessons) })
			})

			for _, filtered := range []bool{false, true} {
				test := TestMetadata{
					Name:     fmt.Sprintf("g%d-o%d-s%d", size.Groups, size.Offerings, instanceSeed),
					Seed:     instanceSeed,
					Size:     size,
					Lessons:  lessons,
					Filtered: filtered,
					groups:   groups,
				}
				if filtered {
					test.Name += "-filtered"
					test.filter = model.Filter{
						DayOff:    &model.DayOffRule{Days: 2},
						Lecturers: map[string]model.LecturerRule{"Course 1": {Unexpectations: lecturers[:1]}},
					}
				}
				tests = append(tests, test)
			}
		}
	}
	return tests
}

// randomInstance places lessons on Monday through Saturday across twelve periods
func randomInstance(random *rand.Rand, size InstanceSize) []model.CourseGroup {
	groups := make([]model.CourseGroup, size.Groups)
	for i := range groups {
		name := fmt.Sprintf("Course %d", i+1)
		groups[i] = make(model.CourseGroup, size.Offerings)
		for j := range groups[i] {
			// Lessons of one offering fall on distinct days
			first := random.Intn(6)
			lessons := make([]model.Lesson, 1+random.Intn(2))
			for k := range lessons {
				lessons[k] = model.Lesson{
					Day:       model.Day((first + 3*k) % 6),
					Start:     1 + random.Intn(10),
					Duration:  1 + random.Intn(3),
					Room:      fmt.Sprintf("R%d", random.Intn(20)),
					Lecturers: []string{lecturers[random.Intn(len(lecturers))]},
				}
			}
			groups[i][j] = model.CourseOffering{
				Id:      fmt.Sprintf("C%03d", i+1),
				Name:    name,
				Credits: 2 + random.Intn(3),
				Class:   fmt.Sprintf("%d", j+1),
				Lessons: lessons,
			}
		}
	}
	return groups
}

func measure(ctx context.Context, strategy string, options model.Options, test TestMetadata) BenchmarkResult {
	timetabler := model.Timetablers[strategy](options)

	runtime.GC()
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	timetables, err := timetabler.Generate(ctx, test.groups, test.filter)

	duration := time.Since(start)
	runtime.ReadMemStats(&after)
	if err != nil {
		log.Fatalf("an error occurred during generation at test \"%v\" using strategy \"%v\": %v", test.Name, strategy, err)
	}

	return BenchmarkResult{
		Strategy:   strategy,
		Test:       test,
		Duration:   duration.Microseconds(),
		Memory:     float32(after.TotalAlloc-before.TotalAlloc) / MB,
		Timetables: len(timetables),
		Verified:   timetabler.Verify(timetables, test.groups, test.filter),
	}
}

func toCsv(results []BenchmarkResult, w io.Writer) {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Strategy", "Test", "Seed", "Groups", "Offerings", "Lessons", "Filtered", "Duration(us)", "Allocated(MB)", "Timetables", "Verified"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Strategy,
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Seed),
			fmt.Sprintf("%d", result.Test.Size.Groups),
			fmt.Sprintf("%d", result.Test.Size.Offerings),
			fmt.Sprintf("%d", result.Test.Lessons),
			fmt.Sprintf("%v", result.Test.Filtered),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.2f", result.Memory),
			fmt.Sprintf("%d", result.Timetables),
			fmt.Sprintf("%v", result.Verified),
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
