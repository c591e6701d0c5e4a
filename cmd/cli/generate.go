package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/limaJavier/coursetables/pkg/exporter"
	"github.com/limaJavier/coursetables/pkg/model"
	"github.com/spf13/cobra"
)

type page struct {
	Total      int               `json:"total"`
	Pages      int               `json:"pages"`
	Page       int               `json:"page"`
	Timetables []model.Timetable `json:"timetables"`
}

func generateCommand() *cobra.Command {
	var (
		s        selection
		pageNum  int
		pageSize int
		format   string
		outFile  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "generate every valid timetable for the selected courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "grid" {
				return fmt.Errorf("%v is not a valid format, expected json or grid", format)
			}
			if pageSize == 0 {
				pageSize = cfg.Generator.PageSize
			}
			if pageNum < 1 || pageSize < 1 {
				return fmt.Errorf("page and page size must be positive")
			}

			timetables, err := s.generate(cmd.Context())
			if err != nil {
				return err
			}
			result := page{
				Total:      len(timetables),
				Pages:      model.Pages(len(timetables), pageSize),
				Page:       pageNum,
				Timetables: model.Paginate(timetables, pageNum, pageSize),
			}

			var out io.Writer = cmd.OutOrStdout()
			if outFile != "" {
				file, err := os.Create(outFile)
				if err != nil {
					return fmt.Errorf("an error occurred while creating the output file: %w", err)
				}
				defer file.Close()
				out = file
			}
			return writePage(out, result, pageSize, format)
		},
	}

	s.register(cmd)
	cmd.Flags().IntVar(&pageNum, "page", 1, "1-based page of timetables to print")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "timetables per page (defaults to config)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or grid")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "file where the output is written; standard output when empty")
	return cmd
}

func writePage(out io.Writer, result page, pageSize int, format string) error {
	if format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Fprintf(out, "%d timetables, page %d of %d\n", result.Total, result.Page, result.Pages)
	for i, timetable := range result.Timetables {
		fmt.Fprintf(out, "\n#%d\n%s\n", (result.Page-1)*pageSize+i+1, exporter.RenderGrid(timetable))
	}
	return nil
}
