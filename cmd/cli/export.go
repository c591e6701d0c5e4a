package main

import (
	"fmt"
	"os"

	"github.com/limaJavier/coursetables/pkg/exporter"
	"github.com/spf13/cobra"
)

func exportCommand() *cobra.Command {
	var (
		s       selection
		index   int
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "export one generated timetable as an .ics calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timetables, err := s.generate(cmd.Context())
			if err != nil {
				return err
			}
			if index < 1 || index > len(timetables) {
				return fmt.Errorf("timetable %d does not exist, %d were generated", index, len(timetables))
			}

			file, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer file.Close()

			if err := exporter.GenerateICS(timetables[index-1], cfg.ExportCalendar(), file); err != nil {
				return fmt.Errorf("failed to generate ICS: %w", err)
			}
			log.Info().Int("timetable", index).Str("file", outFile).Msg("timetable exported")
			return nil
		},
	}

	s.register(cmd)
	cmd.Flags().IntVarP(&index, "index", "n", 1, "1-based position of the timetable to export")
	cmd.Flags().StringVarP(&outFile, "out", "o", "timetable.ics", "output file path")
	return cmd
}
