package main

import (
	"fmt"

	"github.com/limaJavier/coursetables/pkg/catalog"
	"github.com/spf13/cobra"
)

func importCommand() *cobra.Command {
	var (
		catalogFile string
		university  string
		faculty     string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "store a catalog file in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Database.Url == "" {
				return fmt.Errorf("database url is not configured")
			}
			courses, err := catalog.LoadFile(catalogFile)
			if err != nil {
				return err
			}
			if university != "" {
				courses.University = university
			}
			if faculty != "" {
				courses.Faculty = faculty
			}

			store, err := catalog.NewPgStore(cmd.Context(), cfg.Database.Url)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			if err := store.Save(cmd.Context(), courses); err != nil {
				return err
			}

			log.Info().
				Str("university", courses.University).
				Str("faculty", courses.Faculty).
				Int("offerings", len(courses.Offerings)).
				Msg("catalog imported")
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "catalog file (.json, .yaml or .html)")
	cmd.Flags().StringVar(&university, "university", "", "override the university named in the file")
	cmd.Flags().StringVar(&faculty, "faculty", "", "override the faculty named in the file")
	cmd.MarkFlagRequired("catalog")
	return cmd
}
