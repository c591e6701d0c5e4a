package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/limaJavier/coursetables/pkg/model"
	"github.com/samber/lo"
)

const schema = `
CREATE TABLE IF NOT EXISTS offerings (
	id         BIGSERIAL PRIMARY KEY,
	university TEXT NOT NULL,
	faculty    TEXT NOT NULL,
	position   INTEGER NOT NULL,
	code       TEXT NOT NULL DEFAULT '',
	course_id  TEXT NOT NULL,
	name       TEXT NOT NULL,
	credits    INTEGER NOT NULL DEFAULT 0,
	capacity   INTEGER NOT NULL DEFAULT 0,
	class      TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS lessons (
	offering_id  BIGINT NOT NULL REFERENCES offerings(id) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	day          SMALLINT NOT NULL,
	start_period INTEGER NOT NULL,
	duration     INTEGER NOT NULL,
	room         TEXT NOT NULL DEFAULT '',
	lecturers    TEXT[] NOT NULL
);`

// PgStore keeps catalogs in PostgreSQL, one per university and faculty
type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(ctx context.Context, url string) (*PgStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cannot reach database: %w", err)
	}
	return &PgStore{pool: pool}, nil
}

func (store *PgStore) Close() {
	store.pool.Close()
}

// Migrate creates the tables if they do not exist yet
func (store *PgStore) Migrate(ctx context.Context) error {
	if _, err := store.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("cannot create catalog schema: %w", err)
	}
	return nil
}

// Load reads the catalog of a faculty, keeping the order in which it was saved. Offerings
// stored without lessons come back with none, so the engine rejects them as invalid input.
func (store *PgStore) Load(ctx context.Context, university, faculty string) (Catalog, error) {
	rows, err := store.pool.Query(ctx, `
		SELECT o.id, o.code, o.course_id, o.name, o.credits, o.capacity, o.class,
		       l.day, l.start_period, l.duration, l.room, l.lecturers
		FROM offerings o
		LEFT JOIN lessons l ON l.offering_id = o.id
		WHERE o.university = $1 AND o.faculty = $2
		ORDER BY o.position, l.position`, university, faculty)
	if err != nil {
		return Catalog{}, fmt.Errorf("cannot query catalog: %w", err)
	}
	defer rows.Close()

	catalog := Catalog{University: university, Faculty: faculty, Offerings: make([]model.CourseOffering, 0)}
	lastId := int64(-1)
	for rows.Next() {
		var (
			id        int64
			offering  model.CourseOffering
			day       *int16
			start     *int
			duration  *int
			room      *string
			lecturers []string
		)
		if err := rows.Scan(
			&id, &offering.Code, &offering.Id, &offering.Name, &offering.Credits, &offering.Capacity, &offering.Class,
			&day, &start, &duration, &room, &lecturers,
		); err != nil {
			return Catalog{}, fmt.Errorf("cannot scan catalog row: %w", err)
		}

		if id != lastId {
			offering.Lessons = make([]model.Lesson, 0)
			catalog.Offerings = append(catalog.Offerings, offering)
			lastId = id
		}
		// Lesson columns are NULL for an offering without lessons
		if day == nil {
			continue
		}
		last := &catalog.Offerings[len(catalog.Offerings)-1]
		last.Lessons = append(last.Lessons, model.Lesson{
			Day:       model.Day(*day),
			Start:     lo.FromPtr(start),
			Duration:  lo.FromPtr(duration),
			Room:      lo.FromPtr(room),
			Lecturers: lecturers,
		})
	}
	if err := rows.Err(); err != nil {
		return Catalog{}, fmt.Errorf("cannot read catalog rows: %w", err)
	}

	return Normalize(catalog), nil
}

// Save replaces the stored catalog of the faculty with the given one
func (store *PgStore) Save(ctx context.Context, catalog Catalog) error {
	return pgx.BeginFunc(ctx, store.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM offerings WHERE university = $1 AND faculty = $2`, catalog.University, catalog.Faculty); err != nil {
			return fmt.Errorf("cannot clear catalog: %w", err)
		}

		for position, offering := range catalog.Offerings {
			var id int64
			err := tx.QueryRow(ctx, `
				INSERT INTO offerings (university, faculty, position, code, course_id, name, credits, capacity, class)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING id`,
				catalog.University, catalog.Faculty, position, offering.Code, offering.Id, offering.Name, offering.Credits, offering.Capacity, offering.Class,
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("cannot insert offering \"%v\": %w", offering.Name, err)
			}

			if len(offering.Lessons) == 0 {
				continue
			}
			batch := &pgx.Batch{}
			for i, lesson := range offering.Lessons {
				batch.Queue(`
					INSERT INTO lessons (offering_id, position, day, start_period, duration, room, lecturers)
					VALUES ($1, $2, $3, $4, $5, $6, $7)`,
					id, i, int16(lesson.Day), lesson.Start, lesson.Duration, lesson.Room, lesson.Lecturers,
				)
			}
			if err := tx.SendBatch(ctx, batch).Close(); err != nil {
				return fmt.Errorf("cannot insert lessons of \"%v\": %w", offering.Name, err)
			}
		}
		return nil
	})
}
