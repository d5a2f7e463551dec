// Package report persists each conversion run, its per-event outcome and
// its diagnostics.
package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eventpy/eventpy/internal/transpile"
	"github.com/eventpy/eventpy/pkg/core"
)

// Store writes run reports to a database.
type Store struct {
	DB     *gorm.DB
	SqlDB  *sql.DB
	Logger zerolog.Logger
}

// Open connects to the report database. driver is sqlite or postgres;
// sqlite uses path, or memory when path is empty, postgres uses dsn.
func Open(driver, path, dsn string, log zerolog.Logger) (*Store, error) {
	s := &Store{Logger: log}

	var err error
	switch driver {
	case "sqlite", "":
		s.DB, err = s.openSqlite(path)
	case "postgres":
		s.DB, err = s.openPostgres(dsn)
	default:
		return nil, fmt.Errorf("unknown report driver %q (want sqlite or postgres)", driver)
	}
	if err != nil {
		return nil, err
	}

	s.SqlDB, err = s.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err := s.SqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to validate connection: %w", err)
	}
	return s, nil
}

func (s *Store) openPostgres(dsn string) (*gorm.DB, error) {
	s.Logger.Debug().Msg("Connecting to Postgres report DB")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        1000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres DB: %w", err)
	}
	return db, nil
}

func (s *Store) openSqlite(path string) (*gorm.DB, error) {
	target := path
	if target == "" {
		target = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(target), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
	}

	if path == "" {
		// every connection to :memory: is a separate database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		s.Logger.Info().Msg("Using in-memory SQLite report DB")
	} else {
		s.Logger.Info().Str("path", path).Msg("Using SQLite report DB")
	}

	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}
	return db, nil
}

// Setup migrates the report tables.
func (s *Store) Setup() error {
	s.Logger.Debug().Msg("Migrating report schema")
	if err := s.DB.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	if s.SqlDB == nil {
		return nil
	}
	return s.SqlDB.Close()
}

// Save writes r in one transaction and returns the new run id. events are
// the inputs of the run; they supply the parameters of each diagnostic's
// row. runErr is the error Run returned, if any.
func (s *Store) Save(ctx context.Context, source string, r *transpile.Report, events []core.Event, runErr error) (string, error) {
	run := Run{
		ID:            uuid.NewString(),
		CreatedAt:     r.Started.UTC(),
		Source:        source,
		Variant:       r.Variant.String(),
		FailurePolicy: r.Policy.String(),
		Events:        len(r.Events),
		Translated:    r.Translated,
		Failed:        r.Failed,
		DurationMs:    r.Duration.Milliseconds(),
		Aborted:       runErr != nil,
	}

	rows := commandIndex(events)
	var records []EventRecord
	var diags []DiagnosticRecord
	for _, ev := range r.Events {
		status := "translated"
		switch {
		case ev.Skipped:
			status = "skipped"
		case ev.Failed:
			status = "failed"
		}
		records = append(records, EventRecord{
			RunID:    run.ID,
			EventID:  ev.ID,
			Page:     ev.Page,
			Name:     ev.Name,
			Source:   ev.Source,
			Commands: ev.Commands,
			Status:   status,
			Text:     ev.Text,
		})

		for _, d := range ev.Diagnostics {
			diags = append(diags, DiagnosticRecord{
				RunID:        run.ID,
				EventID:      d.EventID,
				Page:         d.Page,
				CommandIndex: d.CommandIndex,
				Code:         d.Code,
				Kind:         d.Kind.String(),
				Message:      d.Message,
				Parameters:   rows.params(d.EventID, d.Page, d.CommandIndex),
			})
		}
	}
	run.Diagnostics = len(diags)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("error saving run: %w", err)
		}
		if len(records) > 0 {
			if err := tx.Create(&records).Error; err != nil {
				return fmt.Errorf("error saving events: %w", err)
			}
		}
		if len(diags) > 0 {
			if err := tx.Create(&diags).Error; err != nil {
				return fmt.Errorf("error saving diagnostics: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.Logger.Debug().Str("run", run.ID).Int("events", len(records)).Int("diagnostics", len(diags)).
		Msg("Saved run report")
	return run.ID, nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	err := s.DB.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&runs).Error
	return runs, err
}

// Events returns the event records of a run in translation order.
func (s *Store) Events(ctx context.Context, runID string) ([]EventRecord, error) {
	var out []EventRecord
	err := s.DB.WithContext(ctx).Where("run_id = ?", runID).Order("id").Find(&out).Error
	return out, err
}

// Diagnostics returns the diagnostics of a run, optionally of one kind.
func (s *Store) Diagnostics(ctx context.Context, runID, kind string) ([]DiagnosticRecord, error) {
	q := s.DB.WithContext(ctx).Where("run_id = ?", runID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var out []DiagnosticRecord
	err := q.Order("id").Find(&out).Error
	return out, err
}

type pageKey struct {
	event, page int
}

type rowIndex map[pageKey][]core.RawCommand

func commandIndex(events []core.Event) rowIndex {
	idx := make(rowIndex, len(events))
	for _, ev := range events {
		idx[pageKey{ev.ID, ev.Page}] = ev.Commands
	}
	return idx
}

// params returns the JSON parameters of one row, or null when the row is
// unknown.
func (idx rowIndex) params(event, page, index int) datatypes.JSON {
	rows := idx[pageKey{event, page}]
	if index < 0 || index >= len(rows) {
		return datatypes.JSON("null")
	}
	data, err := json.Marshal(rows[index].Parameters)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(data)
}
