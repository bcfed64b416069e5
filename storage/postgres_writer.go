package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"rentready/models"
	"rentready/utils"
)

// PostgresWriter persists classified units so other reporting tools can
// query the latest upload.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection, waits for the database with
// retries, runs schema migrations, and returns a ready-to-use writer.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres ping", db.Ping); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS units (
			id                  SERIAL PRIMARY KEY,
			unit_code           VARCHAR(50)  NOT NULL,
			property            VARCHAR(50)  NOT NULL DEFAULT '',
			unit_type           TEXT         NOT NULL DEFAULT '',
			unit_description    TEXT         NOT NULL DEFAULT '',
			rental_type         TEXT         NOT NULL DEFAULT '',
			future_move_in      TEXT         NOT NULL DEFAULT '',
			asking_rent         NUMERIC(10,2) NOT NULL DEFAULT 0,
			make_ready_notes    TEXT         NOT NULL DEFAULT '',
			estimated_ready     DATE,
			rent_ready          VARCHAR(20)  NOT NULL DEFAULT '',
			actual_ready        TEXT         NOT NULL DEFAULT '',
			job_code            TEXT         NOT NULL DEFAULT '',
			comments            TEXT         NOT NULL DEFAULT '',
			category            VARCHAR(50)  NOT NULL,
			status              VARCHAR(20)  NOT NULL,
			days_until_ready    INTEGER,
			has_issues          BOOLEAN      NOT NULL DEFAULT FALSE,
			created_at          TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_units_property  ON units(property);
		CREATE INDEX IF NOT EXISTS idx_units_category  ON units(category);
		CREATE INDEX IF NOT EXISTS idx_units_rent      ON units(asking_rent);
		CREATE INDEX IF NOT EXISTS idx_units_issues    ON units(has_issues);
	`)
	return err
}

// Clear deletes all stored units.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM units")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write replaces the stored dataset with the given units, batched.
func (pw *PostgresWriter) Write(units []*models.UnitRecord) error {
	if len(units) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(units); i += batchSize {
		end := i + batchSize
		if end > len(units) {
			end = len(units)
		}
		if err := pw.insertBatch(units[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.UnitRecord) error {
	const fields = 17
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*fields)

	for idx, u := range batch {
		base := idx * fields
		placeholders := make([]string, fields)
		for j := 0; j < fields; j++ {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		var est *time.Time
		if u.EstimatedReady != nil {
			est = u.EstimatedReady
		}
		var days *int
		if u.DaysUntilReady != nil {
			days = u.DaysUntilReady
		}

		valueArgs = append(valueArgs,
			u.UnitCode, u.Property, u.UnitType, u.UnitDescription, u.RentalType,
			u.FutureMoveInDate, u.AskingRent, u.MakeReadyNotes, est,
			u.RentReady, u.ActualReady.Display(), u.JobCode, u.Comments,
			string(u.Category), string(u.Status), days, u.HasIssues)
	}

	query := fmt.Sprintf(`
		INSERT INTO units (
			unit_code, property, unit_type, unit_description, rental_type,
			future_move_in, asking_rent, make_ready_notes, estimated_ready,
			rent_ready, actual_ready, job_code, comments,
			category, status, days_until_ready, has_issues
		)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

// Close closes the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
