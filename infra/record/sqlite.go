// Package record provides the persistence backends for submitted
// crossings and traffic snapshots: a SQLite database and a JSONL file.
package record

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/causewaylab/crossing/core/record"
)

// SQLiteStore persists records to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS crossings (
        id TEXT PRIMARY KEY,
        ts INTEGER NOT NULL,
        checkpoint TEXT NOT NULL,
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        mode TEXT NOT NULL,
        travel_time_minutes REAL NOT NULL,
        wait_time_minutes REAL,
        total_time_minutes REAL NOT NULL,
        temperature_c REAL,
        rain_mm REAL,
        is_holiday INTEGER,
        day_of_week INTEGER,
        hour_of_day INTEGER,
        congestion_level TEXT,
        predicted_time_minutes REAL,
        prediction_error_minutes REAL
    );
    CREATE TABLE IF NOT EXISTS traffic_snapshots (
        id TEXT PRIMARY KEY,
        ts INTEGER NOT NULL,
        checkpoint TEXT NOT NULL,
        direction TEXT NOT NULL,
        traffic_duration_minutes REAL NOT NULL,
        congestion_multiplier REAL,
        source TEXT NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_crossings_ts ON crossings(ts);
    CREATE INDEX IF NOT EXISTS idx_crossings_checkpoint ON crossings(checkpoint, ts);
    CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON traffic_snapshots(ts);`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// AddCrossing writes the crossing to the database. A missing ID is
// generated.
func (s *SQLiteStore) AddCrossing(ctx context.Context, c record.Crossing) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO crossings (
            id, ts, checkpoint, origin, destination, mode,
            travel_time_minutes, wait_time_minutes, total_time_minutes,
            temperature_c, rain_mm, is_holiday, day_of_week, hour_of_day,
            congestion_level, predicted_time_minutes, prediction_error_minutes
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Timestamp.Unix(), c.Checkpoint, c.Origin, c.Destination, c.Mode,
		c.TravelTimeMinutes, c.WaitTimeMinutes, c.TotalTimeMinutes,
		c.TempC, c.RainMM, c.IsHoliday, c.DayOfWeek, c.HourOfDay,
		c.CongestionLevel, c.PredictedMinutes, c.PredictionErrorMin)
	return err
}

// AddSnapshot writes the traffic snapshot to the database.
func (s *SQLiteStore) AddSnapshot(ctx context.Context, snap record.TrafficSnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO traffic_snapshots (
            id, ts, checkpoint, direction,
            traffic_duration_minutes, congestion_multiplier, source
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Timestamp.Unix(), snap.Checkpoint, snap.Direction,
		snap.DurationMinutes, snap.Multiplier, snap.Source)
	return err
}

// RecentCrossings returns crossings matching q, newest first.
func (s *SQLiteStore) RecentCrossings(ctx context.Context, q record.Query) ([]record.Crossing, error) {
	query := `SELECT id, ts, checkpoint, origin, destination, mode,
        travel_time_minutes, wait_time_minutes, total_time_minutes,
        temperature_c, rain_mm, is_holiday, day_of_week, hour_of_day,
        congestion_level, predicted_time_minutes, prediction_error_minutes
        FROM crossings WHERE 1=1`
	var args []any
	if !q.Since.IsZero() {
		query += ` AND ts >= ?`
		args = append(args, q.Since.Unix())
	}
	if q.Checkpoint != "" {
		query += ` AND checkpoint = ?`
		args = append(args, q.Checkpoint)
	}
	query += ` ORDER BY ts DESC`
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []record.Crossing
	for rows.Next() {
		var c record.Crossing
		var ts int64
		if err := rows.Scan(&c.ID, &ts, &c.Checkpoint, &c.Origin, &c.Destination, &c.Mode,
			&c.TravelTimeMinutes, &c.WaitTimeMinutes, &c.TotalTimeMinutes,
			&c.TempC, &c.RainMM, &c.IsHoliday, &c.DayOfWeek, &c.HourOfDay,
			&c.CongestionLevel, &c.PredictedMinutes, &c.PredictionErrorMin); err != nil {
			return nil, err
		}
		c.Timestamp = time.Unix(ts, 0).UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}

// AveragesByHour aggregates stored crossings for the checkpoint per hour
// of day.
func (s *SQLiteStore) AveragesByHour(ctx context.Context, checkpoint string) ([]record.HourlyAverage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT hour_of_day,
            AVG(total_time_minutes) AS avg_time,
            AVG(wait_time_minutes) AS avg_wait,
            COUNT(*) AS sample_count
        FROM crossings WHERE checkpoint = ?
        GROUP BY hour_of_day ORDER BY hour_of_day`, checkpoint)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []record.HourlyAverage
	for rows.Next() {
		var h record.HourlyAverage
		if err := rows.Scan(&h.HourOfDay, &h.AvgMinutes, &h.AvgWait, &h.SampleCount); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
