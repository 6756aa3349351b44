package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/HuLaxx/Shiftify-sub000/internal/models"
	"github.com/HuLaxx/Shiftify-sub000/internal/shared"
)

const runColumns = `id, sequence, playlist_id, browse_id, auth_user, track_count, pages, truncated, stop_reason,
	missing_title, missing_video_id, reported_total, diagnostics, error, created_at, updated_at`

// RunRepository stores collection runs and the tracks they found.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts run with a generated ID and sequence, followed by tracks in collection order.
func (r *RunRepository) Create(run *models.Run, tracks []models.Track) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	diagnostics, err := json.Marshal(run.Diagnostics)
	if err != nil {
		return fmt.Errorf("failed to encode diagnostics: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := NextSequence(tx, "runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now().UTC()
	run.RunID = shared.GenerateID()
	run.Sequence = sequence
	run.Created, run.Updated = now, now

	_, err = tx.Exec(`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.Sequence,
		run.PlaylistID,
		run.BrowseID,
		run.AuthUser,
		run.TrackCount,
		run.Pages,
		run.Truncated,
		run.StopReason,
		run.MissingTitle,
		run.MissingVideoID,
		nullInt(run.ReportedTotal),
		string(diagnostics),
		run.Error,
		run.Created,
		run.Updated,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO run_tracks (run_id, position, title, artist, video_id) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare track insert: %w", err)
	}
	defer stmt.Close()

	for i, track := range tracks {
		if _, err := stmt.Exec(run.RunID, i+1, track.Title, track.Artist, nullString(track.VideoID)); err != nil {
			return fmt.Errorf("failed to insert track %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (r *RunRepository) Get(id string) (*models.Run, error) {
	row := r.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrRunNotFound, id)
	}
	return run, err
}

// List returns runs newest first.
//
// Supported criteria are "playlist_id" (string) and "limit" (int).
func (r *RunRepository) List(criteria map[string]any) ([]*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	args := []any{}

	if playlistID, ok := criteria["playlist_id"].(string); ok && playlistID != "" {
		query += " WHERE playlist_id = ?"
		args = append(args, playlistID)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []*models.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return runs, nil
}

// Tracks returns the tracks recorded for run id in collection order.
func (r *RunRepository) Tracks(id string) ([]models.Track, error) {
	rows, err := r.db.Query(`SELECT title, artist, video_id FROM run_tracks WHERE run_id = ? ORDER BY position ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query run tracks: %w", err)
	}
	defer rows.Close()

	tracks := []models.Track{}
	for rows.Next() {
		var (
			track   models.Track
			videoID sql.NullString
		)
		if err := rows.Scan(&track.Title, &track.Artist, &videoID); err != nil {
			return nil, fmt.Errorf("failed to scan run track: %w", err)
		}
		track.VideoID = videoID.String
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tracks, nil
}

// Delete removes a run and, through the foreign key, its tracks.
func (r *RunRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrRunNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.Run, error) {
	var (
		run           models.Run
		reportedTotal sql.NullInt64
		diagnostics   string
	)

	err := row.Scan(
		&run.RunID,
		&run.Sequence,
		&run.PlaylistID,
		&run.BrowseID,
		&run.AuthUser,
		&run.TrackCount,
		&run.Pages,
		&run.Truncated,
		&run.StopReason,
		&run.MissingTitle,
		&run.MissingVideoID,
		&reportedTotal,
		&diagnostics,
		&run.Error,
		&run.Created,
		&run.Updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	if reportedTotal.Valid {
		total := int(reportedTotal.Int64)
		run.ReportedTotal = &total
	}
	if err := json.Unmarshal([]byte(diagnostics), &run.Diagnostics); err != nil {
		return nil, fmt.Errorf("failed to decode diagnostics: %w", err)
	}
	return &run, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
