package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/desertthunder/tubesync/internal/models"
	"github.com/desertthunder/tubesync/internal/shared"
)

const jobColumns = `id, playlist_name, source, status, error_message, remote_playlist_id,
	items_total, items_added, items_failed, created_at, updated_at`

// JobRepository implements [models.JobStore] on the restore_jobs table.
//
// Rows of a job are not stored; only the counters are.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new JobRepository with the given database connection
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// RecordJob inserts job or updates the stored snapshot with the same ID.
func (r *JobRepository) RecordJob(job models.RestorationJob) error {
	if job.ID == "" {
		return fmt.Errorf("%w: job has no id", shared.ErrInvalidInput)
	}
	if !job.Status.IsValid() {
		return fmt.Errorf("%w: unknown job status %q", shared.ErrInvalidInput, job.Status)
	}

	updatedAt := job.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	result, err := r.db.Exec(`
		UPDATE restore_jobs
		SET playlist_name = ?, source = ?, status = ?, error_message = ?, remote_playlist_id = ?,
			items_total = ?, items_added = ?, items_failed = ?, updated_at = ?
		WHERE id = ?
	`,
		job.Name,
		job.Source,
		job.Status.String(),
		nullable(job.Error),
		nullable(job.RemotePlaylistID),
		job.ItemsTotal,
		job.ItemsAdded,
		job.ItemsFailed,
		updatedAt,
		job.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows > 0 {
		return nil
	}

	sequence, err := NextSequence(r.db, "restore_jobs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	createdAt := job.CreatedAt
	if createdAt.IsZero() {
		createdAt = updatedAt
	}

	_, err = r.db.Exec(`
		INSERT INTO restore_jobs (
			id, sequence, playlist_name, source, status, error_message, remote_playlist_id,
			items_total, items_added, items_failed, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		job.ID,
		sequence,
		job.Name,
		job.Source,
		job.Status.String(),
		nullable(job.Error),
		nullable(job.RemotePlaylistID),
		job.ItemsTotal,
		job.ItemsAdded,
		job.ItemsFailed,
		createdAt,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// Get retrieves a job by ID, excluding soft-deleted jobs
func (r *JobRepository) Get(id string) (*models.RestorationJob, error) {
	row := r.db.QueryRow("SELECT "+jobColumns+" FROM restore_jobs WHERE id = ? AND deleted_at IS NULL", id)

	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrJobNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// List retrieves jobs in the order they were first recorded, excluding soft-deleted jobs.
//
// Supported criteria: "status" (string or [models.JobStatus]) and "limit" (int, most recent jobs only).
func (r *JobRepository) List(criteria map[string]any) ([]models.RestorationJob, error) {
	query := "SELECT " + jobColumns + " FROM restore_jobs WHERE deleted_at IS NULL"
	args := []any{}

	switch status := criteria["status"].(type) {
	case string:
		if status != "" {
			query += " AND status = ?"
			args = append(args, status)
		}
	case models.JobStatus:
		query += " AND status = ?"
		args = append(args, status.String())
	}

	limit, limited := criteria["limit"].(int)
	limited = limited && limit > 0
	if limited {
		query += " ORDER BY sequence DESC LIMIT ?"
		args = append(args, limit)
	} else {
		query += " ORDER BY sequence ASC"
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.RestorationJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if limited {
		slices.Reverse(jobs)
	}
	return jobs, nil
}

// Delete soft-deletes a job by ID
func (r *JobRepository) Delete(id string) error {
	result, err := r.db.Exec("UPDATE restore_jobs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrJobNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (models.RestorationJob, error) {
	var (
		job              models.RestorationJob
		status           string
		errorMessage     sql.NullString
		remotePlaylistID sql.NullString
	)

	err := s.Scan(
		&job.ID,
		&job.Name,
		&job.Source,
		&status,
		&errorMessage,
		&remotePlaylistID,
		&job.ItemsTotal,
		&job.ItemsAdded,
		&job.ItemsFailed,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return job, err
	}
	if err != nil {
		return job, fmt.Errorf("failed to scan job: %w", err)
	}

	job.Status = models.JobStatus(status)
	job.Error = errorMessage.String
	job.RemotePlaylistID = remotePlaylistID.String
	return job, nil
}
