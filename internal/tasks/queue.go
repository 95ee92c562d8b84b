package tasks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/tubesync/internal/formatter"
	"github.com/desertthunder/tubesync/internal/models"
	"github.com/desertthunder/tubesync/internal/services"
	"github.com/desertthunder/tubesync/internal/shared"
	"github.com/desertthunder/tubesync/internal/storage"
)

// JobRecorder persists job snapshots. Failures are reported as warnings and never stop the queue.
type JobRecorder interface {
	RecordJob(job models.RestorationJob) error
}

// jobDeleter is implemented by recorders that can forget removed jobs.
type jobDeleter interface {
	Delete(id string) error
}

// RecordInput is the raw text of one backup file.
type RecordInput struct {
	Source string // File name or other identifier, used as the fallback playlist name
	Text   string
}

// RestoreSummary describes one queue drain.
type RestoreSummary struct {
	Processed   int
	Done        int
	Failed      int
	ItemsAdded  int
	ItemsFailed int
	Cancelled   bool
	Jobs        []models.RestorationJob // Snapshots of the processed jobs in processing order
}

// QueueOpts contains the collaborators of a [Queue].
type QueueOpts struct {
	Log       *EventLog
	Pacer     Pacer              // Spaces item additions (default: one every 500ms)
	Describer services.Describer // Optional playlist description generator
	Recorder  JobRecorder        // Optional job history
	Privacy   models.Privacy     // Privacy of created playlists (default: private)
}

// Queue holds restoration jobs and drains them one playlist at a time.
type Queue struct {
	mu      sync.Mutex
	jobs    []models.RestorationJob
	running bool

	log       *EventLog
	pacer     Pacer
	describer services.Describer
	recorder  JobRecorder
	privacy   models.Privacy
	newID     func() string
}

// NewQueue creates an empty [Queue].
func NewQueue(opts QueueOpts) *Queue {
	if opts.Log == nil {
		opts.Log = NewEventLog(nil)
	}
	if opts.Pacer == nil {
		opts.Pacer = NewPacer(DefaultPacing())
	}
	if opts.Privacy == "" {
		opts.Privacy = models.PrivacyPrivate
	}

	return &Queue{
		log:       opts.Log,
		pacer:     opts.Pacer,
		describer: opts.Describer,
		recorder:  opts.Recorder,
		privacy:   opts.Privacy,
		newID:     shared.GenerateID,
	}
}

// Enqueue decodes inputs and appends one pending job per decodable record.
//
// Undecodable inputs are dropped with an error event; skipped rows are reported as warnings.
func (q *Queue) Enqueue(inputs ...RecordInput) []models.RestorationJob {
	records := make([]*models.Record, 0, len(inputs))
	for _, in := range inputs {
		record, err := formatter.DecodeRecord(in.Text, in.Source)
		if err != nil {
			q.log.Error(fmt.Sprintf("Failed to parse %s: %v", in.Source, err), "source", in.Source)
			continue
		}
		records = append(records, record)
	}
	return q.EnqueueRecords(records...)
}

// EnqueueRecords appends one pending job per record. Records without rows are logged and skipped.
func (q *Queue) EnqueueRecords(records ...*models.Record) []models.RestorationJob {
	added := make([]models.RestorationJob, 0, len(records))
	for _, record := range records {
		for _, w := range record.Warnings {
			q.log.Warn(fmt.Sprintf("%s: %s", record.Source, w), "source", record.Source)
		}
		if len(record.Rows) == 0 {
			q.log.Error(fmt.Sprintf("Skipping %s: no videos to restore", record.Source), "source", record.Source)
			continue
		}

		job := models.NewRestorationJob(q.newID(), record)
		q.mu.Lock()
		q.jobs = append(q.jobs, job)
		q.mu.Unlock()

		q.record(job)
		added = append(added, job.Clone())
	}

	if len(added) > 0 {
		q.log.Success(fmt.Sprintf("Loaded %d potential playlists.", len(added)))
	}
	return added
}

// EnqueueFolder reads every .csv file directly inside folder and enqueues the decodable ones.
//
// Returns [shared.ErrCapabilityUnavailable] when folder is nil.
func (q *Queue) EnqueueFolder(ctx context.Context, folder storage.Folder) ([]models.RestorationJob, error) {
	if folder == nil {
		return nil, fmt.Errorf("%w: no source folder", shared.ErrCapabilityUnavailable)
	}

	q.log.Info(fmt.Sprintf("Reading CSVs from %s...", folder.Name()))
	entries, err := folder.Entries(ctx)
	if err != nil {
		q.log.Error(fmt.Sprintf("Error accessing folder: %v", err))
		return nil, err
	}

	var inputs []RecordInput
	for _, entry := range entries {
		if entry.Kind != storage.KindFile || !strings.HasSuffix(strings.ToLower(entry.Name), ".csv") {
			continue
		}

		text, err := folder.ReadText(ctx, entry.Name)
		if err != nil {
			q.log.Error(fmt.Sprintf("Failed to read %s: %v", entry.Name, err), "source", entry.Name)
			continue
		}
		inputs = append(inputs, RecordInput{Source: entry.Name, Text: text})
	}

	if len(inputs) == 0 {
		q.log.Warn("No CSV files found in selected folder.")
		return nil, nil
	}

	added := q.Enqueue(inputs...)
	if len(added) == 0 {
		q.log.Warn(fmt.Sprintf("None of the %d CSV files could be loaded.", len(inputs)))
	}
	return added, nil
}

// ProcessQueue restores every job that is pending when the call starts, strictly one after another, through gw.
//
// Returns [shared.ErrQueueBusy] without side effects while another drain runs. Cancellation of ctx is checked
// between jobs only; jobs not started stay pending and the error wraps [shared.ErrCancelled].
func (q *Queue) ProcessQueue(ctx context.Context, gw services.Gateway) (*RestoreSummary, error) {
	if gw == nil {
		return nil, fmt.Errorf("%w: no authorized session", shared.ErrCapabilityUnavailable)
	}

	q.mu.Lock()
	if q.running {
		q.mu.Unlock()
		return nil, shared.ErrQueueBusy
	}
	q.running = true
	var pending []string
	for _, job := range q.jobs {
		if job.Status == models.JobPending {
			pending = append(pending, job.ID)
		}
	}
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.running = false
		q.mu.Unlock()
	}()

	summary := &RestoreSummary{}
	if len(pending) == 0 {
		q.log.Info("No pending playlists to restore.")
		return summary, nil
	}

	for i, id := range pending {
		if ctx.Err() != nil {
			summary.Cancelled = true
			q.log.Warn(fmt.Sprintf("Restore cancelled; %d playlists left pending.", len(pending)-i))
			break
		}

		job, ok := q.transition(id, models.JobPending, func(j *models.RestorationJob) {
			j.Status = models.JobCreating
		})
		if !ok {
			continue
		}

		job = q.restore(context.WithoutCancel(ctx), gw, job)
		summary.Processed++
		summary.ItemsAdded += job.ItemsAdded
		summary.ItemsFailed += job.ItemsFailed
		if job.Status == models.JobDone {
			summary.Done++
		} else {
			summary.Failed++
		}
		summary.Jobs = append(summary.Jobs, job)
	}

	msg := fmt.Sprintf("Restore finished: %d created, %d failed, %d videos added, %d videos skipped.",
		summary.Done, summary.Failed, summary.ItemsAdded, summary.ItemsFailed)
	if summary.Failed > 0 || summary.ItemsFailed > 0 {
		q.log.Warn(msg)
	} else {
		q.log.Success(msg)
	}

	if summary.Cancelled {
		return summary, fmt.Errorf("%w: %v", shared.ErrCancelled, ctx.Err())
	}
	return summary, nil
}

// restore creates the remote playlist for job and adds its rows in order.
func (q *Queue) restore(ctx context.Context, gw services.Gateway, job models.RestorationJob) models.RestorationJob {
	q.record(job)
	q.log.Info(fmt.Sprintf("Creating playlist: %s...", job.Name), "job_id", job.ID)

	fallback := fmt.Sprintf("Restored from CSV. Contains %d videos.", len(job.Rows))
	description := fallback
	if q.describer != nil {
		var err error
		description, err = services.DescribeOrDefault(ctx, q.describer, fallback, job.Name, models.VideoTitles(job.Rows))
		if err != nil {
			q.log.Warn(fmt.Sprintf("Description generation failed for %s, using default: %v", job.Name, err), "job_id", job.ID)
		}
	}

	playlistID, err := gw.CreatePlaylist(ctx, job.Name, description, q.privacy)
	if err != nil {
		job, _ = q.transition(job.ID, models.JobCreating, func(j *models.RestorationJob) {
			j.Status = models.JobError
			j.Error = err.Error()
		})
		q.log.Error(fmt.Sprintf("Failed to create playlist %s: %v", job.Name, err), "job_id", job.ID)
		q.record(job)
		return job
	}

	job, _ = q.transition(job.ID, models.JobCreating, func(j *models.RestorationJob) {
		j.RemotePlaylistID = playlistID
	})
	q.log.Info(fmt.Sprintf("Playlist created (ID: %s). Adding %d videos...", playlistID, len(job.Rows)), "job_id", job.ID)

	for i, row := range job.Rows {
		err := q.addItem(ctx, gw, playlistID, row)
		job, _ = q.transition(job.ID, models.JobCreating, func(j *models.RestorationJob) {
			if err != nil {
				j.ItemsFailed++
			} else {
				j.ItemsAdded++
			}
		})
		if err != nil {
			q.log.Warn(fmt.Sprintf("Failed to add video %s (%d/%d) to %s: %v", row.VideoID, i+1, len(job.Rows), job.Name, err),
				"job_id", job.ID, "video_id", row.VideoID)
		}
	}

	job, _ = q.transition(job.ID, models.JobCreating, func(j *models.RestorationJob) {
		j.Status = models.JobDone
	})
	q.log.Success(fmt.Sprintf("Finished %s: %d of %d videos added.", job.Name, job.ItemsAdded, len(job.Rows)), "job_id", job.ID)
	q.record(job)
	return job
}

func (q *Queue) addItem(ctx context.Context, gw services.Gateway, playlistID string, row models.Row) error {
	if strings.TrimSpace(row.VideoID) == "" {
		return fmt.Errorf("%w: row has no video id", shared.ErrItemAdd)
	}
	if err := q.pacer.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrItemAdd, err)
	}
	if err := gw.AddItem(ctx, playlistID, row.VideoID); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrItemAdd, err)
	}
	return nil
}

// transition applies fn to the job with id when it is in status from and returns a snapshot.
func (q *Queue) transition(id string, from models.JobStatus, fn func(*models.RestorationJob)) (models.RestorationJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.jobs {
		if q.jobs[i].ID != id {
			continue
		}
		if q.jobs[i].Status != from {
			return q.jobs[i].Clone(), false
		}
		fn(&q.jobs[i])
		q.jobs[i].UpdatedAt = time.Now()
		return q.jobs[i].Clone(), true
	}
	return models.RestorationJob{}, false
}

func (q *Queue) record(job models.RestorationJob) {
	if q.recorder == nil {
		return
	}
	if err := q.recorder.RecordJob(job); err != nil {
		q.log.Warn(fmt.Sprintf("Failed to save history for %s: %v", job.Name, err), "job_id", job.ID)
	}
}

// Remove discards a pending job. Jobs in any other state are left untouched and false is returned.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	removed := false
	for i := range q.jobs {
		if q.jobs[i].ID == id && q.jobs[i].Status == models.JobPending {
			q.jobs = append(q.jobs[:i], q.jobs[i+1:]...)
			removed = true
			break
		}
	}
	q.mu.Unlock()

	if removed {
		q.forget(id)
	}
	return removed
}

// ClearPending discards every pending job and returns how many were removed.
func (q *Queue) ClearPending() int {
	q.mu.Lock()
	var removed []string
	kept := q.jobs[:0]
	for _, job := range q.jobs {
		if job.Status == models.JobPending {
			removed = append(removed, job.ID)
			continue
		}
		kept = append(kept, job)
	}
	q.jobs = kept
	q.mu.Unlock()

	for _, id := range removed {
		q.forget(id)
	}
	return len(removed)
}

func (q *Queue) forget(id string) {
	d, ok := q.recorder.(jobDeleter)
	if !ok {
		return
	}
	if err := d.Delete(id); err != nil {
		q.log.Warn(fmt.Sprintf("Failed to remove history for job %s: %v", id, err), "job_id", id)
	}
}

// Jobs returns snapshots of every job in enqueue order.
func (q *Queue) Jobs() []models.RestorationJob {
	q.mu.Lock()
	defer q.mu.Unlock()

	jobs := make([]models.RestorationJob, len(q.jobs))
	for i, job := range q.jobs {
		jobs[i] = job.Clone()
	}
	return jobs
}

// Job returns a snapshot of the job with id.
func (q *Queue) Job(id string) (models.RestorationJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, job := range q.jobs {
		if job.ID == id {
			return job.Clone(), nil
		}
	}
	return models.RestorationJob{}, fmt.Errorf("%w: %s", shared.ErrJobNotFound, id)
}

// Running reports whether a drain is in progress.
func (q *Queue) Running() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.running
}
