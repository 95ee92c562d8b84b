package models

import "time"

// JobStatus is the lifecycle state of a [RestorationJob].
//
// Jobs move pending → creating → done | error and never leave a terminal state.
type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobCreating JobStatus = "creating"
	JobDone     JobStatus = "done"
	JobError    JobStatus = "error"
)

// IsTerminal reports whether no further transitions are possible.
func (s JobStatus) IsTerminal() bool {
	return s == JobDone || s == JobError
}

// IsValid reports whether s is one of the known statuses.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobPending, JobCreating, JobDone, JobError:
		return true
	}
	return false
}

func (s JobStatus) String() string { return string(s) }

// RestorationJob re-creates one decoded [Record] as a new remote playlist.
type RestorationJob struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Source           string    `json:"source"`
	Rows             []Row     `json:"rows"`
	Status           JobStatus `json:"status"`
	Error            string    `json:"error,omitempty"`
	RemotePlaylistID string    `json:"remotePlaylistId,omitempty"`
	ItemsTotal       int       `json:"itemsTotal"`
	ItemsAdded       int       `json:"itemsAdded"`
	ItemsFailed      int       `json:"itemsFailed"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewRestorationJob creates a pending job for record.
func NewRestorationJob(id string, record *Record) RestorationJob {
	now := time.Now()
	rows := make([]Row, len(record.Rows))
	copy(rows, record.Rows)
	return RestorationJob{
		ID:         id,
		Name:       record.Name,
		Source:     record.Source,
		Rows:       rows,
		Status:     JobPending,
		ItemsTotal: len(rows),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Clone returns a deep copy of j.
func (j RestorationJob) Clone() RestorationJob {
	if j.Rows != nil {
		rows := make([]Row, len(j.Rows))
		copy(rows, j.Rows)
		j.Rows = rows
	}
	return j
}
