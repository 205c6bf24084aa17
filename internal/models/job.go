package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusAvailable  JobStatus = "available"
	JobStatusQueued     JobStatus = "queued"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
)

type Format string

const (
	FormatSD  Format = "SD"  // 480p
	FormatHD  Format = "HD"  // 720p
	FormatFHD Format = "FHD" // 1080p
	FormatUHD Format = "UHD" // 4K
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Formats and Priorities list every valid enum value, in the order the job
// generator samples them.
var (
	Formats    = []Format{FormatSD, FormatHD, FormatFHD, FormatUHD}
	Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}
)

// ErrUnsupportedFormat indicates a job carries a format outside the known
// enum. Jobs are only ever minted with valid formats, so hitting this is a
// data-integrity fault, not a user error.
var ErrUnsupportedFormat = errors.New("unsupported video format")

// base rates in dollars per minute of footage
var baseRates = map[Format]float64{
	FormatSD:  1.0,
	FormatHD:  2.5,
	FormatFHD: 5.0,
	FormatUHD: 10.0,
}

var priorityMultipliers = map[Priority]float64{
	PriorityLow:    1.0,
	PriorityMedium: 1.5,
	PriorityHigh:   2.0,
}

// Job is a unit of renderable work sitting on the shared board.
type Job struct {
	JobID        string    `json:"job_id"`
	Status       JobStatus `json:"status"`
	Priority     Priority  `json:"priority"`
	TotalRunTime float64   `json:"total_run_time"` // seconds of footage
	Format       Format    `json:"format"`
	Payout       float64   `json:"payout"`
	CreatedAt    time.Time `json:"-"`
}

func NewJobID() string {
	return "ren" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// NewJob mints a board job with a fresh id and its payout precomputed.
func NewJob(priority Priority, format Format, totalRunTime float64, now time.Time) (*Job, error) {
	job := &Job{
		JobID:        NewJobID(),
		Status:       JobStatusAvailable,
		Priority:     priority,
		TotalRunTime: totalRunTime,
		Format:       format,
		CreatedAt:    now,
	}
	payout, err := job.ComputePayout()
	if err != nil {
		return nil, err
	}
	job.Payout = payout
	return job, nil
}

// ComputePayout is a pure function of (format, priority, run time):
//
//	payout = round2(base_rate[format] * multiplier[priority] * run_time/60)
func (j *Job) ComputePayout() (float64, error) {
	rate, ok := baseRates[j.Format]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, j.Format)
	}
	mult, ok := priorityMultipliers[j.Priority]
	if !ok {
		mult = priorityMultipliers[PriorityLow]
	}
	return Round2(rate * mult * (j.TotalRunTime / 60)), nil
}

func pixelCount(f Format) (float64, error) {
	switch f {
	case FormatSD:
		return 720 * 480, nil
	case FormatHD:
		return 1280 * 720, nil
	case FormatFHD:
		return 1920 * 1080, nil
	case FormatUHD:
		return 3840 * 2160, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Difficulty scores the render in megapixel-equivalent units, assuming 30fps
// footage: pixels * 30 * run_time / 1e6.
func (j *Job) Difficulty() (float64, error) {
	px, err := pixelCount(j.Format)
	if err != nil {
		return 0, err
	}
	return Round2(px * 30 * j.TotalRunTime / 1e6), nil
}

// QueuedJob is a claimed job inside a user's queue. The render time is frozen
// at claim time against the hardware the user had then; later upgrades do not
// speed up work already queued.
type QueuedJob struct {
	Job
	EstimatedCompletionTS time.Time `json:"estimated_completion_ts"`
	RenderTimeSeconds     float64   `json:"render_time_seconds"`
}
