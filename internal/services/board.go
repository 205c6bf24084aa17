package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/migillett/TranscodeTycoonGame/internal/models"
	"github.com/migillett/TranscodeTycoonGame/internal/telemetry"
	"github.com/migillett/TranscodeTycoonGame/pkg/logger"
)

const (
	minRunTimeSeconds = 30
	maxRunTimeSeconds = 7200
)

// leftWeightedRunTime samples a total run time in seconds from a Beta(1,6)
// distribution scaled to [min, max], biasing the board toward short jobs.
// Beta(1, b) has the closed-form inverse CDF 1-(1-u)^(1/b), so a plain
// uniform draw is enough.
func (s *GameService) leftWeightedRunTime() float64 {
	u := s.rng.Float64()
	sample := 1 - math.Pow(1-u, 1.0/6.0)
	scaled := minRunTimeSeconds + sample*(maxRunTimeSeconds-minRunTimeSeconds)
	return math.Round(scaled*10) / 10
}

func (s *GameService) randomJobLocked() (*models.Job, error) {
	return models.NewJob(
		models.Priorities[s.rng.Intn(len(models.Priorities))],
		models.Formats[s.rng.Intn(len(models.Formats))],
		s.leftWeightedRunTime(),
		s.clk.Now(),
	)
}

// AddJob places a job on the board directly. Used for seeding.
func (s *GameService) AddJob(job *models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.JobID] = job
}

// FillBoard tops the board up to capacity with freshly generated jobs. It is
// idempotent with respect to capacity and returns the number created.
func (s *GameService) FillBoard() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fillBoardLocked()
}

func (s *GameService) fillBoardLocked() int {
	log := logger.WithComponent("board")
	created := 0
	for len(s.jobs) < s.cfg.JobCapacity {
		job, err := s.randomJobLocked()
		if err != nil {
			log.Error().Err(err).Msg("Job generation failed")
			break
		}
		s.jobs[job.JobID] = job
		created++
	}
	if created > 0 {
		telemetry.JobsGenerated.Add(float64(created))
		log.Debug().Int("created", created).Msg("Topped up job board")
	}
	return created
}

// PruneBoard drops every unclaimed job created at or before cutoff. A zero
// cutoff defaults to now minus the configured max age. Claimed jobs live in
// user queues and are never touched.
func (s *GameService) PruneBoard(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneBoardLocked(cutoff)
}

func (s *GameService) pruneBoardLocked(cutoff time.Time) int {
	if cutoff.IsZero() {
		cutoff = s.clk.Now().Add(-s.cfg.JobMaxAge)
	}
	dropped := 0
	for id, job := range s.jobs {
		if !job.CreatedAt.After(cutoff) {
			delete(s.jobs, id)
			dropped++
		}
	}
	if dropped > 0 {
		telemetry.JobsPruned.Add(float64(dropped))
		lg := logger.WithComponent("board")
		lg.Info().Int("dropped", dropped).Msg("Pruned stale jobs from board")
	}
	return dropped
}

// ListJobs returns the open board sorted by payout descending, topping it up
// first. With refresh set, stale jobs are pruned before the refill.
func (s *GameService) ListJobs(refresh bool) []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	if refresh {
		s.pruneBoardLocked(time.Time{})
	}
	s.fillBoardLocked()

	jobs := make([]models.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		if job.Status == models.JobStatusAvailable {
			jobs = append(jobs, *job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].Payout > jobs[j].Payout
	})
	return jobs
}

// GetJob looks a job up on the open board. Absence means it never existed or
// was already claimed; the two are indistinguishable here.
func (s *GameService) GetJob(jobID string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("%w: job %s missing or already claimed", ErrItemNotFound, jobID)
	}
	view := *job
	return &view, nil
}

// ClaimJob atomically pops a job off the board and appends it to the user's
// queue. The render time is computed against the user's current hardware and
// frozen; completion chains off the queue tail so jobs run one at a time in
// claim order.
func (s *GameService) ClaimJob(jobID, userID string) (*models.QueuedJob, error) {
	s.mu.Lock()
	user, ok := s.users[userID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrItemNotFound
	}
	changed := s.reconcileLocked(user)

	if len(user.JobQueue) >= user.Computer.QueueCapacity() {
		var snapshot map[string]*models.User
		if changed {
			snapshot = s.cloneUsersLocked()
		}
		s.mu.Unlock()
		s.persist(snapshot)
		return nil, fmt.Errorf("%w: not enough available RAM to queue another render job",
			ErrInsufficientResources)
	}

	job, ok := s.jobs[jobID]
	if !ok {
		var snapshot map[string]*models.User
		if changed {
			snapshot = s.cloneUsersLocked()
		}
		s.mu.Unlock()
		s.persist(snapshot)
		return nil, fmt.Errorf("%w: job %s missing or already claimed", ErrItemNotFound, jobID)
	}
	delete(s.jobs, jobID)

	difficulty, err := job.Difficulty()
	if err != nil {
		// integrity fault, put the job back untouched
		s.jobs[jobID] = job
		s.mu.Unlock()
		return nil, err
	}
	renderTime := models.Round4(difficulty / user.Computer.ProcessingPower())

	queued := &models.QueuedJob{
		Job:               *job,
		RenderTimeSeconds: renderTime,
	}
	if len(user.JobQueue) == 0 {
		queued.Status = models.JobStatusInProgress
		queued.EstimatedCompletionTS = s.clk.Now().Add(durationSeconds(renderTime))
	} else {
		queued.Status = models.JobStatusQueued
		tail := user.JobQueue[len(user.JobQueue)-1]
		queued.EstimatedCompletionTS = tail.EstimatedCompletionTS.Add(durationSeconds(renderTime))
	}
	user.JobQueue = append(user.JobQueue, queued)

	view := *queued
	snapshot := s.cloneUsersLocked()
	s.mu.Unlock()

	telemetry.JobsClaimed.Inc()
	lg := logger.WithComponent("game")
	lg.Debug().
		Str("user_id", userID).
		Str("job_id", jobID).
		Float64("render_time_seconds", renderTime).
		Msg("Job claimed")
	s.persist(snapshot)

	return &view, nil
}

// DeleteQueuedJob removes one job from the user's queue. Every later job's
// completion time is pulled earlier by the removed job's render time plus the
// configured rescheduling penalty, and the queue is settled again since the
// shift may newly complete jobs.
func (s *GameService) DeleteQueuedJob(jobID, userID string) error {
	s.mu.Lock()
	user, ok := s.users[userID]
	if !ok {
		s.mu.Unlock()
		return ErrItemNotFound
	}

	index := -1
	for i, job := range user.JobQueue {
		if job.JobID == jobID {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: job %s is not in your queue", ErrItemNotFound, jobID)
	}

	removed := user.JobQueue[index]
	user.JobQueue = append(user.JobQueue[:index], user.JobQueue[index+1:]...)

	shift := durationSeconds(removed.RenderTimeSeconds) + s.cfg.DeletePenalty
	for _, job := range user.JobQueue[index:] {
		job.EstimatedCompletionTS = job.EstimatedCompletionTS.Add(-shift)
	}
	s.reconcileLocked(user)

	snapshot := s.cloneUsersLocked()
	s.mu.Unlock()

	lg := logger.WithComponent("game")
	lg.Info().
		Str("user_id", userID).
		Str("job_id", jobID).
		Msg("Removed job from queue")
	s.persist(snapshot)
	return nil
}

// reconcileLocked settles the user's queue against the clock: every job whose
// completion time has passed is marked completed, credited exactly once and
// moved to history; the new head, if any, becomes in-progress. Idempotent
// when no time has passed.
func (s *GameService) reconcileLocked(user *models.User) bool {
	log := logger.WithComponent("game")
	now := s.clk.Now()

	changed := false
	remaining := user.JobQueue[:0]
	for _, job := range user.JobQueue {
		if job.EstimatedCompletionTS.Before(now) {
			job.Status = models.JobStatusCompleted
			user.CompletedJobs = append(user.CompletedJobs, job)
			user.Funds += job.Payout
			changed = true
			telemetry.JobsCompleted.Inc()
			log.Info().
				Str("user_id", user.UserID).
				Str("job_id", job.JobID).
				Float64("payout", job.Payout).
				Msg("Job completed")
			continue
		}
		remaining = append(remaining, job)
	}
	user.JobQueue = remaining

	for i, job := range user.JobQueue {
		if i == 0 {
			job.Status = models.JobStatusInProgress
		} else {
			job.Status = models.JobStatusQueued
		}
	}
	return changed
}

func durationSeconds(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
