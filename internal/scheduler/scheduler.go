package scheduler

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/samber/lo"
)

// JobStatus represents the status of a job.
type JobStatus string

const (
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusScheduled JobStatus = "scheduled"
)

// JobFunc represents a function that can be scheduled.
type JobFunc func(ctx context.Context) error

// Job describes a job to add to the scheduler.
type Job struct {
	ID          string
	Name        string
	Description string
	// Schedule is a cron expression (five fields).
	Schedule string
	Func     JobFunc
	// Singleton prevents overlapping runs.
	Singleton bool
	// RunOnStart triggers the job once when the scheduler starts.
	RunOnStart bool
}

// JobInfo is a snapshot of a job's bookkeeping.
type JobInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      JobStatus `json:"status"`
	Schedule    string    `json:"schedule"`
	LastRun     time.Time `json:"lastRun"`
	NextRun     time.Time `json:"nextRun"`
	RunCount    int       `json:"runCount"`
	ErrorCount  int       `json:"errorCount"`
	LastError   string    `json:"lastError,omitempty"`
	Singleton   bool      `json:"singleton"`
}

type entry struct {
	info       JobInfo
	runOnStart bool
	job        gocron.Job
}

// Scheduler manages scheduled jobs.
type Scheduler struct {
	gocron gocron.Scheduler
	log    *log.Logger

	mu   sync.Mutex
	jobs map[string]*entry

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new scheduler. Jobs receive a context derived from ctx.
func New(ctx context.Context) (*Scheduler, error) {
	l := log.Default().WithPrefix("scheduler")
	gocronScheduler, err := gocron.NewScheduler(gocron.WithLogger(newLogger(l)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Scheduler{
		gocron: gocronScheduler,
		log:    l,
		jobs:   make(map[string]*entry),
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Add registers a cron job.
func (s *Scheduler) Add(j Job) error {
	if j.ID == "" || j.Func == nil {
		return fmt.Errorf("job id and func are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[j.ID]; exists {
		return fmt.Errorf("job %s already exists", j.ID)
	}

	var opts []gocron.JobOption
	opts = append(opts, gocron.WithName(j.Name))
	if j.Singleton {
		opts = append(opts, gocron.WithSingletonMode(gocron.LimitModeReschedule))
	}

	job, err := s.gocron.NewJob(
		gocron.CronJob(j.Schedule, false),
		gocron.NewTask(s.wrapJobFunc(j.ID, j.Func)),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", j.ID, err)
	}

	s.jobs[j.ID] = &entry{
		info: JobInfo{
			ID:          j.ID,
			Name:        j.Name,
			Description: j.Description,
			Status:      JobStatusScheduled,
			Schedule:    j.Schedule,
			Singleton:   j.Singleton,
		},
		runOnStart: j.RunOnStart,
		job:        job,
	}
	s.log.Info("Added job to scheduler", "id", j.ID, "name", j.Name, "schedule", j.Schedule)
	return nil
}

// Start starts the scheduler and triggers the run-on-start jobs.
func (s *Scheduler) Start() {
	s.log.Info("Starting job scheduler")
	s.gocron.Start()

	s.mu.Lock()
	var runNow []string
	for id, e := range s.jobs {
		if nextRun, err := e.job.NextRun(); err == nil {
			e.info.NextRun = nextRun
		}
		if e.runOnStart {
			runNow = append(runNow, id)
		}
	}
	s.mu.Unlock()

	for _, id := range runNow {
		if err := s.RunJobNow(id); err != nil {
			s.log.Error("Failed to run job after start", "id", id, "error", err)
		}
	}
}

// Stop stops the scheduler and cancels running jobs.
func (s *Scheduler) Stop() error {
	s.log.Info("Stopping job scheduler")
	s.cancel()
	return s.gocron.Shutdown()
}

// RunJobNow manually triggers a job to run immediately.
func (s *Scheduler) RunJobNow(id string) error {
	s.mu.Lock()
	e, exists := s.jobs[id]
	s.mu.Unlock()
	if !exists {
		return fmt.Errorf("job %s not found", id)
	}

	s.log.Info("Triggering job", "id", id, "name", e.info.Name)
	if err := e.job.RunNow(); err != nil {
		return fmt.Errorf("failed to trigger job %s: %w", id, err)
	}
	return nil
}

// Job returns a snapshot of the job with id.
func (s *Scheduler) Job(id string) (JobInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.jobs[id]
	if !exists {
		return JobInfo{}, false
	}
	return e.info, true
}

// Jobs returns snapshots of all jobs ordered by id.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := lo.MapToSlice(s.jobs, func(_ string, e *entry) JobInfo { return e.info })
	slices.SortFunc(infos, func(a, b JobInfo) int { return cmp.Compare(a.ID, b.ID) })
	return infos
}

// wrapJobFunc wraps a job function to update job statistics.
func (s *Scheduler) wrapJobFunc(id string, jobFunc JobFunc) func() {
	return func() {
		s.mu.Lock()
		e := s.jobs[id]
		if e == nil {
			s.mu.Unlock()
			s.log.Error("Job info not found", "id", id)
			return
		}
		e.info.Status = JobStatusRunning
		e.info.LastRun = time.Now()
		e.info.RunCount++
		name := e.info.Name
		s.mu.Unlock()

		s.log.Debug("Starting job", "id", id, "name", name)
		err := jobFunc(s.ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if nextRun, nerr := e.job.NextRun(); nerr == nil {
			e.info.NextRun = nextRun
		}
		if err != nil {
			s.log.Error("Job failed", "id", id, "name", name, "error", err)
			e.info.Status = JobStatusFailed
			e.info.ErrorCount++
			e.info.LastError = err.Error()
			return
		}
		s.log.Debug("Job completed", "id", id, "name", name)
		e.info.Status = JobStatusCompleted
		e.info.LastError = ""
	}
}
