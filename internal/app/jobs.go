package app

import (
	"context"
	"errors"

	"github.com/teenfaith/teenfaith/internal/scheduler"
)

// DailyRotationJobID identifies the job rotating the daily content.
const DailyRotationJobID = "daily_rotation"

// ErrNoScheduler is returned by job operations before RegisterJobs was called.
var ErrNoScheduler = errors.New("no scheduler registered")

// RegisterJobs adds the background jobs of the application to s.
func (c *Controller) RegisterJobs(s *scheduler.Scheduler) error {
	err := s.Add(scheduler.Job{
		ID:          DailyRotationJobID,
		Name:        "Daily rotation",
		Description: "Selects the verse of the day and the growth challenge",
		Schedule:    "0 0 * * *",
		Singleton:   true,
		RunOnStart:  true,
		Func: func(_ context.Context) error {
			c.daily.Rotate(c.now())
			return nil
		},
	})
	if err != nil {
		return err
	}
	c.sched = s
	return nil
}

// Jobs returns the registered background jobs.
func (c *Controller) Jobs() []scheduler.JobInfo {
	if c.sched == nil {
		return []scheduler.JobInfo{}
	}
	return c.sched.Jobs()
}

// RunJob triggers the job with id immediately.
func (c *Controller) RunJob(id string) error {
	if c.sched == nil {
		return ErrNoScheduler
	}
	return c.sched.RunJobNow(id)
}
