package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/example/sozluk/pkg/models"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

const (
	dailyTag   = "daily-word"
	jobTimeout = 30 * time.Second
)

// Notifier announces the word of the day somewhere.
type Notifier interface {
	SendDailyWord(ctx context.Context, w models.Word) error
}

// DailySource picks today's word.
type DailySource interface {
	Today(ctx context.Context) (models.Word, error)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    DailySource
	notifier  Notifier
	at        string
}

// New creates a scheduler that announces the daily word every day at the
// HH:MM time at, read in loc.
func New(loc *time.Location, at string, source DailySource, notifier Notifier) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		source:    source,
		notifier:  notifier,
		at:        at,
	}
}

// Start schedules the daily job and runs the scheduler in the background.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Day().At(s.at).Tag(dailyTag).SingletonMode().Do(s.announce)
	if err != nil {
		return fmt.Errorf("failed to schedule daily word at %q: %w", s.at, err)
	}
	s.scheduler.StartAsync()
	logrus.WithFields(logrus.Fields{"at": s.at, "next_run": s.NextRun()}).Info("Daily word scheduler started")
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// NextRun reports when the daily job fires next, or the zero time before Start.
func (s *Scheduler) NextRun() time.Time {
	jobs, err := s.scheduler.FindJobsByTag(dailyTag)
	if err != nil || len(jobs) == 0 {
		return time.Time{}
	}
	return jobs[0].NextRun()
}

// RunNow picks today's word and sends it immediately.
func (s *Scheduler) RunNow(ctx context.Context) (models.Word, error) {
	w, err := s.source.Today(ctx)
	if err != nil {
		return models.Word{}, fmt.Errorf("failed to pick daily word: %w", err)
	}
	if err := s.notifier.SendDailyWord(ctx, w); err != nil {
		return w, fmt.Errorf("failed to send daily word: %w", err)
	}
	return w, nil
}

// announce is the job body.
func (s *Scheduler) announce() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	w, err := s.RunNow(ctx)
	if err != nil {
		logrus.WithError(err).Error("Daily word job failed")
		return
	}
	logrus.WithFields(logrus.Fields{"id": w.ID, "word": w.Word}).Info("Daily word sent")
}
