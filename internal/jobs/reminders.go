package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/campus-scheduler/internal/notify"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
)

// Reminders notifies both parties of every confirmed appointment taking
// place on the next day.
type Reminders struct {
	repo     domain.Repository
	notifier notify.Notifier
	clock    timezone.Clock
	logger   *zap.Logger
}

func NewReminders(
	repo domain.Repository,
	notifier notify.Notifier,
	clock timezone.Clock,
	logger *zap.Logger,
) *Reminders {
	return &Reminders{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
}

// Run sends the reminders and returns how many appointments were covered.
func (r *Reminders) Run(ctx context.Context) (int, error) {
	tomorrow := timezone.Today(r.clock()).AddDate(0, 0, 1)

	apps, err := r.repo.ListConfirmedOn(ctx, tomorrow)
	if err != nil {
		return 0, fmt.Errorf("list confirmed appointments: %w", err)
	}

	for i := range apps {
		ap := &apps[i]
		when := fmt.Sprintf("%s at %s", ap.Slot.Date.Format(timezone.DateLayout), ap.Slot.StartTime)

		r.notifier.Notify(ctx, ap.StudentID,
			"Appointment reminder",
			fmt.Sprintf("Reminder: your appointment with %s is tomorrow, %s.", ap.Specialist.FullName(), when),
			&ap.ID,
		)
		r.notifier.Notify(ctx, ap.SpecialistID,
			"Appointment reminder",
			fmt.Sprintf("Reminder: %s is booked with you tomorrow, %s.", ap.Student.FullName(), when),
			&ap.ID,
		)
	}

	return len(apps), nil
}

// Scheduler runs Reminders on a cron spec in the campus timezone.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(spec string, loc *time.Location, reminders *Reminders, logger *zap.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(loc))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := reminders.Run(ctx)
		if err != nil {
			logger.Error("reminder job failed", zap.Error(err))
			return
		}
		logger.Info("reminder job finished", zap.Int("appointments", n))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("reminder scheduler started")
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
