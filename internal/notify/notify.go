package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/notification"
	"github.com/BruksfildServices01/campus-scheduler/internal/mail"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

// Notifier delivers a message to a user. Delivery is best effort: callers
// never see a failure.
type Notifier interface {
	Notify(ctx context.Context, userID uint, title, message string, appointmentID *uint)
}

type job struct {
	userID        uint
	title         string
	message       string
	appointmentID *uint
}

// Dispatcher persists notifications and sends an email copy from a
// background worker. A full queue drops the notification with a warning.
type Dispatcher struct {
	repo   notification.Repository
	users  account.Repository
	mailer mail.Mailer
	logger *zap.Logger
	queue  chan job

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(
	repo notification.Repository,
	users account.Repository,
	mailer mail.Mailer,
	logger *zap.Logger,
) *Dispatcher {
	d := &Dispatcher{
		repo:   repo,
		users:  users,
		mailer: mailer,
		logger: logger,
		queue:  make(chan job, 256),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) Notify(_ context.Context, userID uint, title, message string, appointmentID *uint) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("notifier closed, dropping", zap.Uint("user_id", userID), zap.String("title", title))
		return
	}
	select {
	case d.queue <- job{userID: userID, title: title, message: message, appointmentID: appointmentID}:
	default:
		d.logger.Warn("notification queue full, dropping",
			zap.Uint("user_id", userID),
			zap.String("title", title),
		)
	}
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for j := range d.queue {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n := models.Notification{
		UserID:        j.userID,
		Title:         j.title,
		Message:       j.message,
		AppointmentID: j.appointmentID,
	}
	if err := d.repo.Create(ctx, &n); err != nil {
		d.logger.Warn("notification store failed", zap.Uint("user_id", j.userID), zap.Error(err))
	}

	if d.mailer == nil || d.users == nil {
		return
	}

	u, err := d.users.GetUserByID(ctx, j.userID)
	if err != nil {
		d.logger.Warn("notification recipient lookup failed", zap.Uint("user_id", j.userID), zap.Error(err))
		return
	}
	if err := d.mailer.Send(ctx, mail.NotificationMessage(u.Email, j.title, j.message)); err != nil {
		d.logger.Warn("notification email failed", zap.Uint("user_id", j.userID), zap.Error(err))
	}
}

// Close drains pending notifications. Later calls to Notify are dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

var _ Notifier = (*Dispatcher)(nil)
