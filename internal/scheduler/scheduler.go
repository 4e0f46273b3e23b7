package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"

	"github.com/tasaronina/MyDiary/internal/diary"
	"github.com/tasaronina/MyDiary/internal/messages"
)

// Reminder nudges ChatID once a day unless an entry was already made.
type Reminder struct {
	Bot    messages.Sender
	Diary  *diary.Service
	ChatID int64
	Loc    *time.Location
	Log    logrus.FieldLogger
	Now    func() time.Time
}

// Run is the job body.
func (r *Reminder) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	now := r.Now().In(r.Loc)
	sent, err := messages.SendReminder(ctx, r.Bot, r.Diary, r.ChatID, now)
	if err != nil {
		r.Log.WithError(err).Error("reminder failed")
		return
	}
	r.Log.WithField("sent", sent).Info("reminder checked")
}

// Start schedules r daily at hour:minute in r.Loc and starts the scheduler.
func Start(r *Reminder, hour, minute int) (gocron.Scheduler, error) {
	if r.Now == nil {
		r.Now = time.Now
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(r.Loc))
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), uint(minute), 0))),
		gocron.NewTask(func() { r.Run(context.Background()) }),
		gocron.WithName("diary-reminder"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}

	s.Start()
	return s, nil
}
