package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasaronina/MyDiary/internal/entry"
	"github.com/tasaronina/MyDiary/internal/messages"
	"github.com/tasaronina/MyDiary/internal/testutil"
)

func newReminder(t *testing.T, bot *testutil.Bot, now time.Time) (*Reminder, *test.Hook) {
	t.Helper()
	d, _ := testutil.NewDiary(t)
	log, hook := test.NewNullLogger()
	return &Reminder{
		Bot:    bot,
		Diary:  d,
		ChatID: 7,
		Loc:    time.UTC,
		Log:    log,
		Now:    func() time.Time { return now },
	}, hook
}

func TestRun_SendsWithoutTodaysEntry(t *testing.T) {
	now := time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)
	bot := &testutil.Bot{}
	r, hook := newReminder(t, bot, now)

	r.Run(context.Background())
	assert.Equal(t, []string{messages.ReminderText}, bot.Texts())
	assert.Equal(t, true, hook.LastEntry().Data["sent"])

	testutil.Await(t, r.Diary.Persist(entry.BuildRecord(nil, nil, nil, now.Add(-2*time.Hour))))
	bot.Reset()

	r.Run(context.Background())
	assert.Empty(t, bot.Sent)
	assert.Equal(t, false, hook.LastEntry().Data["sent"])
}

func TestRun_LogsSendError(t *testing.T) {
	bot := &testutil.Bot{Err: errors.New("blocked")}
	r, hook := newReminder(t, bot, time.Now())

	r.Run(context.Background())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "reminder failed", hook.LastEntry().Message)
}

func TestStart_SchedulesDailyJob(t *testing.T) {
	loc := time.FixedZone("MSK", 3*3600)
	r, _ := newReminder(t, &testutil.Bot{}, time.Now())
	r.Loc = loc

	s, err := Start(r, 20, 15)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown() })

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "diary-reminder", jobs[0].Name())

	var next time.Time
	require.Eventually(t, func() bool {
		next, err = jobs[0].NextRun()
		return err == nil && !next.IsZero()
	}, 5*time.Second, 10*time.Millisecond)
	next = next.In(loc)
	assert.Equal(t, 20, next.Hour())
	assert.Equal(t, 15, next.Minute())
	assert.True(t, next.After(time.Now()))
}
