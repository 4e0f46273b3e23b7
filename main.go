package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/tasaronina/MyDiary/internal/app"
	"github.com/tasaronina/MyDiary/internal/config"
	"github.com/tasaronina/MyDiary/internal/handlers"
	"github.com/tasaronina/MyDiary/internal/logging"
	"github.com/tasaronina/MyDiary/internal/scheduler"
	"github.com/tasaronina/MyDiary/internal/utils"
)

func main() {
	cfg, err := config.Load() // .env, then environment
	utils.Must(err)

	log := logging.Init(cfg.Log.Level, cfg.Log.Format)

	token, err := cfg.BotToken()
	utils.Must(err)

	bot, err := tgbotapi.NewBotAPI(token)
	utils.Must(err)
	log.WithField("bot", bot.Self.UserName).Info("authorized")

	a, err := app.New(cfg, log)
	utils.Must(err)
	defer func() {
		if err := a.Close(); err != nil {
			log.WithError(err).Error("close storage")
		}
	}()

	h := handlers.New(bot, a.Diary, cfg.Telegram.OwnerChatID, cfg.Location(), log)

	if cfg.Telegram.OwnerChatID == 0 {
		log.Warn("TELEGRAM_OWNER_CHAT_ID is not set: serving every chat, daily reminder disabled")
	} else {
		hour, minute, _ := cfg.ReminderClock()
		s, err := scheduler.Start(&scheduler.Reminder{
			Bot:    bot,
			Diary:  a.Diary,
			ChatID: cfg.Telegram.OwnerChatID,
			Loc:    cfg.Location(),
			Log:    log.WithField("component", "scheduler"),
		}, hour, minute)
		utils.Must(err)
		defer s.Shutdown()
		log.WithFields(logrus.Fields{"at": cfg.ReminderAt, "tz": cfg.TZ}).Info("reminder scheduled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := bot.GetUpdatesChan(updateConfig)

	go func() {
		<-ctx.Done()
		bot.StopReceivingUpdates()
	}()

	h.Listen(ctx, updates)
	log.Info("shutting down")
}
