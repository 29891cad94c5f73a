package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ChoiBongGeun/DailyQuest/internal/app"
	"github.com/ChoiBongGeun/DailyQuest/internal/config"
	"github.com/ChoiBongGeun/DailyQuest/internal/credential"
	"github.com/ChoiBongGeun/DailyQuest/internal/notify"
	"github.com/ChoiBongGeun/DailyQuest/internal/reminder"
	"github.com/ChoiBongGeun/DailyQuest/internal/source/dailyquest"
	"github.com/ChoiBongGeun/DailyQuest/internal/store"
	appsync "github.com/ChoiBongGeun/DailyQuest/internal/sync"
)

func main() {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	st, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	token := os.Getenv("DAILYQUEST_TOKEN")
	if token == "" {
		token, err = credential.Get(credential.TokenKey)
		if err != nil || token == "" {
			fmt.Fprintln(os.Stderr, "no API token found: set DAILYQUEST_TOKEN or store one in the system keyring")
			os.Exit(1)
		}
	}

	src := dailyquest.New(cfg.Server.BaseURL, token)

	policy := reminder.NewPolicy(
		reminder.NewStorePolicyStorage(st),
		cfg.Reminder.DefaultOffsets,
	)
	ledger := reminder.NewLedger(reminder.NewFileStorage(reminder.DefaultLedgerPath()))

	desktop := notify.NewDesktop()
	var notifier reminder.Notifier
	if desktop.Available() {
		notifier = desktop
	}

	toasts := app.NewToastRelay()
	dispatcher := reminder.NewDispatcher(toasts, notifier, policy)

	sched := reminder.NewScheduler(policy, ledger, dispatcher, reminder.SchedulerConfig{
		TickInterval:     cfg.Reminder.TickInterval(),
		MidnightInterval: cfg.Reminder.MidnightInterval(),
		WindowMinutes:    cfg.Reminder.WindowMinutes,
	})

	poller := appsync.New(st, src, sched,
		time.Duration(cfg.Server.PollIntervalSec)*time.Second)

	m := app.New(st, policy, sched, poller, toasts, desktop)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running program: %v\n", err)
		os.Exit(1)
	}

	poller.Stop()
	sched.Stop()
}
