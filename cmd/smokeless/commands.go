package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"smokeless/internal"
	"smokeless/internal/di"
	"smokeless/internal/models"
	"smokeless/internal/providers"
	"smokeless/internal/services"
	"smokeless/internal/views"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var resetConfirmed bool

var (
	todayCmd = &cobra.Command{
		Use:   "today",
		Short: "Show today's count, cost and smoke-free time",
		RunE:  runToday,
	}
	smokeCmd = &cobra.Command{
		Use:   "smoke",
		Short: "Record one cigarette",
		RunE:  runSmoke,
	}
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show totals, savings and the last seven days",
		RunE:  runStats,
	}
	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Show the health recovery timeline",
		RunE:  runHealth,
	}
	settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		RunE:  runSettingsShow,
	}
	settingsShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE:  runSettingsShow,
	}
	settingsSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		RunE:  runSettingsSet,
	}
	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Delete all data",
		RunE:  runReset,
	}
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Keep today's screen open and refresh it",
		RunE:  runWatch,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the local JSON API",
		RunE:  runServe,
	}
)

// withTracker opens the store for one command and renders with the
// configured theme.
func withTracker(cmd *cobra.Command, fn func(t *internal.Tracker, v *views.View) error) error {
	tracker, cleanup, err := di.InitTracker(&flags)
	if err != nil {
		return err
	}
	defer tracker.Logger.Close()
	defer cleanup()

	if err := tracker.Open(); err != nil {
		return err
	}
	view := views.NewView(cmd.OutOrStdout(), tracker.Store.Settings().Theme)
	return fn(tracker, view)
}

func runToday(cmd *cobra.Command, _ []string) error {
	return withTracker(cmd, func(t *internal.Tracker, v *views.View) error {
		fmt.Fprintln(cmd.OutOrStdout(), v.Today(t.Store.Snapshot(), t.Store.Now()))
		return nil
	})
}

func runSmoke(cmd *cobra.Command, _ []string) error {
	return withTracker(cmd, func(t *internal.Tracker, v *views.View) error {
		out := cmd.OutOrStdout()
		t.Store.SetNotifier(views.NewNotifier(out, v, func() string {
			return t.Store.Settings().Currency
		}))
		if _, err := t.Store.RecordEvent(); err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, v.Today(t.Store.Snapshot(), t.Store.Now()))
		return nil
	})
}

func runStats(cmd *cobra.Command, _ []string) error {
	return withTracker(cmd, func(t *internal.Tracker, v *views.View) error {
		snap := t.Store.Snapshot()
		stats := services.CalculateStats(snap, t.Store.Now())
		fmt.Fprintln(cmd.OutOrStdout(), v.Stats(stats, snap.Settings))
		return nil
	})
}

func runHealth(cmd *cobra.Command, _ []string) error {
	return withTracker(cmd, func(t *internal.Tracker, v *views.View) error {
		fmt.Fprintln(cmd.OutOrStdout(), v.Timeline(services.HealthTimeline(t.Store.StreakDays())))
		return nil
	})
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	return withTracker(cmd, func(t *internal.Tracker, v *views.View) error {
		fmt.Fprintln(cmd.OutOrStdout(), v.Settings(t.Store.Settings()))
		return nil
	})
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	return withTracker(cmd, func(t *internal.Tracker, v *views.View) error {
		in := models.InputFromSettings(t.Store.Settings())
		overlay := map[string]*string{
			"currency": &in.Currency,
			"price":    &in.PricePerPack,
			"size":     &in.CigsPerPack,
			"baseline": &in.BaselineCigs,
			"theme":    &in.Theme,
		}
		for name, target := range overlay {
			if cmd.Flags().Changed(name) {
				*target, _ = cmd.Flags().GetString(name)
			}
		}

		settings, err := t.Store.UpdateSettings(in)
		var settingsErr *services.SettingsError
		if errors.As(err, &settingsErr) {
			fmt.Fprintln(cmd.ErrOrStderr(), v.Error(settingsErr))
			return settingsErr
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), views.NewView(cmd.OutOrStdout(), settings.Theme).Settings(settings))
		return nil
	})
}

func runReset(cmd *cobra.Command, _ []string) error {
	return withTracker(cmd, func(t *internal.Tracker, v *views.View) error {
		if !resetConfirmed && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure? This will delete ALL data permanently. [y/N] ") {
			return services.ErrResetNotConfirmed
		}
		if err := t.Store.Reset(); err != nil {
			return err
		}
		if err := t.Store.EnsureToday(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All data deleted.")
		return nil
	})
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func runWatch(cmd *cobra.Command, _ []string) error {
	return withTracker(cmd, func(t *internal.Tracker, v *views.View) error {
		out := cmd.OutOrStdout()
		render := func() {
			fmt.Fprint(out, "\033[H\033[2J")
			fmt.Fprintln(out, v.Today(t.Store.Snapshot(), t.Store.Now()))
		}

		t.Scheduler.OnRefresh(render)
		render()
		if err := t.Scheduler.Init(); err != nil {
			return err
		}
		defer t.Scheduler.Stop()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(stop)
		<-stop
		t.Logger.Infof(providers.TypeApp, "watch stopped")
		return nil
	})
}

func runServe(_ *cobra.Command, _ []string) error {
	app, cleanup, err := di.InitApp(&flags)
	if err != nil {
		return err
	}
	defer cleanup()
	return app.Run()
}
