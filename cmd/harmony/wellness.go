package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/harmony/internal/cli"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/tracker"
)

func wellnessCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wellness",
		Short: "Mood, sleep, stress and habits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return opts.withStudent(ctx, func(_ *app, s *tracker.Student) error {
				score, err := s.Wellness.Score(ctx)
				if err != nil {
					return err
				}
				factors, err := s.Wellness.StressFactors(ctx)
				if err != nil {
					return err
				}
				corr, err := s.Wellness.SleepMoodCorrelation(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Wellness score %.0f/10", score)))
				fmt.Fprintln(out, cli.FormatInfo("Sleep and mood correlation "+formatScore(corr)))
				if len(factors) > 0 {
					rows := make([][]string, 0, len(factors))
					for _, f := range factors {
						rows = append(rows, []string{f.Factor, strconv.Itoa(f.Count)})
					}
					fmt.Fprintln(out, cli.Table([]string{"Stress factor", "Times"}, rows))
				}
				return nil
			})
		},
	}
	cmd.AddCommand(moodCmd(opts), sleepCmd(opts), habitCmd(opts), strategiesCmd(opts))
	return cmd
}

func moodCmd(opts *rootOptions) *cobra.Command {
	var (
		entry   model.MoodEntry
		date    string
		sleep   float64
		factors string
	)

	cmd := &cobra.Command{
		Use:   "mood <score>",
		Short: "Check in with a mood score from 1 to 10",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("mood score must be a whole number: %w", err)
			}
			entry.Score = score
			if cmd.Flags().Changed("sleep") {
				entry.SleepHours = &sleep
			}
			for _, f := range strings.Split(factors, ",") {
				if f = strings.TrimSpace(f); f != "" {
					entry.StressFactors = append(entry.StressFactors, f)
				}
			}
			return opts.withStudent(cmd.Context(), func(a *app, s *tracker.Student) error {
				if entry.Date, err = dateOrToday(date, a.now()); err != nil {
					return err
				}
				added, err := s.Wellness.LogMood(cmd.Context(), entry)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Mood %d logged for %s", added.Score, added.Date)))
				for _, f := range added.StressFactors {
					fmt.Fprintln(out, cli.FormatInfo(f+": "+strings.Join(tracker.StrategiesFor(f), "; ")))
				}
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&sleep, "sleep", 0, "hours slept last night")
	cmd.Flags().StringVar(&factors, "stress", "", "comma-separated stress factors")
	cmd.Flags().StringVar(&entry.Notes, "notes", "", "notes")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	return cmd
}

func sleepCmd(opts *rootOptions) *cobra.Command {
	var (
		entry model.SleepEntry
		date  string
	)

	cmd := &cobra.Command{
		Use:   "sleep <hours>",
		Short: "Log a night's sleep",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("hours must be a number: %w", err)
			}
			entry.Hours = hours
			return opts.withStudent(cmd.Context(), func(a *app, s *tracker.Student) error {
				if entry.Date, err = dateOrToday(date, a.now()); err != nil {
					return err
				}
				added, err := s.Wellness.LogSleep(cmd.Context(), entry)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s of sleep logged for %s", formatHours(added.Hours), added.Date)))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&entry.Quality, "quality", 0, "sleep quality from 1 to 5")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	return cmd
}

func habitCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habits",
		Short: "List habits and streaks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				habits, err := s.Wellness.Habits(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(habits))
				for _, h := range habits {
					rows = append(rows, []string{
						h.ID, h.Name, h.Frequency,
						strconv.Itoa(h.CurrentStreak), strconv.Itoa(h.LongestStreak), h.LastCompleted.String(),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.Table([]string{"ID", "Habit", "Frequency", "Streak", "Best", "Last done"}, rows))
				return nil
			})
		},
	}

	var habit model.Habit
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Start tracking a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			habit.Name = args[0]
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				added, err := s.Wellness.AddHabit(cmd.Context(), habit)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Tracking "+added.Name+" as "+added.ID))
				return nil
			})
		},
	}
	add.Flags().StringVar(&habit.Frequency, "frequency", "Daily", "how often")

	done := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a habit done today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return opts.withStudent(ctx, func(_ *app, s *tracker.Student) error {
				ok, err := s.Wellness.CompleteHabit(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no habit with id %s", args[0])
				}
				habits, err := s.Wellness.Habits(ctx)
				if err != nil {
					return err
				}
				for _, h := range habits {
					if h.ID == args[0] {
						fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s done, streak %d", h.Name, h.CurrentStreak)))
					}
				}
				return nil
			})
		},
	}

	cmd.AddCommand(add, done)
	return cmd
}

func strategiesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategies [stress factor]",
		Short: "Your coping strategies, or suggestions for a stress factor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				for _, s := range tracker.StrategiesFor(args[0]) {
					fmt.Fprintln(out, "  • "+s)
				}
				return nil
			}
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				strategies, err := s.Wellness.Strategies(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(strategies))
				for _, c := range strategies {
					rows = append(rows, []string{c.ID, c.Name, c.Category, strconv.Itoa(c.UsageCount), c.LastUsed.String()})
				}
				fmt.Fprintln(out, cli.Table([]string{"ID", "Strategy", "Category", "Used", "Last used"}, rows))
				return nil
			})
		},
	}

	var strategy model.CopingStrategy
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a coping strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy.Name = args[0]
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				added, err := s.Wellness.AddStrategy(cmd.Context(), strategy)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Saved "+added.Name))
				return nil
			})
		},
	}
	add.Flags().StringVar(&strategy.Description, "description", "", "how it works")
	add.Flags().StringVar(&strategy.Category, "category", "", "category")

	used := &cobra.Command{
		Use:   "used <id>",
		Short: "Count a use of a strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				ok, err := s.Wellness.LogStrategyUsage(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no strategy with id %s", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Noted"))
				return nil
			})
		},
	}

	cmd.AddCommand(add, used)
	return cmd
}
