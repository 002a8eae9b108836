package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/harmony/internal/cli"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/tracker"
)

func academicCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "academic",
		Aliases: []string{"acad"},
		Short:   "Courses, deadlines, grades and study time",
	}
	cmd.AddCommand(
		coursesCmd(opts),
		tasksCmd(opts),
		semesterCmd(opts),
		cgpaCmd(opts),
		studyCmd(opts),
	)
	return cmd
}

func coursesCmd(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List courses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				courses, err := s.Academic.Courses(cmd.Context(), !all)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(courses))
				for _, c := range courses {
					rows = append(rows, []string{c.Code, c.Name, c.Instructor, c.Semester, strconv.Itoa(c.Credits)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.Table([]string{"Code", "Name", "Instructor", "Semester", "Credits"}, rows))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include past courses")

	var course model.Course
	var past bool
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a course",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				if past {
					current := false
					course.IsCurrent = &current
				}
				added, err := s.Academic.AddCourse(cmd.Context(), course)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s %s", added.Code, added.Name)))
				return nil
			})
		},
	}
	add.Flags().StringVar(&course.Code, "code", "", "course code")
	add.Flags().StringVar(&course.Name, "name", "", "course name")
	add.Flags().StringVar(&course.Instructor, "instructor", "", "instructor")
	add.Flags().StringVar(&course.Semester, "semester", "", "semester label")
	add.Flags().IntVar(&course.Credits, "credits", 0, "credit hours")
	add.Flags().BoolVar(&past, "past", false, "mark the course as completed")
	_ = add.MarkFlagRequired("code")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(add)
	return cmd
}

func tasksCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List upcoming assignments and exams",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				tasks, err := s.Academic.UpcomingTasks(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(tasks) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Nothing due."))
					return nil
				}
				rows := make([][]string, 0, len(tasks))
				for _, t := range tasks {
					rows = append(rows, []string{t.ID, t.DueDate.String(), t.Title, t.CourseCode, string(t.Status)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.Table([]string{"ID", "Due", "Title", "Course", "Status"}, rows))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum tasks to show (0 for all)")

	var task model.Task
	var due string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an assignment or exam",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStudent(cmd.Context(), func(a *app, s *tracker.Student) error {
				if due != "" {
					d, err := dateOrToday(due, a.now())
					if err != nil {
						return err
					}
					task.DueDate = d
				}
				added, err := s.Academic.AddTask(cmd.Context(), task)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Added task "+added.ID))
				return nil
			})
		},
	}
	add.Flags().StringVar(&task.Title, "title", "", "task title")
	add.Flags().StringVar(&task.Type, "type", "Assignment", "Assignment, Exam, Project, ...")
	add.Flags().StringVar(&task.CourseCode, "course", "", "course code")
	add.Flags().StringVar(&task.Priority, "priority", "", "priority label")
	add.Flags().StringVar(&task.Description, "description", "", "notes")
	add.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	_ = add.MarkFlagRequired("title")

	done := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				ok, err := s.Academic.CompleteTask(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no task with id %s", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Completed "+args[0]))
				return nil
			})
		},
	}

	cmd.AddCommand(add, done)
	return cmd
}

func semesterCmd(opts *rootOptions) *cobra.Command {
	var (
		index   int
		sgpa    float64
		credits int
	)

	cmd := &cobra.Command{
		Use:   "semester <name>",
		Short: "Record a semester's SGPA",
		Long: `Record a semester's SGPA. The cumulative CGPA is computed from the semesters
already on record and stored with the new entry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				perf, err := s.Academic.AddSemester(cmd.Context(), args[0], index, sgpa, credits)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s recorded, CGPA now %s", perf.Semester, formatScore(perf.CGPA))))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "semester number, starting at 1")
	cmd.Flags().Float64Var(&sgpa, "sgpa", 0, "semester grade point average (0-10)")
	cmd.Flags().IntVar(&credits, "credits", 0, "credits earned")
	_ = cmd.MarkFlagRequired("index")
	_ = cmd.MarkFlagRequired("sgpa")
	_ = cmd.MarkFlagRequired("credits")
	return cmd
}

func cgpaCmd(opts *rootOptions) *cobra.Command {
	var goal float64

	cmd := &cobra.Command{
		Use:   "cgpa",
		Short: "Show CGPA history and the target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return opts.withStudent(ctx, func(_ *app, s *tracker.Student) error {
				if cmd.Flags().Changed("goal") {
					if err := s.Academic.SetCGPAGoal(ctx, goal); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("CGPA goal set to "+formatScore(goal)))
				}

				semesters, err := s.Academic.Semesters(ctx)
				if err != nil {
					return err
				}
				current, err := s.Academic.CurrentCGPA(ctx)
				if err != nil {
					return err
				}
				target, err := s.Academic.CGPAGoal(ctx)
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(semesters))
				for _, p := range semesters {
					rows = append(rows, []string{strconv.Itoa(p.SemesterIndex), p.Semester, formatScore(p.SGPA), strconv.Itoa(p.Credits), formatScore(p.CGPA)})
				}
				out := cmd.OutOrStdout()
				if len(rows) > 0 {
					fmt.Fprintln(out, cli.Table([]string{"#", "Semester", "SGPA", "Credits", "CGPA"}, rows))
				}
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Current CGPA %s, goal %s", formatScore(current), formatScore(target))))
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&goal, "goal", 0, "set a new CGPA target")
	return cmd
}

func studyCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Study hours by subject",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return opts.withStudent(ctx, func(_ *app, s *tracker.Student) error {
				totals, err := s.Academic.StudyHoursBySubject(ctx)
				if err != nil {
					return err
				}
				week, err := s.Academic.StudyHoursLastWeek(ctx)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(totals))
				for _, t := range totals {
					rows = append(rows, []string{t.Category, formatHours(t.Total)})
				}
				out := cmd.OutOrStdout()
				if len(rows) > 0 {
					fmt.Fprintln(out, cli.Table([]string{"Subject", "Hours"}, rows))
				}
				fmt.Fprintln(out, cli.FormatInfo("Last 7 days: "+formatHours(week)))
				return nil
			})
		},
	}

	var session model.StudySession
	var date string
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log a study session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStudent(cmd.Context(), func(a *app, s *tracker.Student) error {
				d, err := dateOrToday(date, a.now())
				if err != nil {
					return err
				}
				session.Date = d
				added, err := s.Academic.AddStudySession(cmd.Context(), session)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Logged %s of %s", formatHours(added.Hours), added.Subject)))
				return nil
			})
		},
	}
	logCmd.Flags().StringVar(&session.Subject, "subject", "", "subject studied")
	logCmd.Flags().Float64Var(&session.Hours, "hours", 0, "hours studied")
	logCmd.Flags().StringVar(&session.Notes, "notes", "", "notes")
	logCmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	_ = logCmd.MarkFlagRequired("hours")

	cmd.AddCommand(logCmd)
	return cmd
}
