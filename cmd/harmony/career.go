package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/harmony/internal/cli"
	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/tracker"
)

func careerCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "career",
		Short: "Skills, experience, interests and readiness",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return opts.withStudent(ctx, func(_ *app, s *tracker.Student) error {
				readiness, err := s.Career.Readiness(ctx)
				if err != nil {
					return err
				}
				prefs, err := s.Career.Preferences(ctx)
				if err != nil {
					return err
				}
				skills, err := s.Career.Skills(ctx, "")
				if err != nil {
					return err
				}
				exps, err := s.Career.Experiences(ctx, "")
				if err != nil {
					return err
				}

				rows := [][]string{
					{"Readiness", fmt.Sprintf("%.0f/100", readiness)},
					{"Interests", strings.Join(prefs.Interests, ", ")},
					{"Target roles", strings.Join(prefs.TargetRoles, ", ")},
					{"Skills", fmt.Sprintf("%d", len(skills))},
					{"Experience", fmt.Sprintf("%d", len(exps))},
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Career", cli.Table([]string{"", ""}, rows)))
				return nil
			})
		},
	}
	cmd.AddCommand(skillCmd(opts), experienceCmd(opts), interestsCmd(opts))
	return cmd
}

func skillCmd(opts *rootOptions) *cobra.Command {
	var skill model.Skill

	cmd := &cobra.Command{
		Use:   "skill <name>",
		Short: "Add a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skill.Name = args[0]
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				added, err := s.Career.AddSkill(cmd.Context(), skill)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Added skill "+added.Name))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&skill.Level, "level", "Beginner", "Beginner, Intermediate, Advanced")
	cmd.Flags().StringVar(&skill.Category, "category", "", "Technical, Soft, Language, ...")
	return cmd
}

func experienceCmd(opts *rootOptions) *cobra.Command {
	var (
		exp        model.Experience
		start, end string
	)

	cmd := &cobra.Command{
		Use:   "experience <title>",
		Short: "Add an internship, job, project or volunteering entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp.Title = args[0]
			var err error
			if exp.StartDate, err = model.ParseDate(start); err != nil {
				return common.NewUserError(err.Error(), common.ErrInvalidInput)
			}
			if exp.EndDate, err = model.ParseDate(end); err != nil {
				return common.NewUserError(err.Error(), common.ErrInvalidInput)
			}
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				added, err := s.Career.AddExperience(cmd.Context(), exp)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Added "+added.Title))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&exp.Organization, "org", "", "organization")
	cmd.Flags().StringVar(&exp.Type, "type", "Internship", "Internship, Job, Project, Volunteer")
	cmd.Flags().StringVar(&exp.Description, "description", "", "what you did")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	return cmd
}

func interestsCmd(opts *rootOptions) *cobra.Command {
	var roles []string

	cmd := &cobra.Command{
		Use:   "interests <interest...>",
		Short: "Replace career interests, and optionally target roles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				prefs, err := s.Career.UpdatePreferences(cmd.Context(), func(p *model.CareerPreferences) {
					p.Interests = args
					if len(roles) > 0 {
						p.TargetRoles = roles
					}
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Interests: "+strings.Join(prefs.Interests, ", ")))
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&roles, "roles", nil, "target roles")
	return cmd
}
