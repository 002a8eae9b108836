package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/harmony/internal/cli"
	"github.com/Veraticus/harmony/internal/model"
)

func profileCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the student profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := opts.studentID()
			if err != nil {
				return err
			}
			return opts.withApp(cmd.Context(), func(a *app) error {
				p, found, err := a.profiles.Load(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("No profile yet, showing defaults. Create one with 'harmony profile set'."))
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderProfile(p))
				return nil
			})
		},
	}
	cmd.AddCommand(profileSetCmd(opts), profileListCmd(opts), profileDeleteCmd(opts))
	return cmd
}

func renderProfile(p model.Profile) string {
	rows := [][]string{
		{"Name", p.FullName},
		{"Email", p.Email},
		{"College", p.CollegeName},
		{"Degree", p.Degree},
		{"Major", p.Major},
		{"Year", p.YearOfStudy},
	}
	return cli.RenderBox(cli.HarmonyIcon+" "+p.StudentID, cli.Table([]string{"Field", "Value"}, rows))
}

func profileSetCmd(opts *rootOptions) *cobra.Command {
	var name, email, college, degree, major, year string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update the profile",
		Long: `Create or update the profile. Only the flags given are changed; a new
profile starts from the defaults.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := opts.studentID()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return opts.withApp(ctx, func(a *app) error {
				p, _, err := a.profiles.Load(ctx, id)
				if err != nil {
					return err
				}
				flags := cmd.Flags()
				for flag, field := range map[string]*string{
					"name":    &p.FullName,
					"email":   &p.Email,
					"college": &p.CollegeName,
					"degree":  &p.Degree,
					"major":   &p.Major,
					"year":    &p.YearOfStudy,
				} {
					if flags.Changed(flag) {
						v, _ := flags.GetString(flag)
						*field = strings.TrimSpace(v)
					}
				}

				saved, err := a.profiles.Save(ctx, p)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Profile saved for "+saved.FullName))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&college, "college", "", "college name")
	cmd.Flags().StringVar(&degree, "degree", "", "degree, e.g. B.Tech")
	cmd.Flags().StringVar(&major, "major", "", "major or branch")
	cmd.Flags().StringVar(&year, "year", "", fmt.Sprintf("year of study (%s)", strings.Join(model.YearsOfStudy, ", ")))
	return cmd
}

func profileListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every stored student",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return opts.withApp(ctx, func(a *app) error {
				ids, err := a.profiles.List(ctx)
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No students yet."))
					return nil
				}
				rows := make([][]string, 0, len(ids))
				for _, id := range ids {
					rows = append(rows, []string{id, a.profiles.DisplayName(ctx, id)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.Table([]string{"ID", "Name"}, rows))
				return nil
			})
		},
	}
}

func profileDeleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the student and every record they own",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := opts.studentID()
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("refusing to delete %s without --yes", id)
			}
			ctx := cmd.Context()
			return opts.withApp(ctx, func(a *app) error {
				if err := a.profiles.Delete(ctx, id); err != nil {
					return err
				}
				a.content.Forget(id)
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted "+id))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
