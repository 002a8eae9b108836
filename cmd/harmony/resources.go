package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/harmony/internal/cli"
	"github.com/Veraticus/harmony/internal/content"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/tracker"
)

func resourcesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"res"},
		Short:   "Campus and external resources, scholarships and bookmarks",
	}
	cmd.AddCommand(
		directoryCmd(opts, "campus", "Campus support services", (*tracker.Resources).Campus),
		directoryCmd(opts, "external", "Helplines, portals and learning platforms", (*tracker.Resources).External),
		scholarshipsCmd(opts),
		subjectCmd(opts),
		searchCmd(opts),
		bookmarkCmd(opts),
		bookmarksCmd(opts),
	)
	return cmd
}

type listFunc func(r *tracker.Resources, ctx context.Context, category string) ([]model.Resource, error)

func directoryCmd(opts *rootOptions, use, short string, list listFunc) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				resources, err := list(s.Resources, cmd.Context(), category)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderResources(resources))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")
	return cmd
}

func renderResources(resources []model.Resource) string {
	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		reach := r.Contact
		if reach == "" {
			reach = r.Website
		}
		rows = append(rows, []string{r.ID, r.Name, r.Category, reach, r.Hours})
	}
	return cli.Table([]string{"ID", "Name", "Category", "Contact", "Hours"}, rows)
}

func scholarshipsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scholarships",
		Short: "National scholarships open to college students",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				rows := [][]string{}
				for _, sc := range s.Resources.Scholarships() {
					rows = append(rows, []string{sc.Name, sc.Provider, sc.Amount, sc.Deadline, sc.Website})
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.Table([]string{"Scholarship", "Provider", "Amount", "Deadline", "Website"}, rows))
				return nil
			})
		},
	}
}

func subjectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "subject <subject>",
		Short: "Built-in learning resources for a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderItems(s.Resources.ForSubject(args[0]), []string{"name", "type", "website"}))
				return nil
			})
		},
	}
}

func searchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Find learning resources for a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := opts.studentID()
			if err != nil {
				return err
			}
			return opts.withApp(ctx, func(a *app) error {
				p, err := a.profile(ctx, id)
				if err != nil {
					return err
				}
				items := a.finder.Find(ctx, strings.Join(args, " "), content.ContextFromProfile(p))
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderItems(items, []string{"name", "type", "website"}))
				return nil
			})
		},
	}
}

func bookmarkCmd(opts *rootOptions) *cobra.Command {
	var (
		notes  string
		remove bool
	)

	cmd := &cobra.Command{
		Use:   "bookmark <resource-id>",
		Short: "Bookmark a resource, or remove a bookmark with --remove",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return opts.withStudent(ctx, func(_ *app, s *tracker.Student) error {
				out := cmd.OutOrStdout()
				if remove {
					ok, err := s.Resources.RemoveBookmark(ctx, args[0])
					if err != nil {
						return err
					}
					if !ok {
						return fmt.Errorf("%s is not bookmarked", args[0])
					}
					fmt.Fprintln(out, cli.FormatSuccess("Bookmark removed"))
					return nil
				}
				if _, err := s.Resources.Bookmark(ctx, args[0], notes); err != nil {
					return err
				}
				if _, err := s.Resources.LogUsage(ctx, args[0], "bookmarked"); err != nil {
					return err
				}
				fmt.Fprintln(out, cli.FormatSuccess(cli.BookmarkIcon+" Bookmarked "+args[0]))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "notes to keep with the bookmark")
	cmd.Flags().BoolVar(&remove, "remove", false, "remove the bookmark")
	return cmd
}

func bookmarksCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmarks",
		Short: "List bookmarked resources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				saved, err := s.Resources.Bookmarks(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(saved))
				for _, sr := range saved {
					rows = append(rows, []string{sr.Resource.ID, sr.Resource.Name, sr.Bookmark.Notes})
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.Table([]string{"ID", "Resource", "Notes"}, rows))
				return nil
			})
		},
	}
}
