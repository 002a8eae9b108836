package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/harmony/internal/cli"
	"github.com/Veraticus/harmony/internal/content"
	"github.com/Veraticus/harmony/internal/model"
)

func contentCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "AI-curated tips, trends and news",
	}
	cmd.AddCommand(contentShowCmd(opts), contentRefreshCmd(opts))
	return cmd
}

func contentShowCmd(opts *rootOptions) *cobra.Command {
	var (
		topic string
		force bool
	)

	kinds := make([]string, 0, len(model.GeneralKinds)+1)
	for _, k := range model.GeneralKinds {
		kinds = append(kinds, string(k))
	}
	kinds = append(kinds, "news")

	cmd := &cobra.Command{
		Use:       "show <kind>",
		Short:     "Show one kind of content",
		Long:      "Show one kind of content. Kinds: " + strings.Join(kinds, ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := model.ContentKind(args[0])
			if kind == "news" {
				kind = model.NewsKind(topic)
			}
			fields, ok := content.Fields(kind)
			if !ok {
				return fmt.Errorf("unknown content kind %q (want one of %s)", args[0], strings.Join(kinds, ", "))
			}

			id, err := opts.studentID()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return opts.withApp(ctx, func(a *app) error {
				p, err := a.profile(ctx, id)
				if err != nil {
					return err
				}
				cache := a.content.For(id)
				items := cache.Get(ctx, kind, content.ContextFromProfile(p), force)

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, cli.FormatTitle(strings.ReplaceAll(string(kind), "_", " ")))
				fmt.Fprintln(out, cli.RenderItems(items, fields))
				if cached, ok := cache.Peek(ctx, kind); !ok || cached.LastUpdated == nil {
					fmt.Fprintln(out, cli.FormatInfo("Showing built-in content."))
				} else {
					fmt.Fprintln(out, cli.FormatInfo("Updated "+cached.LastUpdated.Local().Format("02 Jan 15:04")))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "education", "news topic")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "refresh even when the cached content is fresh")
	return cmd
}

func contentRefreshCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh every general content kind",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := opts.studentID()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return opts.withApp(ctx, func(a *app) error {
				p, err := a.profile(ctx, id)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				progress := newRefreshProgress(out, len(model.GeneralKinds))
				results := a.content.For(id).RefreshAll(ctx, content.ContextFromProfile(p), force, progress)

				for _, kind := range model.GeneralKinds {
					fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s: %d items", kind, len(results[kind]))))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "refresh even when the cached content is fresh")
	return cmd
}

// newRefreshProgress returns a progress callback drawing a bar on w. The
// callback is safe for concurrent use.
func newRefreshProgress(w io.Writer, total int) func(model.ContentKind) {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Refreshing content...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)

	var mu sync.Mutex
	return func(kind model.ContentKind) {
		mu.Lock()
		defer mu.Unlock()
		bar.Describe(fmt.Sprintf("[cyan][bold]%s[reset]", kind))
		_ = bar.Add(1)
	}
}
