package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/harmony/internal/advisor"
	"github.com/Veraticus/harmony/internal/cli"
)

func adviseCmd(opts *rootOptions) *cobra.Command {
	var (
		domainName  string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "advise [question...]",
		Short: "Ask the advisor about wellbeing, studies, career or money",
		Long: `Ask the advisor a question. The area is guessed from the question unless
--domain is given. With --interactive, keep asking until an empty line or Ctrl-D.`,
		Example: `  harmony advise "how do I prepare for campus placements"
  harmony advise --domain financial "should I take an education loan"
  harmony advise -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var domain advisor.Domain
			if domainName != "" {
				d, err := advisor.ParseDomain(domainName)
				if err != nil {
					return err
				}
				domain = d
			}
			if !interactive && len(args) == 0 {
				return errors.New("ask a question, or use --interactive")
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
				student := advisor.StudentContext(p)
				out := cmd.OutOrStdout()

				if !interactive {
					return ask(ctx, out, a.advisor, strings.Join(args, " "), domain, student)
				}
				return chat(ctx, cmd.InOrStdin(), out, a.advisor, domain, student)
			})
		},
	}
	cmd.Flags().StringVarP(&domainName, "domain", "d", "", "mental_health, academic, career or financial")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask several questions in a row")
	return cmd
}

func ask(ctx context.Context, out io.Writer, adv *advisor.Advisor, question string, domain advisor.Domain, student map[string]string) error {
	advice, err := adv.Advise(ctx, question, domain, student)
	if err != nil {
		return err
	}
	title := cli.AdvisorIcon + " " + cli.FormatDomain(string(advice.Domain))
	fmt.Fprintln(out, cli.RenderBox(title, advice.Text))
	if advice.Fallback {
		fmt.Fprintln(out, cli.FormatWarning("The AI advisor is unavailable, so this is general guidance."))
	}
	return nil
}

func chat(ctx context.Context, in io.Reader, out io.Writer, adv *advisor.Advisor, domain advisor.Domain, student map[string]string) error {
	questions := cli.NewQuestions(in, out, "You")
	defer questions.Close()

	fmt.Fprintln(out, cli.FormatTitle("Advisor"))
	fmt.Fprintln(out, cli.FormatInfo("Ask anything. An empty line ends the chat."))

	for {
		question, ok, err := questions.Next(ctx)
		if err != nil || !ok {
			return err
		}
		if err := ask(ctx, out, adv, question, domain, student); err != nil {
			return err
		}
	}
}
