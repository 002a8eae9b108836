package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/harmony/internal/cli"
	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/ofx"
	"github.com/Veraticus/harmony/internal/pattern"
	"github.com/Veraticus/harmony/internal/tracker"
)

func financeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "finance",
		Aliases: []string{"money"},
		Short:   "Transactions, budget, aid and savings goals",
	}
	cmd.AddCommand(
		financeAddCmd(opts),
		financeListCmd(opts),
		budgetCmd(opts),
		financeSummaryCmd(opts),
		importOFXCmd(opts),
		aidCmd(opts),
		savingsCmd(opts),
	)
	return cmd
}

func financeAddCmd(opts *rootOptions) *cobra.Command {
	var (
		tx     model.Transaction
		date   string
		income bool
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record an expense, or income with --income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil || amount <= 0 {
				return common.NewUserError("amount must be a positive number", common.ErrInvalidInput)
			}
			if !income {
				amount = -amount
			}
			return opts.withStudent(cmd.Context(), func(a *app, s *tracker.Student) error {
				d, err := dateOrToday(date, a.now())
				if err != nil {
					return err
				}
				tx.Amount = amount
				tx.Date = d
				if tx.Category == "" {
					tx.Category, _ = pattern.Default().Category(tx)
				}
				added, err := s.Finance.AddTransaction(cmd.Context(), tx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Recorded %s in %s", cli.FormatRupees(added.Amount), added.Category)))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&tx.Category, "category", "c", "", "category (guessed from the description when omitted)")
	cmd.Flags().StringVarP(&tx.Description, "description", "m", "", "description")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&income, "income", false, "record income instead of an expense")
	return cmd
}

func financeListCmd(opts *rootOptions) *cobra.Command {
	var (
		from, to string
		filter   tracker.TransactionFilter
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if filter.Start, err = model.ParseDate(from); err != nil {
				return common.NewUserError(err.Error(), common.ErrInvalidInput)
			}
			if filter.End, err = model.ParseDate(to); err != nil {
				return common.NewUserError(err.Error(), common.ErrInvalidInput)
			}
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				txns, err := s.Finance.Transactions(cmd.Context(), filter)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(txns))
				for _, t := range txns {
					rows = append(rows, []string{t.Date.String(), cli.FormatRupees(t.Amount), t.Category, t.Description})
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.Table([]string{"Date", "Amount", "Category", "Description"}, rows))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&filter.Category, "category", "c", "", "only this category")
	return cmd
}

func budgetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "budget [category=amount...]",
		Short: "Show this month's spending against the budget, or replace the budget",
		Example: `  harmony finance budget Food=4000 Transport=1200 Books=800
  harmony finance budget`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return opts.withStudent(ctx, func(_ *app, s *tracker.Student) error {
				if len(args) > 0 {
					budget, err := parseBudget(args)
					if err != nil {
						return err
					}
					if err := s.Finance.SetBudget(ctx, budget); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Budget saved, "+cli.FormatRupees(budget.Total())+" a month"))
				}

				budget, err := s.Finance.Budget(ctx)
				if err != nil {
					return err
				}
				spent, err := s.Finance.MonthlySpending(ctx)
				if err != nil {
					return err
				}
				adherence, err := s.Finance.BudgetAdherence(ctx)
				if err != nil {
					return err
				}

				categories := make([]string, 0, len(budget))
				for c := range budget {
					categories = append(categories, c)
				}
				sort.Strings(categories)
				rows := make([][]string, 0, len(categories))
				for _, c := range categories {
					rows = append(rows, []string{c, cli.FormatRupees(budget[c]), cli.FormatRupees(spent[c])})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, cli.Table([]string{"Category", "Budget", "Spent"}, rows))
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Budget adherence %.0f%%", adherence)))
				return nil
			})
		},
	}
}

func parseBudget(args []string) (model.Budget, error) {
	budget := model.Budget{}
	for _, arg := range args {
		category, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, common.NewUserError(fmt.Sprintf("%q: want category=amount", arg), common.ErrInvalidInput)
		}
		amount, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, common.NewUserError(fmt.Sprintf("%q: amount is not a number", arg), common.ErrInvalidInput)
		}
		budget[strings.TrimSpace(category)] = amount
	}
	return budget, nil
}

func financeSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "This month's income, expenses and trend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				sum, err := s.Finance.Summary(cmd.Context())
				if err != nil {
					return err
				}
				rows := [][]string{
					{"Balance", cli.FormatRupees(sum.Balance)},
					{"Income this month", cli.FormatRupees(sum.MonthIncome)},
					{"Expenses this month", cli.FormatRupees(sum.MonthExpenses)},
					{"Expenses last month", cli.FormatRupees(sum.PreviousExpenses)},
					{"Trend", fmt.Sprintf("%+.1f%%", sum.ExpenseTrend)},
					{"Budget adherence", fmt.Sprintf("%.0f%%", sum.BudgetAdherence)},
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, cli.RenderBox(cli.ChartIcon+" Finances", cli.Table([]string{"", ""}, rows)))

				if len(sum.ExpensesByCategory) > 0 {
					cats := make([][]string, 0, len(sum.ExpensesByCategory))
					for _, c := range sum.ExpensesByCategory {
						cats = append(cats, []string{c.Category, cli.FormatRupees(c.Total)})
					}
					fmt.Fprintln(out, cli.Table([]string{"Category", "Spent"}, cats))
				}
				return nil
			})
		},
	}
}

func importOFXCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Import transactions from OFX/QFX bank exports",
		Long: `Import transactions from OFX or QFX files exported from your bank.
Transactions already imported are skipped, so overlapping statements are safe.

Examples:
  harmony finance import-ofx ~/Downloads/sbi_jan.ofx
  harmony finance import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandGlobs(args, opts.logger)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			parser := ofx.NewParser(opts.logger)

			var all []model.Transaction
			for _, path := range files {
				f, err := os.Open(path)
				if err != nil {
					opts.logger.Error("Failed to open file", "file", path, "error", err)
					continue
				}
				txns, err := parser.ParseFile(ctx, f)
				_ = f.Close()
				if err != nil {
					opts.logger.Error("Failed to parse OFX file", "file", path, "error", err)
					continue
				}
				opts.logger.Info("Processed file", "file", filepath.Base(path), "transactions_found", len(txns))
				all = append(all, txns...)
			}
			if len(all) == 0 {
				return fmt.Errorf("no transactions found in %d file(s)", len(files))
			}

			categorized := pattern.Default().Categorize(all)
			opts.logger.Info("Categorized transactions", "count", categorized, "total", len(all))

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions parsed, nothing saved", len(all))))
				return nil
			}
			return opts.withStudent(ctx, func(_ *app, s *tracker.Student) error {
				added, err := s.Finance.Import(ctx, all)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions, %d already present", added, len(all)-added)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Parse and categorize without saving")
	return cmd
}

// expandGlobs resolves each pattern, keeping literal paths that exist.
func expandGlobs(patterns []string, logger *slog.Logger) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			logger.Warn("No files found matching pattern", "pattern", pattern)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}

func aidCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aid",
		Short: "Scholarships, loans and grants you hold or applied for",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				aid, err := s.Finance.Aid(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(aid))
				for _, a := range aid {
					rows = append(rows, []string{a.Type, a.Name, a.Provider, cli.FormatRupees(a.Amount), a.Status, a.Deadline.String()})
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.Table([]string{"Type", "Name", "Provider", "Amount", "Status", "Deadline"}, rows))
				return nil
			})
		},
	}

	var aid model.FinancialAid
	var deadline string
	add := &cobra.Command{
		Use:   "add",
		Short: "Record financial aid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if aid.Deadline, err = model.ParseDate(deadline); err != nil {
				return common.NewUserError(err.Error(), common.ErrInvalidInput)
			}
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				added, err := s.Finance.AddAid(cmd.Context(), aid)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Recorded "+added.Name))
				return nil
			})
		},
	}
	add.Flags().StringVar(&aid.Type, "type", "Scholarship", "Scholarship, Loan, Grant, ...")
	add.Flags().StringVar(&aid.Name, "name", "", "name")
	add.Flags().StringVar(&aid.Provider, "provider", "", "provider")
	add.Flags().StringVar(&aid.Status, "status", "Applied", "status")
	add.Flags().Float64Var(&aid.Amount, "amount", 0, "amount in rupees")
	add.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	_ = add.MarkFlagRequired("name")

	cmd.AddCommand(add)
	return cmd
}

func savingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Savings goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				goals, err := s.Finance.Goals(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(goals))
				for _, g := range goals {
					rows = append(rows, []string{
						g.ID, g.Name,
						cli.FormatRupees(g.CurrentAmount) + " / " + cli.FormatRupees(g.TargetAmount),
						string(g.Status), g.TargetDate.String(),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.Table([]string{"ID", "Goal", "Saved", "Status", "Target date"}, rows))
				return nil
			})
		},
	}

	var goal model.FinancialGoal
	var target string
	add := &cobra.Command{
		Use:   "add",
		Short: "Start a savings goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if goal.TargetDate, err = model.ParseDate(target); err != nil {
				return common.NewUserError(err.Error(), common.ErrInvalidInput)
			}
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				added, err := s.Finance.AddGoal(cmd.Context(), goal)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Added goal "+added.ID))
				return nil
			})
		},
	}
	add.Flags().StringVar(&goal.Name, "name", "", "goal name")
	add.Flags().Float64Var(&goal.TargetAmount, "target", 0, "target amount in rupees")
	add.Flags().StringVar(&target, "by", "", "target date (YYYY-MM-DD)")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("target")

	update := &cobra.Command{
		Use:   "save <id> <amount>",
		Short: "Set the amount saved toward a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return common.NewUserError("amount must be a number", common.ErrInvalidInput)
			}
			return opts.withStudent(cmd.Context(), func(_ *app, s *tracker.Student) error {
				ok, err := s.Finance.UpdateGoalAmount(cmd.Context(), args[0], amount)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no goal with id %s", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Goal updated"))
				return nil
			})
		},
	}

	cmd.AddCommand(add, update)
	return cmd
}
