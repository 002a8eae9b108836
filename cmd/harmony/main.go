package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/harmony/internal/cli"
	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/config"
)

var version = "dev"

// rootOptions is the state shared by every command of one invocation.
type rootOptions struct {
	v       *viper.Viper
	out     io.Writer
	logger  *slog.Logger
	cfgFile string
	cfg     config.Config
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{v: viper.New(), out: out}
	config.SetDefaults(opts.v)

	cmd := &cobra.Command{
		Use:   "harmony",
		Short: "🎓 Student wellbeing and success dashboard",
		Long: `harmony: one place for an Indian college student's academics, money,
wellness and career, with AI-curated tips and rule-based recommendations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.initConfig()
		},
	}
	cmd.SetOut(out)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default: $HOME/.config/harmony/config.yaml)")
	flags.StringP("student", "s", "", "student id (or HARMONY_STUDENT)")
	flags.String("data-dir", "", "data directory for the file store")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")

	_ = opts.v.BindPFlag("student", flags.Lookup("student"))
	_ = opts.v.BindPFlag("data.dir", flags.Lookup("data-dir"))
	_ = opts.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = opts.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	cmd.AddCommand(
		profileCmd(opts),
		academicCmd(opts),
		financeCmd(opts),
		wellnessCmd(opts),
		careerCmd(opts),
		resourcesCmd(opts),
		contentCmd(opts),
		recommendCmd(opts),
		adviseCmd(opts),
		serveCmd(opts),
		migrateCmd(opts),
		versionCmd(),
	)
	return cmd
}

func main() {
	handler := cli.NewInterruptHandler(os.Stderr, "Interrupted. Everything saved so far is kept.")
	ctx, stop := handler.HandleInterrupts(context.Background())

	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()

	if err != nil && !handler.WasInterrupted() {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		os.Exit(1)
	}
}

func (o *rootOptions) initConfig() error {
	if err := config.LoadDotEnv(""); err != nil {
		return err
	}

	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		o.v.AddConfigPath(filepath.Join(home, ".config", "harmony"))
		o.v.AddConfigPath(".")
		o.v.SetConfigName("config")
		o.v.SetConfigType("yaml")
	}

	o.v.SetEnvPrefix("HARMONY")
	o.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	o.v.AutomaticEnv()

	if err := o.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	level, err := common.ParseLevel(o.v.GetString("logging.level"))
	if err != nil {
		return err
	}
	o.logger = common.SetupLogger(level, o.v.GetString("logging.format"))

	cfg, err := config.Load(o.v)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// studentID returns the selected student or a user error naming the flag.
func (o *rootOptions) studentID() (string, error) {
	id := strings.TrimSpace(o.v.GetString("student"))
	if id == "" {
		return "", common.NewUserError("Choose a student with --student or HARMONY_STUDENT.", common.ErrMissingConfig)
	}
	return id, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "harmony %s\n", version)
		},
	}
}
