package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eunmann/algobench/internal/config"
	"github.com/eunmann/algobench/internal/logctx"
	"github.com/eunmann/algobench/pkg/logging"
)

// RootOptions holds global state shared by all commands.
type RootOptions struct {
	ConfigFile string
	EnvFile    string

	v *viper.Viper
}

// NewRootCommand creates the root command for the algobench CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{v: config.New()}

	cmd := &cobra.Command{
		Use:   "algobench",
		Short: "Benchmark sorting and matrix multiplication strategies",
		Long: `algobench generates synthetic datasets, times sorting strategies
(bubble, merge, quick, baseline) and matrix multiplication strategies
(naive, optimized, strassen) over them, and stores every result and timing
as flat text under Result_of_<algorithm>/ directories.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fmt.Errorf("usage: %s <command> [flags]\ncommands: %s", cmd.Name(), strings.Join(commandNames(cmd), ", "))
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ConfigFile, "config", "", "config file (default ./algobench.yaml if present)")
	pf.StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before reading ALGOBENCH_* variables")
	pf.Bool("debug", false, "enable debug logging")
	pf.Bool("human", false, "human-readable console logs (default when stderr is a terminal)")
	pf.String("log-file", "", "also write JSON logs to this file, rotated")
	mustBind(opts.v, config.KeyDebug, pf.Lookup("debug"))
	mustBind(opts.v, config.KeyHuman, pf.Lookup("human"))
	mustBind(opts.v, config.KeyLogFile, pf.Lookup("log-file"))

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewSortCommand(opts))
	cmd.AddCommand(NewMultiplyCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewPublishCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))

	return cmd
}

// setup loads .env and the config file, configures logging and tags the
// command context with a run ID.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(o.EnvFile); err != nil {
		return err
	}
	if err := config.ReadFile(o.v, o.ConfigFile); err != nil {
		return err
	}

	human := logging.StderrIsTerminal()
	if o.v.IsSet(config.KeyHuman) {
		human = o.v.GetBool(config.KeyHuman)
	}
	logging.Init(logging.Options{
		Debug: o.v.GetBool(config.KeyDebug),
		Human: human,
		File:  o.v.GetString(config.KeyLogFile),
	})

	ctx, runID := logctx.WithRun(cmd.Context())
	cmd.SetContext(ctx)

	log := logctx.FromContext(ctx)
	log.Debug().
		Str("command", cmd.CommandPath()).
		Str("run_id", runID).
		Str("config_file", o.v.ConfigFileUsed()).
		Msg("starting")
	return nil
}

// bind ties each flag of cmd to a config key. Called from RunE so only the
// executing command's flags are bound; sibling commands share keys.
func (o *RootOptions) bind(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("internal: no flag --%s on %s", flag, cmd.Name())
		}
		if err := o.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

// load binds the command's flags and decodes the merged configuration.
func (o *RootOptions) load(cmd *cobra.Command, keys map[string]string) (config.Config, error) {
	if err := o.bind(cmd, keys); err != nil {
		return config.Config{}, err
	}
	return config.Decode(o.v)
}

func mustBind(v *viper.Viper, key string, f *pflag.Flag) {
	if f == nil {
		panic(errors.New("cli: binding missing flag for " + key))
	}
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func commandNames(cmd *cobra.Command) []string {
	var names []string
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	return names
}
