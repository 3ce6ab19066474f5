package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/spf13/cobra"

	"github.com/guardian/cmdline/config"
	"github.com/guardian/cmdline/flag"
	"github.com/guardian/cmdline/log"
	"github.com/guardian/cmdline/store"
)

const (
	InternalError = 1
	InvalidArgs   = 2
)

type exitError struct {
	code int
	msg  string
	err  error
}

func (e *exitError) Error() string {
	if e.msg == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s; %v", e.msg, e.err)
}

func (e *exitError) Unwrap() error { return e.err }

func check(err error, msg string, exitCode int) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitCode, msg: msg, err: err}
}

// flagError picks the exit code for an error coming out of the flag package.
func flagError(err error, msg string) error {
	if errors.Is(err, flag.ErrUsage) || errors.Is(err, flag.ErrMissing) {
		return check(err, msg, InvalidArgs)
	}
	return check(err, msg, InternalError)
}

type storeFactory func(ctx context.Context, logger log.Logger, backend, profile, region string) (store.Store, error)

func main() {
	cmd := newRootCmd(awsStore, config.DefaultFiles)
	err := cmd.Execute()
	if err == nil {
		return
	}

	log.New(false).Infof("%v", err)

	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	os.Exit(InvalidArgs)
}

func newRootCmd(newStore storeFactory, files func() []config.File) *cobra.Command {
	var (
		argConf config.Config
		conf    config.Config
		logger  log.Logger
		profile string
		region  string
	)

	rootCmd := &cobra.Command{
		Use:           "cmdline",
		Short:         "Read typed values from a flat '-name value' / '--switch' command line",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			conf, err = config.Read(argConf, files()...)
			if err != nil {
				return check(err, "Unable to read config", InvalidArgs)
			}
			logger = log.NewWithWriters(conf.Debug, cmd.OutOrStdout(), cmd.ErrOrStderr())
			logger.Debugf("config: %+v", conf)
			return nil
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&argConf.Debug, "debug", false, "Whether to enable debug logs.")
	pf.BoolVar(&argConf.WarnOnDefault, "warn-on-default", false, "Warn on stderr whenever a default value is used.")
	pf.StringVar(&argConf.App, "app", "", "App whose remote defaults are read.")
	pf.StringVar(&argConf.Stack, "stack", "", "Stack whose remote defaults are read.")
	pf.StringVar(&argConf.Stage, "stage", "", "Stage whose remote defaults are read.")
	pf.StringVar(&argConf.DefaultsFrom, "defaults-from", "", "Remote default source: ssm or secrets.")
	pf.StringVar(&profile, "profile", "", "AWS profile for remote defaults (when running locally).")
	pf.StringVar(&region, "region", "eu-west-1", "AWS region for remote defaults.")

	scanned := func(cmd *cobra.Command, args []string, positional int) ([]string, *flag.Args, error) {
		dash := cmd.ArgsLenAtDash()
		if dash == -1 {
			dash = len(args)
		}
		if dash != positional {
			return nil, nil, check(fmt.Errorf("got %d", dash), fmt.Sprintf("expected %d arguments before --", positional), InvalidArgs)
		}
		argv := append([]string{rootCmd.Name()}, args[dash:]...)
		return args[:dash], flag.New(argv, flag.WithLogger(logger), flag.WarnOnDefault(conf.WarnOnDefault)), nil
	}

	remote := func(ctx context.Context) (store.Store, store.Service, error) {
		service := store.Service{App: conf.App, Stack: conf.Stack, Stage: conf.Stage}
		if !service.Valid() {
			return nil, service, fmt.Errorf("mandatory flag missing or empty (got app='%s', stack='%s', stage='%s')", service.App, service.Stack, service.Stage)
		}
		s, err := newStore(ctx, logger, conf.DefaultsFrom, profile, region)
		return s, service, err
	}

	getCmd := &cobra.Command{
		Use:   "get <kind> <name> -- [args...]",
		Short: "Print the value of -name (or --name) read as int, long, float, double, string or bool",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, cl, err := scanned(cmd, args, 2)
			if err != nil {
				return err
			}
			quiet, _ := cmd.Flags().GetBool("quiet")
			if quiet {
				cl = cl.Silently()
			}

			kind, err := flag.ParseKind(pos[0])
			if err != nil {
				return check(err, "Unable to read kind", InvalidArgs)
			}
			name := pos[1]

			v, ok, err := cl.Parse(kind, name)
			if err != nil {
				return flagError(err, fmt.Sprintf("unable to read -%s", name))
			}
			if !ok {
				raw, found, err := resolveDefault(cmd, conf, name, remote)
				if err != nil {
					return check(err, fmt.Sprintf("unable to resolve a default for -%s", name), InternalError)
				}
				if !found {
					return flagError(&flag.MissingArgumentError{Name: name}, "")
				}
				dflt, err := flag.Convert(kind, raw)
				if err != nil {
					return flagError(err, "")
				}
				v, err = cl.ParseOr(kind, name, dflt)
				if err != nil {
					return flagError(err, "")
				}
			}

			logger.Infof("%s", v)
			return nil
		},
	}
	getCmd.Flags().String("default", "", "Value to use when the flag is absent.")
	getCmd.Flags().Bool("quiet", false, "Never warn about using a default.")

	chooseCmd := &cobra.Command{
		Use:   "choose <parameter> --keys a,b,... -- [args...]",
		Short: "Print the value of -parameter, which must be one of --keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, cl, err := scanned(cmd, args, 1)
			if err != nil {
				return err
			}
			parameter := pos[0]
			keys, _ := cmd.Flags().GetStringSlice("keys")
			defaultKey, _ := cmd.Flags().GetString("default-key")
			fallback, _ := cmd.Flags().GetString("fallback")

			if cmd.Flags().Changed("fallback") {
				table := flag.NewMap[string]()
				for _, k := range keys {
					table.Insert(k, k)
				}
				got, err := table.FindByParameterOrDefault(cl.Silently(), parameter, fallback)
				if err != nil {
					return flagError(err, "")
				}
				logger.Infof("%s", got)
				return nil
			}

			d := flag.NewDispatcher()
			for _, k := range keys {
				key := k
				d.Insert(key, func() error {
					logger.Infof("%s", key)
					return nil
				})
			}

			if cmd.Flags().Changed("default-key") {
				err = flag.DispatchOrDefault(cl, d, parameter, defaultKey)
			} else {
				err = flag.Dispatch(cl.Silently(), d, parameter)
			}
			return flagError(err, "")
		},
	}
	chooseCmd.Flags().StringSlice("keys", nil, "Valid values for the parameter.")
	chooseCmd.Flags().String("default-key", "", "Key to use when the parameter is absent; it must be one of --keys.")
	chooseCmd.Flags().String("fallback", "", "Value to print when the parameter is absent or not one of --keys.")
	chooseCmd.MarkFlagRequired("keys")

	defaultsCmd := &cobra.Command{
		Use:   "defaults",
		Short: "Inspect defaults",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the defaults from the config file and the remote source, as '-name value' pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			local := flag.NewMap[string]()
			for k, v := range conf.Defaults {
				local.Insert(k, v)
			}
			local.ForEach(func(k, v string) {
				logger.Infof("-%s %s", k, v)
			})

			if conf.DefaultsFrom == "" {
				return nil
			}
			s, service, err := remote(cmd.Context())
			if err != nil {
				return check(err, "Unable to configure remote defaults", InvalidArgs)
			}
			params, err := s.List(cmd.Context(), service)
			if err != nil {
				return check(err, fmt.Sprintf("unable to list for service '%s'", service.Prefix()), InternalError)
			}
			for _, p := range params {
				logger.Infof("%s", p)
			}
			return nil
		},
	}
	defaultsCmd.AddCommand(listCmd)

	setConfig := &cobra.Command{
		Use:   "set-local-config",
		Short: "Save the current flags (and any --set name=value defaults) to the local config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, _ := cmd.Flags().GetStringToString("set")
			next := config.Merge(conf, config.Config{Defaults: defaults})

			if next.DefaultsFrom != "" && !(store.Service{App: next.App, Stack: next.Stack, Stage: next.Stage}).Valid() {
				in := cmd.InOrStdin()
				out := cmd.OutOrStdout()
				if next.App == "" {
					next.App = ask(in, out, "App: ")
				}
				if next.Stack == "" {
					next.Stack = ask(in, out, "Stack: ")
				}
				if next.Stage == "" {
					next.Stage = ask(in, out, "Stage: ")
				}
			}

			return check(config.Write(next), "Unable to save config", InternalError)
		},
	}
	setConfig.Flags().StringToString("set", nil, "Default values to save, e.g. --set n=42,mode=fast.")

	rootCmd.AddCommand(getCmd, chooseCmd, defaultsCmd, setConfig)
	return rootCmd
}

// resolveDefault finds a default for an absent flag: --default first, then the
// config file, then the remote store.
func resolveDefault(cmd *cobra.Command, conf config.Config, name string, remote func(context.Context) (store.Store, store.Service, error)) (string, bool, error) {
	if cmd.Flags().Changed("default") {
		v, _ := cmd.Flags().GetString("default")
		return v, true, nil
	}
	if v, ok := conf.Default(name); ok {
		return v, true, nil
	}
	if conf.DefaultsFrom == "" {
		return "", false, nil
	}

	s, service, err := remote(cmd.Context())
	if err != nil {
		return "", false, err
	}
	p, err := s.Get(cmd.Context(), service, name)
	if errors.Is(err, store.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return p.Value, true, nil
}

func ask(in io.Reader, out io.Writer, question string) string {
	fmt.Fprint(out, question)

	got := ""
	fmt.Fscanln(in, &got)

	return got
}

func awsStore(ctx context.Context, logger log.Logger, backend, profile, region string) (store.Store, error) {
	cfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithSharedConfigProfile(profile), awsConfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load default config: %w", err)
	}

	switch backend {
	case "ssm":
		return store.NewSSM(logger, ssm.NewFromConfig(cfg)), nil
	case "secrets":
		return store.NewSecretsManager(logger, secretsmanager.NewFromConfig(cfg)), nil
	default:
		return nil, fmt.Errorf("unknown defaults source '%s', expected ssm or secrets", backend)
	}
}
