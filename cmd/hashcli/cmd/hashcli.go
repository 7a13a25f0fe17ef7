package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"massnet.org/hashcore/errors"
	"massnet.org/hashcore/logging"
)

// app carries the state shared by the commands of one root command.
type app struct {
	v               *viper.Viper
	in              io.Reader
	readSecret      func(prompt string) ([]byte, error)
	cfgFile         string
	usingConfigFile bool
	config          *Config
}

// NewRootCmd builds the root command and all of its subcommands.
func NewRootCmd() *cobra.Command {
	return newApp(os.Stdin).rootCmd()
}

func newApp(in io.Reader) *app {
	return &app{
		v:          viper.New(),
		in:         in,
		readSecret: promptSecret,
		config:     new(Config),
	}
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           filepath.Base(os.Args[0]),
		Short:         `Command line client for SHA-256, HMAC-SHA256 and Merkle roots`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.initConfig()
			a.initLogger()
			a.logBasicInfo()
			return nil
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.New(errors.ErrCLIInvalidParameter, err)
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./.hashcli.json)")
	flags.String("log_dir", defaultLogDir, "directory for log files")
	flags.String("log_level", defaultLogLevel, "level of logs (debug, info, warn, error, fatal, panic)")
	flags.Int("workers", 0, "size of the hashing worker pool (default is the number of CPUs)")

	a.v.BindPFlag("log_dir", flags.Lookup("log_dir"))
	a.v.BindPFlag("log_level", flags.Lookup("log_level"))
	a.v.BindPFlag("workers", flags.Lookup("workers"))

	rootCmd.AddCommand(a.newHashCmd())
	rootCmd.AddCommand(a.newHmacCmd())
	rootCmd.AddCommand(a.newMerkleCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute builds the root command and runs it with os.Args.
// This is called by main.main().
func Execute() {
	// Use all processor cores.
	runtime.GOMAXPROCS(runtime.NumCPU())

	os.Exit(run(NewRootCmd(), os.Stderr))
}

// run executes rootCmd and returns the process exit code. Errors go to stderr
// and the log file, stdout only carries command results.
func run(rootCmd *cobra.Command, stderr io.Writer) int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		logging.VPrint(logging.ERROR, "fail on RootCmd.Execute", logging.LogFormat{"err": err})
		return exitCode(err)
	}
	return 0
}

// checkArgs reports argument validation failures as invalid parameters.
func checkArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.New(errors.ErrCLIInvalidParameter, err)
		}
		return nil
	}
}

// exitCode maps the CLI error code classes to process exit codes.
func exitCode(err error) int {
	switch code := errors.Code(pkgerrors.Cause(err)); {
	case code >= 1500 && code < 1600:
		return 2
	case code >= 1600 && code < 1700:
		return 3
	default:
		return 1
	}
}
