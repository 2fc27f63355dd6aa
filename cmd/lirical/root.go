package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes, matching the teacher's ExitSuccess/ExitError/ExitUsage scheme.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// UsageError marks a CLI invocation error (unknown or malformed flag,
// missing required flag, wrong argument count for config get/set) as distinct from a precondition failure surfaced by the
// engine, so Execute can map it to ExitUsage rather than ExitError.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, usageErr.Error())
			return ExitUsage
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lirical",
		Short:         "Rank candidate Mendelian diseases from phenotype and genotype evidence",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Msg: err.Error()}
	})

	cmd.PersistentFlags().String("config", "", "config file (default ~/.lirical.yaml)")
	_ = viper.BindPFlag("config_file", cmd.PersistentFlags().Lookup("config"))

	cobra.OnInitialize(initViper)

	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newDownloadCmd())
	cmd.AddCommand(newConfigCmd())
	return cmd
}

// initViper binds ~/.lirical.yaml (or --config) and LIRICAL_*
// environment variables into viper. Absence of a config file is not an
// error: every value it could supply also has a command-line flag.
func initViper() {
	if cfgFile := viper.GetString("config_file"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".lirical")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("LIRICAL")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
