package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lirical-go/lirical/internal/config"
)

// newConfigCmd manages persisted defaults for lirical analyze's own flags
// (data_dir, assembly, transcript_db, ...), not an arbitrary key-value
// store. config.Keys() is the single source of truth for which keys exist;
// set/get reject anything else.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage persisted defaults for lirical analyze",
		Long: "Show, get, or set the defaults analyze falls back to for any flag left\n" +
			"unset on the command line. Stored in ~/.lirical.yaml. Valid keys:\n  " +
			strings.Join(config.Keys(), ", "),
		Example: `  lirical config                          # show all defaults
  lirical config set assembly hg38        # change the default assembly
  lirical config get assembly             # read one default`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one of analyze's default flag values",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return &UsageError{Msg: "config set requires exactly 2 arguments: <key> <value>"}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get one of analyze's default flag values",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &UsageError{Msg: "config get requires exactly 1 argument: <key>"}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, args[0])
		},
	}
}

func isValidConfigKey(key string) bool {
	for _, k := range config.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func runConfigShow(cmd *cobra.Command) error {
	keys := config.Keys()
	sort.Strings(keys)

	any := false
	for _, k := range keys {
		if viper.IsSet(k) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", k, viper.Get(k))
			any = true
		}
	}
	if !any {
		fmt.Fprintln(cmd.OutOrStdout(), "# no defaults set; analyze uses its built-in flag defaults")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	if !isValidConfigKey(key) {
		return &UsageError{Msg: fmt.Sprintf("unknown config key %q; valid keys: %s", key, strings.Join(config.Keys(), ", "))}
	}

	if key == config.KeyFilterOnFilterColumn {
		switch value {
		case "true", "yes", "on":
			viper.Set(key, true)
		case "false", "no", "off":
			viper.Set(key, false)
		default:
			return &UsageError{Msg: fmt.Sprintf("%s must be a boolean (true/false), got %q", key, value)}
		}
	} else {
		viper.Set(key, value)
	}

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".lirical.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(cmd *cobra.Command, key string) error {
	if !isValidConfigKey(key) {
		return &UsageError{Msg: fmt.Sprintf("unknown config key %q; valid keys: %s", key, strings.Join(config.Keys(), ", "))}
	}

	if !viper.IsSet(key) {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), viper.Get(key))
	return nil
}
