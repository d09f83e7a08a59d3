// Package main provides the chatlens CLI entry point.
// chatlens parses exported chat transcripts and reports statistics,
// conversation patterns, and shared locations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chatlens/chatlens/cmd"
	"github.com/chatlens/chatlens/config"
	"github.com/chatlens/chatlens/pkg/buildinfo"
	"github.com/chatlens/chatlens/pkg/logging"
)

// Global flags and state.
var (
	cfgFile      string
	outputFormat string
	debug        bool

	// deps is shared by all subcommands; its config is loaded once in the
	// persistent pre-run.
	deps = cmd.DefaultDeps()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chatlens",
	Short: "chatlens - chat transcript analyzer",
	Long: `chatlens parses exported chat transcripts (plain text or zip, Android or
iOS line format) and reports message statistics, conversation patterns, and
shared locations.

COMMON WORKFLOWS:
  Inspect an export:   chatlens parse chat.txt
  Message statistics:  chatlens stats chat.txt
  Response behavior:   chatlens patterns chat.txt
  Shared locations:    chatlens locations chat.txt
  Find a message:      chatlens search chat.txt "keyword"

All commands accept -o json or -o yaml for machine-readable output.`,
	SilenceUsage: true,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		if c.Name() == "version" || c.Name() == "help" || c.Name() == "completion" {
			return nil
		}

		var (
			cfg *config.CLIConfig
			err error
		)
		if cfgFile != "" {
			path, perr := config.ExpandPath(cfgFile)
			if perr != nil {
				return perr
			}
			cfg, err = config.LoadConfigFile(path)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		// Override with command-line flags.
		if outputFormat != "" {
			format := config.OutputFormat(outputFormat)
			if !format.IsValid() {
				return fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", outputFormat)
			}
			cfg.OutputFormat = format
		}
		if debug {
			cfg.Debug = true
		}

		level := logging.LevelWarn
		if cfg.Debug {
			level = logging.LevelDebug
		}
		deps.Config = cfg
		deps.Logger = logging.NewLogger(&logging.Config{Level: level})
		return nil
	},
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(c *cobra.Command, args []string) error {
		info := buildinfo.Get("chatlens")
		out := c.OutOrStdout()
		fmt.Fprintf(out, "chatlens version %s\n", info.Version)
		fmt.Fprintf(out, "  commit:     %s\n", info.Commit)
		fmt.Fprintf(out, "  built:      %s\n", info.BuildTime)
		fmt.Fprintf(out, "  go version: %s\n", info.GoVersion)
		return nil
	},
}

// configCmd manages CLI configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage chatlens configuration",
}

// configShowCmd displays current configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(c *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Printf("Configuration file: %s\n\n", path)

		fmt.Printf("Output format:  %s\n", deps.Config.OutputFormat)
		fmt.Printf("Debug:          %t\n", deps.Config.Debug)
		fmt.Printf("Analysis:\n")
		fmt.Printf("  Conversation gap:  %.1fh\n", deps.Config.Analysis.ConversationGapHours)
		fmt.Printf("  Max response time: %.0fm\n", deps.Config.Analysis.MaxResponseTimeMinutes)
		fmt.Printf("  Min word length:   %d\n", deps.Config.Analysis.MinWordLength)
		fmt.Printf("Parser:\n")
		fmt.Printf("  Media indicators:  %d\n", len(deps.Config.Parser.MediaIndicators))
		fmt.Printf("  System phrases:    %d\n", len(deps.Config.Parser.SystemPhrases))
		return nil
	},
}

// configInitCmd initializes configuration.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	RunE: func(c *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Configuration file already exists: %s\n", path)
			fmt.Println("Use 'chatlens config show' to view current settings.")
			return nil
		}

		defaultCfg := config.DefaultConfig()
		if err := config.SaveConfig(defaultCfg); err != nil {
			return fmt.Errorf("saving configuration: %w", err)
		}

		fmt.Printf("Created configuration file: %s\n", path)
		fmt.Println("\nDefault settings:")
		fmt.Printf("  Output format:     %s\n", defaultCfg.OutputFormat)
		fmt.Printf("  Conversation gap:  %.1fh\n", defaultCfg.Analysis.ConversationGapHours)
		fmt.Printf("  Max response time: %.0fm\n", defaultCfg.Analysis.MaxResponseTimeMinutes)
		return nil
	},
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Available keys:
  output_format              - Default output format (text, json, yaml)
  debug                      - Enable debug logging (true/false)
  conversation_gap_hours     - Silence hours that start a new conversation
  max_response_time_minutes  - Longest gap still counted as a response
  min_word_length            - Minimum word length for frequency analysis

Examples:
  chatlens config set output_format json
  chatlens config set conversation_gap_hours 12
  chatlens config set min_word_length 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		currentCfg, err := config.LoadConfig()
		if err != nil {
			currentCfg = config.DefaultConfig()
		}

		if err := currentCfg.Set(key, value); err != nil {
			return err
		}
		if err := config.SaveConfig(currentCfg); err != nil {
			return fmt.Errorf("saving configuration: %w", err)
		}

		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.chatlens/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "", "output format: text, json, yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(cmd.NewParseCommand(deps))
	rootCmd.AddCommand(cmd.NewStatsCommand(deps))
	rootCmd.AddCommand(cmd.NewPatternsCommand(deps))
	rootCmd.AddCommand(cmd.NewLocationsCommand(deps))
	rootCmd.AddCommand(cmd.NewSearchCommand(deps))

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
