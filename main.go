// Package main provides the entry point for the audiooverview CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "audiooverview [SCRIPT]",
		Short: "Narrate dialogue scripts, one voice per character",
		Long: paragraph(
			fmt.Sprintf("\nTurn a %s script into a single MP3, giving every speaker their own voice.", keyword("Name: line")),
		),
		Example: paragraph("audiooverview script.txt\n" +
			"audiooverview --voice Alice=nova --voice Bob=onyx script.txt\n" +
			"cat script.txt | audiooverview --engine tone -o - > out.mp3"),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.MaximumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveDefault
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(*cobra.Command) error {
	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config file: %w", err)
		}
		log.Debug("Using configuration file", "path", configFile)
	}
	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		_ = closer()
		os.Exit(1)
	}
	stop()
	_ = closer()
}

func init() {
	// .env is optional
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env")
	}

	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug output to the log file")
	rootCmd.PersistentFlags().StringVarP(&engineFlag, "engine", "e", "", "speech engine: openai or tone")
	rootCmd.PersistentFlags().StringVar(&codecFlag, "codec", "native", "MP3 codec: native or ffmpeg")

	rootCmd.Flags().StringArrayVarP(&voiceFlags, "voice", "v", nil, "assign a voice to a speaker as Name=voice (repeatable)")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "script_output.mp3", `output file, "-" for stdout`)
	rootCmd.Flags().BoolVarP(&playFlag, "play", "p", false, "play the narration when done")
	rootCmd.Flags().BoolVar(&strictFlag, "strict", false, "require a --voice for every speaker")
	rootCmd.Flags().Bool("no-cache", false, "synthesize repeated lines every time")

	// Config bindings
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("engine", rootCmd.PersistentFlags().Lookup("engine"))
	_ = viper.BindPFlag("codec", rootCmd.PersistentFlags().Lookup("codec"))
	_ = viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("cache.disabled", rootCmd.Flags().Lookup("no-cache"))

	rootCmd.AddCommand(configCmd, manCmd, speakersCmd, inspectCmd, voicesCmd, serveCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "audiooverview")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "audiooverview")}, dirs...)
	}

	if c := os.Getenv("AUDIOOVERVIEW_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("audiooverview")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("audiooverview")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "audiooverview.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
