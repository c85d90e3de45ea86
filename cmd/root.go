package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/tutor/internal/app"
	"github.com/zhubert/tutor/internal/config"
	"github.com/zhubert/tutor/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	apiBase               string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Terminal client for the English tutor chat and quiz service",
	Long: `Tutor is a terminal client for an English tutoring backend.
Chat with the tutor, take quizzes generated from your conversations and
review how past quizzes went.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "", "Backend base URL for this run (overrides config and "+config.EnvAPIBase+")")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("tutor %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("tutor %s\n", version)
}

// loadConfig reads the config file, honouring .env and the --api flag.
func loadConfig() (*config.Config, error) {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if apiBase != "" {
		if err := cfg.OverrideAPIBase(apiBase); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	// Create and run the app
	m := app.New(cfg, nil)
	p := tea.NewProgram(m)

	_, err = p.Run()
	// The profile cache is dropped even when the program failed
	m.Shutdown()
	if err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
