package cmd

import (
	"fmt"
	"os"

	"github.com/MeKo-Tech/colorsync/internal/history"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "colorsync",
	Short: "Keep HEX, RGB and HSL representations of a color in sync",
	Long: `ColorSync converts colors between HEX, RGB and HSL notation.

Any one representation can be edited and the other two are derived from it.
Conversions can be run one at a time, in batches, served over HTTP, and
rendered as palettes or PNG swatches.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("history-db", "colorsync.db", "SQLite database for conversion history (empty disables history)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")

	if err := viper.BindPFlag("history_db", rootCmd.PersistentFlags().Lookup("history-db")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("COLORSYNC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// openHistory opens the configured history database. It returns nil when
// history is disabled.
func openHistory() (*history.Store, error) {
	path := viper.GetString("history_db")
	if path == "" {
		return nil, nil
	}
	store, err := history.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history %s: %w", path, err)
	}
	logger.Debug("History opened", "path", path)
	return store, nil
}

func closeHistory(store *history.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("Failed to close history", "path", store.Path(), "error", err)
	}
}
