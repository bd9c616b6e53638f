package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/MeKo-Tech/colorsync/internal/history"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear recent conversions",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().Bool("clear", false, "Delete all history entries")
	historyCmd.Flags().Bool("json", false, "Print entries as JSON")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"history.limit", "limit"},
		{"history.clear", "clear"},
		{"history.json", "json"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, historyCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit := viper.GetInt("history.limit")
	clearAll := viper.GetBool("history.clear")
	asJSON := viper.GetBool("history.json")

	if logger == nil {
		initLogging()
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("history is disabled (set --history-db)")
	}
	defer closeHistory(store)

	if clearAll {
		if err := store.Clear(); err != nil {
			return err
		}
		logger.Info("History cleared", "path", store.Path())
		return nil
	}

	entries, err := store.Recent(limit)
	if err != nil {
		return err
	}
	return writeHistory(cmd.OutOrStdout(), entries, asJSON)
}

func writeHistory(w io.Writer, entries []history.Entry, asJSON bool) error {
	if asJSON {
		if entries == nil {
			entries = []history.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Kind, e.Input, e.Hex, e.RGB, e.HSL); err != nil {
			return err
		}
	}
	return nil
}
