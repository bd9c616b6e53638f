package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
	"github.com/MeKo-Tech/colorsync/internal/converter"
	"github.com/MeKo-Tech/colorsync/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert a file of colors, one per line",
	Long: `Convert every non-empty line of the input file in parallel.

Each line may be hex, rgb(...) or hsl(...). Output is one tab separated
line per input: line number, input, hex, rgb and hsl.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("input", "i", "-", "Input file (- for stdin)")
	batchCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	batchCmd.Flags().Bool("progress", false, "Show progress bar on stderr")
	batchCmd.Flags().Bool("allow-failures", false, "Exit successfully even if some lines fail to convert")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"batch.input", "input"},
		{"batch.workers", "workers"},
		{"batch.progress", "progress"},
		{"batch.allow_failures", "allow-failures"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, batchCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := viper.GetString("batch.input")
	workers := viper.GetInt("batch.workers")
	showProgress := viper.GetBool("batch.progress")
	allowFailures := viper.GetBool("batch.allow_failures")

	if logger == nil {
		initLogging()
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var in io.Reader = cmd.InOrStdin()
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	tasks, err := readBatchTasks(in)
	if err != nil {
		return err
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer closeHistory(store)

	logger.Info("Starting batch conversion", "input", input, "colors", len(tasks), "workers", workers)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	progress := worker.NewProgress(cmd.ErrOrStderr(), len(tasks), showProgress)
	pool := worker.New(worker.Config{
		Workers:    workers,
		Processor:  worker.TextProcessor{Prev: colormodel.Default()},
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	failed, err := writeBatchResults(cmd.OutOrStdout(), results)
	if err != nil {
		return err
	}

	if store != nil {
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			if err := store.Record(r.Task.Kind.String(), r.Task.Raw, r.Color); err != nil {
				logger.Warn("Failed to record history", "line", r.Task.Line, "error", err)
			}
		}
	}

	logger.Info(progress.Summary())

	if failed > 0 {
		if allowFailures {
			logger.Warn("Some colors failed to convert, but continuing due to --allow-failures flag", "failed_count", failed)
			return nil
		}
		return fmt.Errorf("%d colors failed to convert", failed)
	}
	return nil
}

// readBatchTasks turns every non-empty line into a task, keeping the
// 1-based line number.
func readBatchTasks(r io.Reader) ([]worker.Task, error) {
	var tasks []worker.Task
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		tasks = append(tasks, worker.Task{Line: line, Kind: converter.DetectKind(raw), Raw: raw})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return tasks, nil
}

func writeBatchResults(w io.Writer, results []worker.Result) (int, error) {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Error("Color conversion failed", "line", r.Task.Line, "input", r.Task.Raw, "error", r.Err)
			if _, err := fmt.Fprintf(w, "%d\t%s\terror: %v\n", r.Task.Line, r.Task.Raw, r.Err); err != nil {
				return failed, err
			}
			continue
		}
		css := r.Color.CSS()
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.Task.Line, r.Task.Raw, css.Hex, css.RGB, css.HSL); err != nil {
			return failed, err
		}
	}
	return failed, nil
}
