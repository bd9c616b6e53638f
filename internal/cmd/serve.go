package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MeKo-Tech/colorsync/assets"
	"github.com/MeKo-Tech/colorsync/internal/converter"
	"github.com/MeKo-Tech/colorsync/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion API, swatches and demo UI",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (host:port)")
	serveCmd.Flags().String("initial", "", "Initial color (default #1976d2)")
	serveCmd.Flags().String("cache-control", "public, max-age=86400", "Cache-Control header for served swatches")
	serveCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")
	serveCmd.Flags().Duration("event-interval", 250*time.Millisecond, "Polling interval for the state event stream")

	mustBind := func(key string, name string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag: %v", err))
		}
	}

	mustBind("serve.addr", "addr")
	mustBind("serve.initial", "initial")
	mustBind("serve.cache_control", "cache-control")
	mustBind("serve.png_compression", "png-compression")
	mustBind("serve.event_interval", "event-interval")
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	addr := viper.GetString("serve.addr")
	initial := viper.GetString("serve.initial")

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer closeHistory(store)

	convCfg := converter.Config{Initial: initial}
	if store != nil {
		convCfg.Recorder = store
	}
	conv, err := converter.New(convCfg, logger)
	if err != nil {
		return err
	}

	web, err := assets.WebFS()
	if err != nil {
		return fmt.Errorf("failed to load demo assets: %w", err)
	}

	srv, err := server.New(server.Config{
		Converter:      conv,
		History:        store,
		Static:         web,
		CacheControl:   viper.GetString("serve.cache_control"),
		PNGCompression: viper.GetString("serve.png_compression"),
		EventInterval:  viper.GetDuration("serve.event_interval"),
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("colorsync server listening",
		"addr", addr,
		"initial", conv.Current().String(),
		"history", store != nil,
	)

	httpSrv := &http.Server{Addr: addr, Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Received interrupt signal, shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}
