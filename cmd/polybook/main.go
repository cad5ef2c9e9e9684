package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"polybook/internal/app"
	"polybook/internal/config"
	"polybook/internal/logx"
)

func main() {
	cfg := config.FromEnv()
	log := logx.New(os.Stdout, logx.ParseLevel(cfg.LogLevel))

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}
	defer application.Close()

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           application.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.ListenAddr).Str("data_dir", cfg.DataDir).Msg("polybook listening")
	log.Info().Str("url", adminURL(cfg.ListenAddr)).Msg("admin endpoints need X-Admin-Token from data_dir/admin.token")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("serve")
	}
}

func adminURL(listenAddr string) string {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return fmt.Sprintf("http://%s/api/settings", listenAddr)
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%s/api/settings", host, port)
}
