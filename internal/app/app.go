package app

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"polybook/internal/book"
	"polybook/internal/config"
	"polybook/internal/configstore"
	"polybook/internal/db"
	"polybook/internal/explorer"
	"polybook/internal/web"
)

type App struct {
	store *db.Store
	ex    *explorer.Explorer
	h     http.Handler

	adminToken string
	closeOnce  sync.Once
}

func New(cfg config.Config, log zerolog.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	token, created, err := loadOrInitAdminToken(cfg.DataDir, cfg.AdminToken)
	if err != nil {
		return nil, err
	}
	if created {
		log.Info().Str("data_dir", cfg.DataDir).Msg("generated admin token")
	}

	conf, err := configstore.New(cfg.ConfigPath, configstore.Config{
		BookPath:  cfg.BookPath,
		MinWeight: cfg.MinWeight,
	})
	if err != nil {
		return nil, err
	}

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	sel := book.NewRandomSelector()
	if cfg.Seed != 0 {
		sel = book.NewSelector(rand.NewPCG(cfg.Seed, cfg.Seed))
	}
	ex := explorer.New(conf, store, sel, log)
	h := web.NewHandler(ex, conf, store, token, log)

	return &App{
		store:      store,
		ex:         ex,
		h:          h.Routes(),
		adminToken: token,
	}, nil
}

func (a *App) Router() http.Handler {
	return a.h
}

func (a *App) AdminToken() string {
	return a.adminToken
}

func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.ex.Close()
		_ = a.store.Close()
	})
}
