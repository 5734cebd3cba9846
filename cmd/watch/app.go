package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/vignesh678/stock-glass-visualizer/internal/catalog"
	"github.com/vignesh678/stock-glass-visualizer/internal/client"
	"github.com/vignesh678/stock-glass-visualizer/internal/config"
	"github.com/vignesh678/stock-glass-visualizer/internal/kv"
	"github.com/vignesh678/stock-glass-visualizer/internal/validator"
	"github.com/vignesh678/stock-glass-visualizer/internal/watchlist"
)

// keyToken holds the bearer token from the last sign-in.
const keyToken = "token"

// app is the state shared by every command.
type app struct {
	cfg       *config.Config
	kv        kv.Store
	watchlist *watchlist.Store
	api       *client.Client
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := kv.Open(ctx, kv.Options{
		Backend:       cfg.WatchlistBackend,
		Path:          cfg.WatchlistPath,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		kv:        store,
		watchlist: watchlist.NewStore(store),
	}
	token := cfg.APIToken
	if token == "" {
		token = a.loadToken(ctx)
	}
	a.api = client.New(cfg.APIURL, token, &http.Client{Timeout: cfg.RequestTimeout})
	return a, nil
}

func (a *app) Close() {
	_ = a.kv.Close()
}

func (a *app) loadToken(ctx context.Context) string {
	data, err := a.kv.Get(ctx, keyToken)
	if err != nil {
		return ""
	}
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return ""
	}
	return token
}

func (a *app) saveToken(ctx context.Context, token string) error {
	if token == "" {
		return a.kv.Delete(ctx, keyToken)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return a.kv.Set(ctx, keyToken, data)
}

func (a *app) signedIn() bool {
	return a.api.Token() != ""
}

// resolveStock accepts a catalog id or a ticker symbol.
func resolveStock(arg string) (catalog.Stock, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		return catalog.Get(id)
	}
	symbol := strings.ToUpper(strings.TrimSpace(arg))
	if !validator.Ticker(symbol) {
		return catalog.Stock{}, fmt.Errorf("%q is not a stock id or ticker symbol", arg)
	}
	s, ok := catalog.BySymbol(symbol)
	if !ok {
		return catalog.Stock{}, fmt.Errorf("unknown stock %s", symbol)
	}
	return s, nil
}

// describe turns client errors into short user-facing text.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrAuth):
		return "not signed in or session expired; run signin"
	case errors.Is(err, client.ErrNotFoundOrForbidden):
		return "not found in your portfolio"
	case errors.Is(err, client.ErrTransient):
		return fmt.Sprintf("backend unavailable: %v", err)
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
