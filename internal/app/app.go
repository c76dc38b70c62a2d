package app

import (
	"context"
	"errors"
	"os"

	"bakkey/internal/server"
)

// App is the bakkeyd process: a Wire plus the HTTP server in front of it.
type App struct {
	Config Config
	*Wire
	Server *server.Server
}

// New builds the dependency graph and the HTTP server.
func New(cfg Config) (*App, error) {
	w, err := NewWire(cfg)
	if err != nil {
		return nil, err
	}
	srv := server.New(
		server.Options{
			ListenAddr:   cfg.ListenAddr,
			RateLimitRPS: cfg.RateLimitRPS,
			RateBurst:    cfg.RateLimitBurst,
		},
		server.Deps{
			Backups:  w.Backups,
			Keyring:  w.Keyring,
			Identity: w.Identity,
			Log:      w.Log,
		},
	)
	return &App{Config: cfg, Wire: w, Server: srv}, nil
}

// Run prepares the home directory, unlocks the panel identity and serves
// until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.Config.Passphrase == "" {
		return errors.New("passphrase required to unlock the panel identity")
	}
	if err := os.MkdirAll(a.Config.Home, 0o700); err != nil {
		return err
	}
	if _, err := a.Identity.Unlock(ctx, a.Config.Passphrase); err != nil {
		return err
	}
	return a.Server.Run(ctx)
}
