package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/drawdash/drawdash-backend/internal/config"
	"github.com/drawdash/drawdash-backend/internal/httpapi"
	"github.com/drawdash/drawdash-backend/internal/registry"
	"github.com/drawdash/drawdash-backend/internal/room"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := registry.New(ctx, room.Config{
		RoundSeconds: cfg.RoundSeconds,
		ChoiceCount:  cfg.ChoiceCount,
		MaxPlayers:   cfg.MaxPlayers,
		MinPlayers:   cfg.MinPlayers,
	}, log)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.SetupRoutes(reg, log),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
