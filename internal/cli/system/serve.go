package system

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/hard75/internal/api"
	"github.com/julianstephens/hard75/internal/cli"
	"github.com/julianstephens/hard75/internal/logger"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." env:"HARD75_ADDR" default:":3375"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	server := &http.Server{
		Handler:           api.NewRouter(ctx.Service),
		Addr:              c.Addr,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(ctrlc)
	go func() {
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("Listening", "addr", c.Addr, "storage", ctx.Store.GetConfigPath(), "timezone", ctx.Service.Location().String())
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Server closed")
	return nil
}
