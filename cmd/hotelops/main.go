package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hotelworks/hotelops/config"
	"github.com/hotelworks/hotelops/internal/adminapi"
	"github.com/hotelworks/hotelops/internal/app"
	"github.com/hotelworks/hotelops/internal/webserver"
	"go.uber.org/zap"
)

var (
	cfile   = flag.String("c", "hotelops.yml", "config file path")
	initdb  = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	showVer = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("hotelops", version)
		return
	}

	cfg := config.LoadConfig(*cfile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.DropAll()
		application.InitDb()
		zap.L().Info("database reinitialized")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application.StartBackgroundJobs(ctx)

	webserver.Init(cfg, application)
	adminapi.RegisterRoutes()

	errchan := make(chan error, 1)
	go func() {
		errchan <- webserver.Instance().Start()
	}()

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errchan:
		if err != nil {
			zap.L().Fatal("web server failed", zap.Error(err))
		}
	case sig := <-sigchan:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := webserver.Instance().Shutdown(shutdownCtx); err != nil {
			zap.L().Error("web server shutdown error", zap.Error(err))
		}
	}
}
