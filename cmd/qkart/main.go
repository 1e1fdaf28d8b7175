package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/talkincode/qkart/config"
	"github.com/talkincode/qkart/internal/api"
	"github.com/talkincode/qkart/internal/app"
	"github.com/talkincode/qkart/internal/qkart"
	"github.com/talkincode/qkart/internal/webserver"
	"go.uber.org/zap"
)

var (
	conffile = flag.String("c", "", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
	showver  = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showver {
		fmt.Println("qkart", version)
		return
	}

	cfg := config.LoadConfig(*conffile)
	cfg.InitDirs()

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	services := qkart.NewServices(application.DB(), cfg, publisherOrNil(application))

	webserver.Init(cfg, application.DB(), services)
	api.Register()

	go func() {
		if err := webserver.Listen(); err != nil {
			zap.L().Fatal("web server stopped", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	zap.L().Info("shutting down", zap.String("signal", sig.String()))
}

// publisherOrNil keeps the service wiring free of kafka types when
// publishing is disabled; a nil interface disables it cleanly.
func publisherOrNil(a *app.Application) qkart.OrderEventPublisher {
	if p := a.OrderPublisher(); p != nil {
		return p
	}
	return nil
}
