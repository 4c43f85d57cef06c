package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talkincode/toughstore/config"
	"github.com/talkincode/toughstore/internal/app"
	"github.com/talkincode/toughstore/internal/shopapi"
	"github.com/talkincode/toughstore/internal/webserver"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema")
	initcfg  = flag.Bool("initcfg", false, "write a default config file")
)

var (
	BuildVersion = "dev"
	BuildTime    = ""
)

func printVersion() {
	fmt.Printf("toughstore %s %s\n", BuildVersion, BuildTime)
}

func writeDefaultConfig(cfg *config.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile("toughstore.yml", data, 0644)
}

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		printVersion()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)
	cfg.InitDirs()

	if *initcfg {
		if err := writeDefaultConfig(cfg); err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		os.Exit(0)
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Stop()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		os.Exit(0)
	}

	webserver.Init(cfg)
	shopapi.Init(application)

	errchan := make(chan error, 1)
	go func() {
		errchan <- webserver.Listen()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errchan:
		zap.S().Errorf("web server error %s", err.Error())
	case sig := <-quit:
		zap.S().Infof("received signal %s, shutting down", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := webserver.Shutdown(ctx); err != nil {
		zap.S().Errorf("web server shutdown error %s", err.Error())
	}
}
