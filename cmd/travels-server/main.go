package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hlcup17/travels/internal/config"
	"github.com/hlcup17/travels/internal/http/handler"
	"github.com/hlcup17/travels/internal/loader"
	"github.com/hlcup17/travels/internal/service"
	"github.com/hlcup17/travels/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	// Handle version display
	handleVersion()
}

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Create Zap logger
	log := buildLogger(cfg.Dev())
	defer log.Sync()
	log = log.Named("main")

	// Create Gin router
	if !cfg.Dev() {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = zap.NewStdLog(log.Named("gin")).Writer() // Configure Gin's logger to use Zap

	st := store.New()
	svc := service.NewTravelService(log, st)
	r := handler.NewRouter(log, svc, cfg.MaxInFlight)

	// Ingest the data directory in the background; serving starts right away
	// and early requests may observe a partially populated store.
	go loader.New(log, st).Run(context.Background(), cfg.DataPath)

	httpsrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadHeader, // kills header-drip Slowloris
		ReadTimeout:       cfg.Server.Read,       // full request read (incl. body)
		WriteTimeout:      cfg.Server.Write,      // avoid forever-hangs on writes
		IdleTimeout:       cfg.Server.Idle,       // keep-alive cap
		MaxHeaderBytes:    1 << 20,               // 1MB cap
	}

	log.Info("running HTTP server", zap.String("addr", httpsrv.Addr))
	if err := httpsrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server failed", zap.Error(err))
	}
	log.Info("server closed")
}

// handleVersion prints build metadata and exits when -v/--version is provided.
func handleVersion() {
	v := flag.Bool("v", false, "print version and exit")
	flag.BoolVar(v, "version", false, "print version and exit")
	flag.Parse()

	if *v {
		fmt.Printf("travels %s (commit %s, built %s)\n", config.Version, config.GitCommit, config.BuildDate)
		os.Exit(0)
	}
}

// helpers

func buildLogger(dev bool) *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	if dev {
		logConfig.Level.SetLevel(zap.DebugLevel)
	} else {
		logConfig.Level.SetLevel(zap.InfoLevel)
	}
	return zap.Must(logConfig.Build())
}
