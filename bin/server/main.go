package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/zond/grue/server"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	config := server.DefaultConfig()

	flag.StringVar(&config.SSHAddr, "ssh", config.SSHAddr, "Where to listen to SSH connections.")
	flag.StringVar(&config.Dir, "dir", filepath.Join(os.Getenv("HOME"), ".grue"), "Where to save database and settings.")
	flag.StringVar(&config.World, "world", config.World, "Content file to play instead of the embedded world.")
	flag.StringVar(&config.MetricsAddr, "metrics", config.MetricsAddr, "Where to serve Prometheus metrics, if anywhere.")
	flag.DurationVar(&config.Resume, "resume", config.Resume, "How long to keep the games of disconnected players.")
	logFile := flag.String("log", "", "Log to this file, rotating it, instead of stderr.")

	flag.Parse()

	if *logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv, err := server.New(ctx, config)
	if err != nil {
		log.Fatal(err)
	}
	defer srv.Close()

	if err := srv.Start(ctx); err != nil {
		log.Fatal(err)
	}
}
