package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poolhttpd/conf"
	"poolhttpd/httpd"
	"poolhttpd/logging"
)

func main() {
	confFile := flag.String("c", "", "path to the ini configuration file")
	flag.Parse()

	cfg := conf.Default()
	if *confFile != "" {
		var err error
		if cfg, err = conf.Load(*confFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Close()

	routes := httpd.DefaultRoutes(cfg.SleepDelay)
	resources := httpd.Dir(cfg.ResourceDir)
	if err = httpd.VerifyResources(routes, resources); err != nil {
		log.Critical("%v", err)
		log.Flush()
		os.Exit(1)
	}

	svr := &httpd.Server{
		Addr:           cfg.Addr,
		Workers:        cfg.Workers,
		QueueLimit:     cfg.QueueLimit,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
		ReadTimeout:    cfg.ReadTimeout,
		Routes:         routes,
		Resources:      resources,
		Logger:         log,
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		s := <-sig
		log.Info("received %v, shutting down", s)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.SleepDelay+10*time.Second)
		defer cancel()
		if err := svr.Shutdown(ctx); err != nil {
			log.Error("shutdown: %v", err)
		}
	}()

	if err = svr.ListenAndServe(); err != httpd.ErrServerClosed {
		log.Critical("%v", err)
		log.Flush()
		os.Exit(1)
	}
	<-drained
}
