package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/eventdesk/eventdesk/googlecal"
	"github.com/eventdesk/eventdesk/internal/config"
	"github.com/eventdesk/eventdesk/internal/database"
	"github.com/eventdesk/eventdesk/server"
	"github.com/eventdesk/eventdesk/sessions"
	"github.com/eventdesk/eventdesk/tokenstore"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running server: %s\n", err)
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	displayAppname(cfg.AppName)

	db, err := database.Init(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("database.Init: %w", err)
	}

	tokenStore, err := tokenstore.New(db)
	if err != nil {
		return fmt.Errorf("tokenstore.New: %w", err)
	}

	codec, err := sessions.NewCodec(cfg.SessionSecret)
	if err != nil {
		return fmt.Errorf("sessions.NewCodec: %w", err)
	}
	sessionManager := sessions.NewManager(codec, cfg.IsProduction())

	googleFlow := googlecal.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BaseURL)

	httpServer := &http.Server{
		Addr:    cfg.Port,
		Handler: server.New(cfg, sessionManager, tokenStore, googleFlow),
	}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
