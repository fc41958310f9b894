package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workersdeck/internal/auth"
	"workersdeck/internal/config"
	"workersdeck/internal/http/handlers"
	"workersdeck/internal/mail"
	"workersdeck/internal/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := repos.EnsureAdmin(db, "Administrator", cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal(err)
		}
		log.Printf("[seed] admin account %s ready", cfg.AdminEmail)
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL, cfg.ResetTTL)
	notifier, err := mail.NewNotifier(mail.New(cfg.SMTP), cfg.BaseURL, cfg.ResetTTL, cfg.SMTP.Rate)
	if err != nil {
		log.Fatal(err)
	}

	deps := handlers.NewDeps(db, tokens, notifier)
	app := handlers.NewApp(cfg, deps)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("[server] shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("[server] shutdown: %v", err)
		}
	}()

	log.Printf("[server] listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("[server] %v", err)
	}

	// let queued reset mails finish
	notifier.Wait()
}
