package main

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-applyninja-automation/internal/apply"
	"go-applyninja-automation/internal/config"
	"go-applyninja-automation/internal/logger"
	"go-applyninja-automation/internal/portal/linkedin"
	"go-applyninja-automation/internal/reporter"
	"go-applyninja-automation/internal/store"
)

// Headless batch runner. Same pipeline the server exposes over
// /api/linkedin-apply, but driven from the shell for cron use.
func main() {
	cfg := config.Load()

	email := os.Getenv("LINKEDIN_EMAIL")
	password := os.Getenv("LINKEDIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("❌ LINKEDIN_EMAIL and LINKEDIN_PASSWORD are required")
	}

	st, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("❌ Failed to init data store: %v", err)
	}
	stream := logger.NewStream(filepath.Join(cfg.DataDir, "bot.log"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	rec, runErr := linkedin.RunSession(ctx, cfg, st, stream, email, password)

	if cfg.TelegramToken != "" {
		rep, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Telegram reporter unavailable: %v", err)
		} else {
			if runErr != nil {
				if err := rep.SendError(runErr); err != nil {
					log.Printf("⚠️ Failed to send Telegram error: %v", err)
				}
			}
			if err := rep.SendBatchSummary(rec); err != nil {
				log.Printf("⚠️ Failed to send Telegram summary: %v", err)
			}
		}
	}

	if runErr != nil {
		if errors.Is(runErr, apply.ErrQuotaExceeded) {
			log.Println("💳 Free application quota exhausted. Upgrade to premium to continue.")
			os.Exit(1)
		}
		log.Fatalf("❌ Bot Error: %v", runErr)
	}

	log.Printf("🏁 Batch finished: %s | %s | %s", rec.Company, rec.Role, rec.Status)
}
