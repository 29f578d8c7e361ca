package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"go-applyninja-automation/internal/ai"
	"go-applyninja-automation/internal/config"
	"go-applyninja-automation/internal/pdf"
)

// Standalone resume parser: feeds a PDF through the extraction prompt and
// prints the resulting profile. Handy for checking a resume before a run.
func main() {
	cfg := config.Load()

	path := cfg.ResumePath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	log.Printf("📄 Extracting text from: %s", path)
	text, err := pdf.ExtractText(path)
	if err != nil {
		log.Fatalf("❌ Could not read PDF: %v", err)
	}
	log.Printf("✅ Extracted %d characters", len(text))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	oracle := ai.NewGrokClient(cfg.GroqAPIKey)
	profile, err := oracle.ExtractProfile(ctx, text)
	if err != nil {
		log.Fatalf("❌ Profile extraction failed: %v", err)
	}

	out, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		log.Fatalf("❌ Could not encode profile: %v", err)
	}
	os.Stdout.Write(append(out, '\n'))
}
