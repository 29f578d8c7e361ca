// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	GroqAPIKey     string `yaml:"-"`
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
	//Paths
	DataDir      string `yaml:"data_dir"`
	ResumePath   string `yaml:"resume_path"`
	DemoPagePath string `yaml:"demo_page_path"`
	CookiesPath  string `yaml:"cookies_path"`
	//Bot behaviour
	Headless        bool `yaml:"headless"`
	PacingMinMs     int  `yaml:"pacing_min_ms"`
	PacingMaxMs     int  `yaml:"pacing_max_ms"`
	MaxModalSteps   int  `yaml:"max_modal_steps"`
	FreeQuota       int  `yaml:"free_quota"`
	LoginTimeoutSec int  `yaml:"login_timeout_sec"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{Headless: true}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.GroqAPIKey = key
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	if cfg.ResumePath == "" {
		cfg.ResumePath = filepath.Join(cfg.DataDir, "latest_resume.pdf")
	}

	if cfg.DemoPagePath == "" {
		cfg.DemoPagePath = "web/apply_demo.html"
	}

	if cfg.CookiesPath == "" {
		cfg.CookiesPath = filepath.Join(cfg.DataDir, "cookies")
	}

	if cfg.PacingMinMs == 0 {
		cfg.PacingMinMs = 5000
	}

	if cfg.PacingMaxMs == 0 {
		cfg.PacingMaxMs = 10000
	}

	if cfg.MaxModalSteps == 0 {
		cfg.MaxModalSteps = 5
	}

	if cfg.FreeQuota == 0 {
		cfg.FreeQuota = 3
	}

	if cfg.LoginTimeoutSec == 0 {
		cfg.LoginTimeoutSec = 60
	}

	//Validate
	if cfg.GroqAPIKey == "" {
		log.Println("⚠️ GROQ_API_KEY not set. AI answering will return empty answers.")
	}

	if cfg.PacingMinMs > cfg.PacingMaxMs {
		log.Fatalf("pacing_min_ms (%d) must not exceed pacing_max_ms (%d)", cfg.PacingMinMs, cfg.PacingMaxMs)
	}

	return cfg
}
