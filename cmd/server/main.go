package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"go-applyninja-automation/internal/ai"
	"go-applyninja-automation/internal/apply"
	"go-applyninja-automation/internal/config"
	"go-applyninja-automation/internal/logger"
	"go-applyninja-automation/internal/pdf"
	"go-applyninja-automation/internal/portal/demo"
	"go-applyninja-automation/internal/portal/linkedin"
	"go-applyninja-automation/internal/reporter"
	"go-applyninja-automation/internal/store"
)

func main() {
	cfg := config.Load()

	st, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("❌ Failed to init data store: %v", err)
	}
	stream := logger.NewStream(filepath.Join(cfg.DataDir, "bot.log"))
	oracle := ai.NewGrokClient(cfg.GroqAPIKey)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := gin.Default()

	//frontend
	r.StaticFile("/", "./web/index.html")
	r.Static("/web", "./web")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"env_loaded": cfg.GroqAPIKey != "",
		})
	})

	api := r.Group("/api")
	api.POST("/upload", uploadResume(cfg, st, oracle))
	api.POST("/linkedin-apply", linkedinApply(cfg, st, stream))
	api.POST("/auto-apply", autoApply(cfg, st, stream))
	api.POST("/stop-bot", stopBot(st))
	api.POST("/verify-payment", verifyPayment(st))
	api.GET("/history", getHistory(st))
	api.DELETE("/history", clearHistory(st))
	api.GET("/logs", getLogs(stream))
	api.POST("/contact", contactSupport())

	log.Printf("🚀 ApplyNinja Server Running on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// uploadResume saves the PDF, extracts its text and rebuilds the candidate
// profile, preserving the application counter and premium flag.
func uploadResume(cfg *config.Config, st store.Store, oracle ai.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("resume")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file part"})
			return
		}

		if err := os.MkdirAll(filepath.Dir(cfg.ResumePath), 0755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := c.SaveUploadedFile(file, cfg.ResumePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		text, err := pdf.ExtractText(cfg.ResumePath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not extract text"})
			return
		}

		profile, err := oracle.ExtractProfile(c.Request.Context(), text)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "AI returned no data"})
			return
		}

		//keep existing user stats across re-uploads
		if old, err := st.LoadProfile(); err == nil {
			profile.ApplicationCount = old.ApplicationCount
			profile.IsPremium = old.IsPremium
		}

		if err := st.SaveProfile(profile); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

func linkedinApply(cfg *config.Config, st store.Store, stream *logger.Stream) gin.HandlerFunc {
	return func(c *gin.Context) {
		stream.Logf("➡️ API Request: /api/linkedin-apply received")

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Credentials required"})
			return
		}

		if err := stream.Clear(); err != nil {
			log.Printf("⚠️ Could not clear log stream: %v", err)
		}
		stream.Logf("🔄 Starting LinkedIn Bot process...")

		rec, err := linkedin.RunSession(c.Request.Context(), cfg, st, stream, req.Email, req.Password)

		//report regardless of outcome; the batch record exists either way
		if cfg.TelegramToken != "" {
			if rep, repErr := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID); repErr == nil {
				if sendErr := rep.SendBatchSummary(rec); sendErr != nil {
					log.Printf("⚠️ Failed to send Telegram summary: %v", sendErr)
				}
			}
		}

		if err != nil {
			stream.Logf("❌ API Error: %v", err)
			if errors.Is(err, apply.ErrQuotaExceeded) {
				c.JSON(http.StatusPaymentRequired, gin.H{"error": "PAYMENT_REQUIRED"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "LinkedIn Pilot finished batch"})
	}
}

func autoApply(cfg *config.Config, st store.Store, stream *logger.Stream) gin.HandlerFunc {
	return func(c *gin.Context) {
		stream.Logf("➡️ API Request: /api/auto-apply received")

		if err := stream.Clear(); err != nil {
			log.Printf("⚠️ Could not clear log stream: %v", err)
		}

		if err := demo.Run(cfg, st, stream); err != nil {
			stream.Logf("❌ API Error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Bot finished successfully"})
	}
}

func stopBot(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.RequestStop(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Stop signal sent. Bot will halt after current action."})
	}
}

func verifyPayment(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := st.LoadProfile()
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User data not found"})
			return
		}

		profile.IsPremium = true
		if err := st.SaveProfile(profile); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment verified! Premium access granted."})
	}
}

func getHistory(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		history, err := st.History()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, history)
	}
}

func clearHistory(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.ClearHistory(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "History cleared"})
	}
}

func getLogs(stream *logger.Stream) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := stream.Tail()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": lines})
	}
}

func contactSupport() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		log.Printf("📧 NEW SUPPORT MESSAGE:\nFrom: %s <%s>\nMessage: %s", req.Name, req.Email, req.Message)
		c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully! We'll get back to you shortly."})
	}
}
