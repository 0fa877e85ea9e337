package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	ClientAddr    string // customer-facing surface
	OperatorAddr  string // operator-facing surface
	DBDSN         string // postgres:// URL or sqlite file path
	OperatorToken string // empty means first login self-registers
	WebhookURL    string // optional operator notification sink
	LogFile       string
	TemplatesDir  string
	ScrapeBaseURL string
	MarkupPct     float64 // resale markup applied by the ingestion CLI
}

func Load() Config {
	clientAddr := os.Getenv("CLIENT_ADDR")
	if clientAddr == "" {
		clientAddr = ":8080"
	}
	operatorAddr := os.Getenv("OPERATOR_ADDR")
	if operatorAddr == "" {
		operatorAddr = ":8081"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "platano.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./platano.log"
	}
	tmpl := os.Getenv("TEMPLATES_DIR")
	if tmpl == "" {
		tmpl = "./web/templates"
	}
	base := os.Getenv("SCRAPE_BASE_URL")
	if base == "" {
		base = "https://platanosneaker.com"
	}
	markup := 50.0
	if v := os.Getenv("MARKUP_PCT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			markup = f
		}
	}

	cfg := Config{
		ClientAddr:    clientAddr,
		OperatorAddr:  operatorAddr,
		DBDSN:         dsn,
		OperatorToken: os.Getenv("OPERATOR_TOKEN"),
		WebhookURL:    os.Getenv("NOTIFY_WEBHOOK_URL"),
		LogFile:       logFile,
		TemplatesDir:  tmpl,
		ScrapeBaseURL: base,
		MarkupPct:     markup,
	}
	// Never log the operator token itself.
	log.Printf("[config] CLIENT_ADDR=%s OPERATOR_ADDR=%s DB_DSN=%s LOG_FILE=%s OPERATOR_TOKEN_SET=%v WEBHOOK_SET=%v",
		cfg.ClientAddr, cfg.OperatorAddr, cfg.DBDSN, cfg.LogFile, cfg.OperatorToken != "", cfg.WebhookURL != "")
	return cfg
}
