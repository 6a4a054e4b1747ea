package config

import (
	"fmt"
	"os"
	"strconv"

	"wordbook/internal/domain"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Env          string
	LogLevel     string
	LogFile      string
	Mode         domain.Mode
	VocabFile    string
	WordBookFile string
	MistakeDir   string
	DedupMode    domain.DedupMode

	// RebuildRatio triggers the rebuild prompt when book/vocab falls below it
	RebuildRatio  float64
	QuestionCount int

	History        HistoryConfig
	Database       DatabaseConfig
	MigrationsPath string
	Report         ReportConfig
}

// HistoryConfig holds session history settings
type HistoryConfig struct {
	RetentionDays int
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// ReportConfig holds Telegram session report settings
type ReportConfig struct {
	BotToken string
	ChatID   int64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		Env:          getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "warn"),
		LogFile:      getEnv("LOG_FILE", "stderr"),
		Mode:         domain.Mode(getEnv("QUIZ_MODE", string(domain.ModeDrill))),
		VocabFile:    os.Getenv("VOCAB_FILE"),
		WordBookFile: getEnv("WORDBOOK_FILE", "wrongbook/wrongbook.txt"),
		MistakeDir:   getEnv("MISTAKE_DIR", "."),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "wordbook"),
			User:     getEnv("DB_USER", "wordbook"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		Report: ReportConfig{
			BotToken: os.Getenv("BOT_TOKEN"),
		},
	}

	// Validate required fields
	if cfg.VocabFile == "" {
		return nil, fmt.Errorf("VOCAB_FILE is required")
	}

	dedup, err := domain.ParseDedupMode(getEnv("DEDUP_MODE", string(domain.DedupByPair)))
	if err != nil {
		return nil, fmt.Errorf("DEDUP_MODE: %w", err)
	}
	cfg.DedupMode = dedup

	if cfg.RebuildRatio, err = getFloat("WORDBOOK_REBUILD_RATIO", 0.001); err != nil {
		return nil, err
	}
	if cfg.RebuildRatio < 0 || cfg.RebuildRatio > 1 {
		return nil, fmt.Errorf("WORDBOOK_REBUILD_RATIO must be within [0, 1], got %v", cfg.RebuildRatio)
	}

	if cfg.QuestionCount, err = getInt("QUESTION_COUNT", 30); err != nil {
		return nil, err
	}
	if cfg.QuestionCount < 1 {
		return nil, fmt.Errorf("QUESTION_COUNT must be positive, got %d", cfg.QuestionCount)
	}

	if cfg.History.RetentionDays, err = getInt("HISTORY_RETENTION_DAYS", 60); err != nil {
		return nil, err
	}

	if raw := os.Getenv("REPORT_CHAT_ID"); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("REPORT_CHAT_ID must be an integer: %w", err)
		}
		cfg.Report.ChatID = chatID
	}

	if err := cfg.SetMode(string(cfg.Mode)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SetMode overrides the quiz mode, e.g. from a command line argument
func (c *Config) SetMode(mode string) error {
	switch domain.Mode(mode) {
	case domain.ModeExam, domain.ModeDrill:
		c.Mode = domain.Mode(mode)
		return nil
	default:
		return fmt.Errorf("QUIZ_MODE must be %q or %q, got %q", domain.ModeExam, domain.ModeDrill, mode)
	}
}

// HistoryEnabled reports whether session history should be stored in PostgreSQL
func (c *Config) HistoryEnabled() bool {
	return c.Database.Password != ""
}

// ReportEnabled reports whether session reports should be sent to Telegram
func (c *Config) ReportEnabled() bool {
	return c.Report.BotToken != "" && c.Report.ChatID != 0
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}
