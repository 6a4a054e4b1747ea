package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordbook/internal/config"
	"wordbook/internal/console"
	"wordbook/internal/domain"
	"wordbook/internal/logger"
	"wordbook/internal/notify"
	"wordbook/internal/repository"
	"wordbook/internal/repository/file"
	"wordbook/internal/repository/postgres"
	"wordbook/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置错误：%v\n", err)
		return 1
	}
	if len(os.Args) > 1 {
		if err := cfg.SetMode(os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "用法：%s [exam|drill]\n%v\n", os.Args[0], err)
			return 1
		}
	}

	// Initialize logger
	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	log.Info("Starting wordbook quiz", zap.String("mode", string(cfg.Mode)))

	// Stop the quiz on Ctrl+C, progress is saved on the way out
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	vocabRepo := file.NewVocabRepo(cfg.VocabFile, cfg.DedupMode)
	bookRepo := file.NewWordBookRepo(cfg.WordBookFile)
	mistakeRepo := file.NewMistakeLogRepo(cfg.MistakeDir)

	historyRepo, closeHistory := openHistory(cfg, log)
	defer closeHistory()

	// Initialize services
	prompter := console.New(os.Stdin, os.Stdout)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	history := service.NewHistoryRecorder(historyRepo, log)
	statsService := service.NewStatsService(historyRepo, cfg.History.RetentionDays, log)

	if err := statsService.CleanupOldData(ctx); err != nil {
		log.Warn("History cleanup failed", zap.Error(err))
	}

	if _, err := service.LoadQuizVocabulary(vocabRepo); err != nil {
		log.Error("Failed to load vocabulary", zap.String("path", cfg.VocabFile), zap.Error(err))
		if errors.Is(err, domain.ErrInsufficientData) {
			fmt.Fprintf(os.Stderr, "词库条目不足以出题（至少需要4条且释义互不相同）：%v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "读取词库失败：%v\n", err)
		}
		return 1
	}

	var result domain.SessionResult
	switch cfg.Mode {
	case domain.ModeExam:
		exam := service.NewExamService(vocabRepo, mistakeRepo, history, prompter, rng, cfg.QuestionCount, log)
		result, err = exam.Run(ctx)
	default:
		book := service.NewWordBookService(vocabRepo, bookRepo, prompter, cfg.RebuildRatio, log)
		drill := service.NewDrillService(vocabRepo, book, history, prompter, rng, log)
		result, err = drill.Run(ctx)
	}

	if err != nil && !errors.Is(err, domain.ErrInterrupted) {
		log.Error("Quiz failed", zap.String("mode", string(cfg.Mode)), zap.Error(err))
		fmt.Fprintf(os.Stderr, "运行失败：%v\n", err)
		return 1
	}

	// The quiz context may already be cancelled by an interrupt
	afterCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cfg.HistoryEnabled() {
		printHardestTerms(afterCtx, statsService, prompter, log)
	}
	sendReport(afterCtx, cfg, result, log)

	log.Info("Quiz finished", zap.String("status", string(result.Status)))
	return 0
}

// openHistory connects the session history store when configured.
// History is optional, so connection failures fall back to a no-op store.
func openHistory(cfg *config.Config, log *zap.Logger) (repository.HistoryRepository, func()) {
	if !cfg.HistoryEnabled() {
		return repository.NopHistory{}, func() {}
	}

	db, err := connectDatabase(cfg.DSN(), log)
	if err != nil {
		log.Warn("History disabled, database unavailable", zap.Error(err))
		return repository.NopHistory{}, func() {}
	}

	if err := runMigrations(db, cfg.MigrationsPath, log); err != nil {
		log.Warn("History disabled, migrations failed", zap.Error(err))
		db.Close()
		return repository.NopHistory{}, func() {}
	}

	log.Info("Session history enabled")
	return postgres.NewHistoryRepo(db), func() { db.Close() }
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, log *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 3
	retryDelay := time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			log.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			log.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(2)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, sourceURL string, log *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("No new migrations to apply")
	} else {
		log.Info("Migrations applied successfully")
	}

	return nil
}

func printHardestTerms(ctx context.Context, stats *service.StatsService, prompter service.Prompter, log *zap.Logger) {
	terms, err := stats.HardestTerms(ctx, 5)
	if err != nil {
		log.Warn("Failed to load hardest terms", zap.Error(err))
		return
	}
	if len(terms) == 0 {
		return
	}

	prompter.Say("\n历史易错词：")
	for i, t := range terms {
		prompter.Say("  %d. %s（错 %d / 共 %d 次）", i+1, t.Term, t.Misses, t.Attempts)
	}
}

func sendReport(ctx context.Context, cfg *config.Config, result domain.SessionResult, log *zap.Logger) {
	var reporter service.Reporter = service.NopReporter{}
	if cfg.ReportEnabled() {
		tg, err := notify.NewTelegramReporter(cfg.Report.BotToken, cfg.Report.ChatID, log)
		if err != nil {
			log.Warn("Telegram report disabled", zap.Error(err))
		} else {
			reporter = tg
		}
	}

	if err := reporter.Report(ctx, result); err != nil {
		log.Warn("Session report not delivered", zap.Error(err))
	}
}
