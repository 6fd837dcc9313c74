// Package app はアプリケーションの初期化と依存関係のワイヤリングを提供する。
// 外部のAPIレイヤー（本モジュールの範囲外）はAppを生成し、各サービスを呼び出す。
package app

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/jobtrack/internal/application"
	"github.com/hitoshi/jobtrack/internal/config"
	"github.com/hitoshi/jobtrack/internal/database"
	"github.com/hitoshi/jobtrack/internal/job"
	"github.com/hitoshi/jobtrack/internal/logger"
	"github.com/hitoshi/jobtrack/internal/metrics"
	"github.com/hitoshi/jobtrack/internal/note"
	"github.com/hitoshi/jobtrack/internal/preferences"
	"github.com/hitoshi/jobtrack/internal/repository"
)

// App はワイヤリング済みのドメインサービス一式を保持する。
type App struct {
	Config *config.Config
	DB     *sql.DB

	Jobs         *job.Service
	Applications *application.Service
	Notes        *note.Service
	Preferences  *preferences.Service

	registry *prometheus.Registry
}

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		// 設定の読み込みに失敗してもエラーログは出力できるようにする
		logger.SetupDefault(w, "info")
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.SetupDefault(w, cfg.LogLevel)
	return cfg, nil
}

// New はDB接続を開き、マイグレーションを適用し、全依存関係をワイヤリングする。
func New(cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("database connection established")

	// メトリクス
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// リポジトリの初期化
	jobRepo := repository.NewPostgresJobRepo(db)
	appRepo := repository.NewPostgresApplicationRepo(db)
	noteRepo := repository.NewPostgresNoteRepo(db)
	prefsRepo := repository.NewPostgresPreferencesRepo(db)

	// ドメインサービスの初期化
	a := &App{
		Config:       cfg,
		DB:           db,
		Jobs:         job.NewService(jobRepo, collector),
		Applications: application.NewService(appRepo, collector),
		Notes:        note.NewService(noteRepo, collector),
		Preferences:  preferences.NewService(prefsRepo, collector),
		registry:     registry,
	}

	return a, nil
}

// MetricsHandler はPrometheusスクレイプ用のHTTPハンドラーを返す。
// エンドポイント層が任意のパスにマウントすることを想定している。
func (a *App) MetricsHandler() http.Handler {
	return metrics.Handler(a.registry)
}

// Close はDB接続を閉じる。
func (a *App) Close() error {
	return a.DB.Close()
}
