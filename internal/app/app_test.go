package app_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fuzumoe/siteinsight-backend/configs"
	"github.com/fuzumoe/siteinsight-backend/internal/app"
	"github.com/fuzumoe/siteinsight-backend/internal/logging"
	"github.com/fuzumoe/siteinsight-backend/internal/repository"
)

// Save original hook functions
var (
	origLoadConfig = app.LoadConfig
	origNewDB      = app.NewDB
	origMigrateDB  = app.MigrateDB
	origServe      = app.Serve
)

func testConfig() *configs.Config {
	return &configs.Config{
		DatabaseURL:         "dsn",
		ServerHost:          "localhost",
		ServerPort:          "8080",
		ServerMode:          gin.TestMode,
		LogLevel:            "error",
		MaxConcurrentCrawls: 1,
		CrawlQueueSize:      1,
		CrawlMaxPages:       5,
		CrawlTimeout:        time.Second,
		FetchTimeout:        time.Second,
		TargetLanguage:      "eng",
		LanguageConfidence:  0.5,
	}
}

// setupHooks replaces the hooks for a successful run.
func setupHooks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app.LoadConfig = func() (*configs.Config, error) {
		return testConfig(), nil
	}
	app.NewDB = func(dsn string) (*gorm.DB, error) {
		assert.Equal(t, "dsn", dsn)
		return &gorm.DB{}, nil
	}
	app.MigrateDB = func(m repository.Migrator) error {
		return nil
	}
	app.Serve = func(ctx context.Context, srv *http.Server) error {
		assert.Equal(t, "localhost:8080", srv.Addr)
		assert.NotNil(t, srv.Handler)
		return nil
	}
}

// teardownHooks restores original hook functions.
func teardownHooks() {
	app.LoadConfig = origLoadConfig
	app.NewDB = origNewDB
	app.MigrateDB = origMigrateDB
	app.Serve = origServe
}

func TestRun(t *testing.T) {
	t.Run("Config Error", func(t *testing.T) {
		setupHooks(t)
		defer teardownHooks()
		app.LoadConfig = func() (*configs.Config, error) {
			return nil, errors.New("fail load")
		}

		err := app.Run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config load error")
	})

	t.Run("DB Error", func(t *testing.T) {
		setupHooks(t)
		defer teardownHooks()
		app.NewDB = func(dsn string) (*gorm.DB, error) {
			return nil, errors.New("fail db")
		}

		err := app.Run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db init error")
	})

	t.Run("Migrate Error", func(t *testing.T) {
		setupHooks(t)
		defer teardownHooks()
		app.MigrateDB = func(m repository.Migrator) error {
			return errors.New("fail migrate")
		}

		err := app.Run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "migration error")
	})

	t.Run("Crawler Error", func(t *testing.T) {
		setupHooks(t)
		defer teardownHooks()
		app.LoadConfig = func() (*configs.Config, error) {
			cfg := testConfig()
			cfg.TopicFile = filepath.Join(t.TempDir(), "missing.yaml")
			return cfg, nil
		}

		err := app.Run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "crawler init error")
	})

	t.Run("Server Setup Success", func(t *testing.T) {
		setupHooks(t)
		defer teardownHooks()

		require.NoError(t, app.Run())
	})

	t.Run("Server Start Error", func(t *testing.T) {
		setupHooks(t)
		defer teardownHooks()
		app.Serve = func(ctx context.Context, srv *http.Server) error {
			return errors.New("server start failed")
		}

		err := app.Run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server start failed")
	})
}

func TestServe_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	assert.NoError(t, origServe(ctx, srv))
}

func TestServe_ListenError(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:-1"}
	err := origServe(context.Background(), srv)
	assert.ErrorContains(t, err, "http server error")
}

func TestBuildCrawler(t *testing.T) {
	logger := logging.New("test", "error", "", os.Stderr)

	c, err := app.BuildCrawler(testConfig(), logger)
	require.NoError(t, err)
	assert.Equal(t, 5, c.MaxPages())

	cfg := testConfig()
	cfg.TopicFile = filepath.Join(t.TempDir(), "topic.yaml")
	require.NoError(t, os.WriteFile(cfg.TopicFile, []byte("keywords: [pricing]\n"), 0o600))
	_, err = app.BuildCrawler(cfg, logger)
	assert.NoError(t, err)
}
