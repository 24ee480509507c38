package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/kv"
	ilogger "github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/preferences"
	"github.com/spigell/job-matcher/internal/secrets"
)

const (
	redisURLEnv     = "JOB_MATCHER_REDIS_URL"
	redisURLFileEnv = "JOB_MATCHER_REDIS_URL_FILE"
)

// redisURLSource resolves the URL from the file, then the environment, then the config value.
func redisURLSource(config *RedisConfig) secrets.Source {
	src := secrets.Source{Name: "redis url", Env: redisURLEnv}
	if config != nil {
		src.File = config.URLFile
		src.Value = config.URL
	}
	return src
}

func newLogger() (*zap.Logger, error) {
	return ilogger.New(viper.GetBool("json"), viper.GetBool("debug"))
}

// openStore opens the configured backend. The caller must close the returned kv store.
func openStore(ctx context.Context, config *StoreConfig, logger *zap.Logger) (*preferences.Store, kv.Store, error) {
	backend := strings.ToLower(strings.TrimSpace(config.Backend))

	kvConfig := kv.Config{
		Backend: backend,
		Path:    config.Path,
	}

	if backend == kv.BackendRedis {
		url, err := secrets.Load(redisURLSource(config.Redis))
		if err != nil {
			return nil, nil, fmt.Errorf("%w (set store.redis.url, %s or %s)", err, redisURLEnv, redisURLFileEnv)
		}
		kvConfig.RedisURL = url
	}

	backendStore, err := kv.Open(ctx, kvConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", backend, err)
	}

	storeLogger := ilogger.WithFields(logger, ilogger.StringFields(
		ilogger.StringField{Key: ilogger.FieldBackend, Value: backend},
	)...)

	if file, ok := backendStore.(*kv.File); ok {
		storeLogger.Debug("using file store", zap.String("path", file.Path()))
	}

	return preferences.New(backendStore, config.Key, storeLogger), backendStore, nil
}
