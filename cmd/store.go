package cmd

import (
	"fmt"

	"github.com/sentibay/sentiment-classifier/pkg/bayes"
	"github.com/sentibay/sentiment-classifier/pkg/config"
)

// newModelStore builds the model store selected by the configuration.
func newModelStore(cfg *config.Config) (bayes.ModelStore, error) {
	switch cfg.Model.Backend {
	case "file":
		return bayes.NewFileStore(cfg.Model.Path), nil
	case "redis":
		return bayes.NewRedisStore(
			cfg.Model.Redis.RedisURL,
			cfg.Model.Redis.DatabaseNum,
			cfg.Model.Redis.KeyPrefix,
		)
	default:
		return nil, fmt.Errorf("unknown model backend: %s", cfg.Model.Backend)
	}
}
