package bayes

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the model in Redis: the vocabulary as a set, priors as
// a hash keyed by class, and one likelihood hash per class keyed by word. All
// keys share a configurable prefix so several models can coexist in one
// database.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(redisURL string, databaseNum int, keyPrefix string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %v", err)
	}
	opt.DB = databaseNum

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &RedisStore{client: client, prefix: keyPrefix}, nil
}

func (s *RedisStore) vocabKey() string  { return s.prefix + ":vocab" }
func (s *RedisStore) priorsKey() string { return s.prefix + ":priors" }
func (s *RedisStore) likelihoodKey(class string) string {
	return s.prefix + ":likelihood:" + class
}

// Save replaces any previously stored model under the store's prefix.
func (s *RedisStore) Save(ctx context.Context, m *Model) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.vocabKey(), s.priorsKey())
		for _, c := range m.Classes {
			pipe.Del(ctx, s.likelihoodKey(c))
		}

		words := make([]interface{}, 0, len(m.Vocabulary))
		for word := range m.Vocabulary {
			words = append(words, word)
		}
		if len(words) > 0 {
			pipe.SAdd(ctx, s.vocabKey(), words...)
		}

		priors := make(map[string]string, len(m.Classes))
		for _, c := range m.Classes {
			priors[c] = formatFloat(m.LogPrior[c])
		}
		pipe.HSet(ctx, s.priorsKey(), priors)

		for _, c := range m.Classes {
			row := make(map[string]string, len(m.LogLikelihood[c]))
			for word, value := range m.LogLikelihood[c] {
				row[word] = formatFloat(value)
			}
			pipe.HSet(ctx, s.likelihoodKey(c), row)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save model to Redis: %v", err)
	}
	return nil
}

// Load reads the model back from Redis.
func (s *RedisStore) Load(ctx context.Context) (*Model, error) {
	words, err := s.client.SMembers(ctx, s.vocabKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %v", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no model stored under prefix %q", s.prefix)
	}
	vocabulary := make(map[string]bool, len(words))
	for _, word := range words {
		vocabulary[word] = true
	}

	rawPriors, err := s.client.HGetAll(ctx, s.priorsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load priors: %v", err)
	}
	if len(rawPriors) == 0 {
		return nil, fmt.Errorf("no priors stored under prefix %q", s.prefix)
	}

	classes := make([]string, 0, len(rawPriors))
	logPrior := make(map[string]float64, len(rawPriors))
	for c, raw := range rawPriors {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("bad prior for class %q: %v", c, err)
		}
		classes = append(classes, c)
		logPrior[c] = value
	}
	sort.Strings(classes)

	logLikelihood := make(map[string]map[string]float64, len(classes))
	for _, c := range classes {
		raw, err := s.client.HGetAll(ctx, s.likelihoodKey(c)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to load likelihoods for class %q: %v", c, err)
		}
		row := make(map[string]float64, len(raw))
		for word, text := range raw {
			value, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("bad likelihood for %q/%q: %v", word, c, err)
			}
			row[word] = value
		}
		for word := range vocabulary {
			if _, ok := row[word]; !ok {
				return nil, fmt.Errorf("model is missing likelihood for word %q in class %q", word, c)
			}
		}
		logLikelihood[c] = row
	}

	return &Model{
		Vocabulary:    vocabulary,
		LogPrior:      logPrior,
		LogLikelihood: logLikelihood,
		Classes:       classes,
	}, nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ ModelStore = (*FileStore)(nil)
var _ ModelStore = (*RedisStore)(nil)
