package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/ribs/pkg/adapters/file"
	"github.com/aretw0/ribs/pkg/adapters/memory"
	"github.com/aretw0/ribs/pkg/adapters/redis"
	"github.com/aretw0/ribs/pkg/capsule"
	"github.com/aretw0/ribs/pkg/persistence/middleware"
	"github.com/aretw0/ribs/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Store backends accepted by --store.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// StoreOptions selects and configures the capsule store.
type StoreOptions struct {
	Backend  string
	Dir      string
	RedisURL string
	TTL      time.Duration

	// EncryptionKey is a base64 AES-256 key. FallbackKeys decrypt capsules sealed with
	// rotated keys.
	EncryptionKey string
	FallbackKeys  []string

	// PIIFields are regular expressions matching configuration params to mask.
	PIIFields []string
}

// OpenManager builds the capsule manager described by opts. The returned func releases
// the backend connection.
func OpenManager(opts StoreOptions, logger *slog.Logger) (*capsule.Manager, func() error, error) {
	closer := func() error { return nil }
	managerOpts := []capsule.Option{capsule.WithLogger(logger)}

	var store ports.StateStore
	switch strings.ToLower(opts.Backend) {
	case StoreMemory:
		store = memory.NewStore()
	case "", StoreFile:
		store = file.New(opts.Dir)
	case StoreRedis:
		if opts.RedisURL == "" {
			return nil, nil, errors.New("--redis-url is required for the redis store")
		}
		redisOpts, err := backend.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := backend.NewClient(redisOpts)
		store = redis.NewFromClient(client, redis.WithTTL(opts.TTL))
		managerOpts = append(managerOpts, capsule.WithLocker(redis.NewLocker(client, "ribs:")))
		closer = client.Close
	default:
		return nil, nil, fmt.Errorf("unknown store %q (want memory, file or redis)", opts.Backend)
	}

	var mws []middleware.Middleware
	if len(opts.PIIFields) > 0 {
		mws = append(mws, middleware.NewPIIMiddleware(opts.PIIFields))
	}
	if opts.EncryptionKey != "" {
		config, err := encryptionConfig(opts.EncryptionKey, opts.FallbackKeys)
		if err != nil {
			_ = closer()
			return nil, nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(config))
	}

	return capsule.NewManager(middleware.Chain(store, mws...), managerOpts...), closer, nil
}

func encryptionConfig(active string, fallbacks []string) (middleware.EncryptionConfig, error) {
	var config middleware.EncryptionConfig
	key, err := decodeKey(active)
	if err != nil {
		return config, fmt.Errorf("encryption key: %w", err)
	}
	config.ActiveKey = key
	for i, f := range fallbacks {
		key, err := decodeKey(f)
		if err != nil {
			return config, fmt.Errorf("fallback key %d: %w", i+1, err)
		}
		config.FallbackKeys = append(config.FallbackKeys, key)
	}
	return config, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("not base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
