package redis

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/julianstephens/dayone/internal/storage"
)

const dialTimeout = 5 * time.Second

// Store keeps snapshot values as plain redis strings
type Store struct {
	url      string
	password string
	rdb      *goredis.Client
}

// NewStore returns a store for a redis:// or rediss:// URL. password is used
// when the URL carries none.
func NewStore(rawURL, password string) *Store {
	return &Store{url: rawURL, password: password}
}

func (s *Store) connect() error {
	if s.rdb != nil {
		return nil
	}

	opts, err := goredis.ParseURL(s.url)
	if err != nil {
		return fmt.Errorf("invalid redis URL: %w", err)
	}
	if opts.Password == "" {
		opts.Password = s.password
	}
	opts.DialTimeout = dialTimeout

	rdb := goredis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("redis ping: %w", err)
	}
	s.rdb = rdb
	return nil
}

// Init and Load both just verify connectivity; redis needs no schema.
func (s *Store) Init() error { return s.connect() }
func (s *Store) Load() error { return s.connect() }

func (s *Store) Close() error {
	if s.rdb == nil {
		return nil
	}
	err := s.rdb.Close()
	s.rdb = nil
	return err
}

// GetConfigPath returns the URL without credentials.
func (s *Store) GetConfigPath() string {
	u, err := url.Parse(s.url)
	if err != nil {
		return "redis"
	}
	u.User = nil
	return u.String()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
