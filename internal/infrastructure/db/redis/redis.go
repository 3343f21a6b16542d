// Package redis holds the short-lived state of the service: login sessions and
// the approval-request dedup window. Keys live under one namespace so several
// societies can share a Redis instance.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

type Config struct {
	Addr      string
	Password  string
	DB        int
	Namespace string
	// DedupTTL is how long an approval request suppresses repeats; <= 0 picks
	// the default window.
	DedupTTL time.Duration
	Timeout  time.Duration
}

// Client is a connected Redis client bound to a key namespace.
type Client struct {
	*redis.Client
	keys     keyspace
	dedupTTL time.Duration
}

// Connect dials Redis and fails fast when it does not answer a ping.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return &Client{Client: rdb, keys: newKeyspace(cfg.Namespace), dedupTTL: cfg.DedupTTL}, nil
}

// Sessions returns the login session store.
func (c *Client) Sessions() *SessionStore {
	return NewSessionStore(c.Client, c.keys)
}

// ApprovalDedup returns the approval-request dedup window.
func (c *Client) ApprovalDedup() *ApprovalDedup {
	return NewApprovalDedup(c.Client, c.keys, c.dedupTTL)
}

// keyspace prefixes every key; the empty keyspace leaves keys bare.
type keyspace string

func newKeyspace(namespace string) keyspace {
	return keyspace(strings.Trim(strings.TrimSpace(namespace), ":"))
}

func (k keyspace) key(parts ...string) string {
	key := strings.Join(parts, ":")
	if k == "" {
		return key
	}
	return string(k) + ":" + key
}

// session: <ns>:session:<id>
func (k keyspace) session(id string) string {
	return k.key("session", id)
}

// approval: <ns>:dedup:approval:<visitor_id>
func (k keyspace) approval(visitorID int64) string {
	return k.key("dedup", "approval", fmt.Sprint(visitorID))
}
