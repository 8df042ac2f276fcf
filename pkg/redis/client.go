package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/anderskate/async-sms-sending/environments"
	"github.com/anderskate/async-sms-sending/internal/domain"
	"github.com/anderskate/async-sms-sending/pkg/logger"
)

// ErrDuplicateMailing means a mailing id is already registered. The gateway
// is expected to issue unique ids, so hitting this is an anomaly.
var ErrDuplicateMailing = errors.New("redis: mailing id already registered")

const (
	mailingKeyPrefix = "sms_mailing:"
	// Insertion-ordered list of every known mailing id. Kept alongside the
	// records because key-scan order gives no ordering guarantee.
	mailingIDsKey = "sms_mailings"
)

// Client is the mailing store: an append-only registry of broadcast
// campaigns keyed by gateway-assigned mailing id.
type Client struct {
	client valkey.Client
}

func NewRedisClient(cfg environments.RedisConfig) (*Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Infof("Connected to Redis (via Valkey client)")

	return &Client{client: client}, nil
}

// AddMailing registers a new mailing record and appends its id to the
// ordered id list. An existing record under the same id is never
// overwritten; the write fails with ErrDuplicateMailing instead.
func (c *Client) AddMailing(ctx context.Context, mailing domain.SmsMailing) error {
	data, err := json.Marshal(mailing)
	if err != nil {
		return fmt.Errorf("failed to marshal mailing %s: %w", mailing.ID, err)
	}

	key := mailingKeyPrefix + mailing.ID

	err = c.client.Do(ctx, c.client.B().Set().Key(key).Value(string(data)).Nx().Build()).Error()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateMailing, mailing.ID)
		}
		return fmt.Errorf("failed to store mailing %s: %w", mailing.ID, err)
	}

	err = c.client.Do(ctx, c.client.B().Rpush().Key(mailingIDsKey).Element(mailing.ID).Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to index mailing %s: %w", mailing.ID, err)
	}

	logger.Debugf("Registered mailing %s (%d phones) in Redis", mailing.ID, mailing.PhonesCount)

	return nil
}

// ListMailingIDs returns every known mailing id in insertion order.
func (c *Client) ListMailingIDs(ctx context.Context) ([]string, error) {
	result := c.client.Do(ctx, c.client.B().Lrange().Key(mailingIDsKey).Start(0).Stop(-1).Build())
	if result.Error() != nil {
		return nil, fmt.Errorf("failed to list mailing ids: %w", result.Error())
	}

	ids, err := result.AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to read mailing ids: %w", err)
	}

	return ids, nil
}

// GetMailings loads the records for the given ids, preserving input order.
// Ids with no record (or an undecodable one) are skipped rather than
// failing the whole read; the store and the live system may race.
func (c *Client) GetMailings(ctx context.Context, ids ...string) ([]domain.SmsMailing, error) {
	mailings := make([]domain.SmsMailing, 0, len(ids))

	for _, id := range ids {
		result := c.client.Do(ctx, c.client.B().Get().Key(mailingKeyPrefix+id).Build())
		if result.Error() != nil {
			if valkey.IsValkeyNil(result.Error()) {
				continue
			}
			return nil, fmt.Errorf("failed to get mailing %s: %w", id, result.Error())
		}

		data, err := result.ToString()
		if err != nil {
			return nil, fmt.Errorf("failed to read mailing %s: %w", id, err)
		}

		var mailing domain.SmsMailing
		if err := json.Unmarshal([]byte(data), &mailing); err != nil {
			logger.Warnf("Skipping undecodable mailing record %q: %v", id, err)
			continue
		}

		mailings = append(mailings, mailing)
	}

	return mailings, nil
}

func (c *Client) Close() error {
	c.client.Close()
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}
