package infra_catalog_cache

import (
	"time"

	"github.com/go-redis/redis"
)

// Driver caches serialized catalog query results. A nil *Driver is a
// valid no-op cache, so callers never branch on whether redis is wired.
type Driver struct {
	client *redis.Client
	key    string
}

func New(
	client *redis.Client,
	key string,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
	}
}

func (d *Driver) Set(key string, value []byte, ttl time.Duration) error {
	if d == nil {
		return nil
	}
	fullKey := d.getFullKey(key)
	if err := d.client.Set(fullKey, value, ttl).Err(); err != nil {
		return err
	}

	return nil
}

func (d *Driver) Get(key string) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	fullKey := d.getFullKey(key)

	val, err := d.client.Get(fullKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	return val, nil
}

func (d *Driver) getFullKey(key string) string {
	if d.key != "" {
		return d.key + ":" + key
	}
	return key
}
