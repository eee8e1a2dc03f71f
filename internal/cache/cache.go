// Package cache wraps the optional redis layer: a per-day schedule cache
// invalidated by a per-house version counter, and the booking idempotency
// key store. A nil or unconfigured cache degrades to pass-through; redis
// being down must never fail an API call.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const (
	dayTTL  = 5 * time.Minute
	idemTTL = 24 * time.Hour
)

type Cache struct {
	rdb *redis.Client
}

// New builds the cache client. An empty addr disables caching entirely.
func New(addr string) *Cache {
	if addr == "" {
		return &Cache{}
	}
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// HouseVersion returns the house's current cache version. Callers capture
// it once, before reading the store, and use the same value for both the
// lookup and the write-back: a bump that lands mid-request then strands the
// write-back under the old version, which nobody reads anymore, instead of
// publishing a pre-bump grid under the new one.
func (c *Cache) HouseVersion(ctx context.Context, houseID string) string {
	if !c.Enabled() {
		return "0"
	}
	v, err := c.rdb.Get(ctx, "sched:ver:"+houseID).Result()
	if err != nil {
		return "0"
	}
	return v
}

func dayKey(houseID, ver, date string) string {
	return fmt.Sprintf("sched:%s:%s:%s", houseID, ver, date)
}

// GetDaySlots returns the slot labels cached for one house/date under the
// given version, if present.
func (c *Cache) GetDaySlots(ctx context.Context, houseID, ver, date string) ([]string, bool) {
	if !c.Enabled() {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, dayKey(houseID, ver, date)).Result()
	if err != nil {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *Cache) SetDaySlots(ctx context.Context, houseID, ver, date string, slots []string) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, dayKey(houseID, ver, date), raw, dayTTL).Err(); err != nil {
		log.Warn().Err(err).Str("house_id", houseID).Msg("schedule cache set failed")
	}
}

// BumpHouse invalidates every cached day of a house by advancing its
// version; stale keys age out via TTL.
func (c *Cache) BumpHouse(ctx context.Context, houseID string) {
	if !c.Enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, "sched:ver:"+houseID).Err(); err != nil {
		log.Warn().Err(err).Str("house_id", houseID).Msg("schedule cache bump failed")
	}
}

// --------------------------------------------------
// Booking idempotency keys
// --------------------------------------------------

// IdemGet returns the appointment id previously stored under an
// Idempotency-Key, if any.
func (c *Cache) IdemGet(ctx context.Context, key string) (string, bool) {
	if !c.Enabled() || key == "" {
		return "", false
	}
	v, err := c.rdb.Get(ctx, "idem:"+key).Result()
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

// IdemSet records the appointment created for an Idempotency-Key. SET NX so
// a racing duplicate cannot overwrite the first result.
func (c *Cache) IdemSet(ctx context.Context, key, apptID string) {
	if !c.Enabled() || key == "" {
		return
	}
	if err := c.rdb.SetNX(ctx, "idem:"+key, apptID, idemTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("idempotency key store failed")
	}
}
