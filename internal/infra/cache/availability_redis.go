package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
)

// AvailabilityRedis guarda candidatos de disponibilidade no Redis.
//
// Nada é apagado na invalidação: cada tenant e cada dia do tenant têm um
// contador de geração que entra na chave, e INCR nele torna as entradas
// antigas inalcançáveis até o TTL limpar.
type AvailabilityRedis struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func NewAvailabilityRedis(rdb *redis.Client, ttl time.Duration, log *slog.Logger) *AvailabilityRedis {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	return &AvailabilityRedis{rdb: rdb, ttl: ttl, log: log}
}

// Connect abre o cliente a partir de REDIS_URL e confere a conexão.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func tenantGenKey(tenantID uint) string {
	return fmt.Sprintf("avail:gen:%d", tenantID)
}

func dayGenKey(tenantID uint, date string) string {
	return fmt.Sprintf("avail:gen:%d:%s", tenantID, date)
}

func entryKey(key domain.SlotKey, tenantGen, dayGen string) string {
	return fmt.Sprintf("avail:%s:%s:%s", tenantGen, dayGen, key.String())
}

func (c *AvailabilityRedis) generations(ctx context.Context, key domain.SlotKey) (string, string, error) {
	vals, err := c.rdb.MGet(ctx, tenantGenKey(key.TenantID), dayGenKey(key.TenantID, key.Date)).Result()
	if err != nil {
		return "", "", err
	}
	return genOf(vals[0]), genOf(vals[1]), nil
}

func genOf(v any) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return "0"
}

func (c *AvailabilityRedis) Get(ctx context.Context, key domain.SlotKey) ([]domain.Slot, bool) {
	tg, dg, err := c.generations(ctx, key)
	if err != nil {
		c.log.Warn("availability cache unavailable", "err", err)
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, entryKey(key, tg, dg)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("availability cache read failed", "err", err)
		return nil, false
	}

	var slots []domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.log.Warn("availability cache entry corrupted", "key", key.String(), "err", err)
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityRedis) Set(ctx context.Context, key domain.SlotKey, slots []domain.Slot) {
	tg, dg, err := c.generations(ctx, key)
	if err != nil {
		c.log.Warn("availability cache unavailable", "err", err)
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, entryKey(key, tg, dg), raw, c.ttl).Err(); err != nil {
		c.log.Warn("availability cache write failed", "err", err)
	}
}

func (c *AvailabilityRedis) InvalidateDay(ctx context.Context, tenantID uint, date string) {
	c.bump(ctx, dayGenKey(tenantID, date))
}

func (c *AvailabilityRedis) InvalidateTenant(ctx context.Context, tenantID uint) {
	c.bump(ctx, tenantGenKey(tenantID))
}

func (c *AvailabilityRedis) bump(ctx context.Context, genKey string) {
	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, genKey)
	// o contador precisa viver mais que as entradas que ele protege
	pipe.Expire(ctx, genKey, 48*time.Hour+c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Error("availability cache invalidation failed", "key", genKey, "err", err)
	}
}

var _ domain.SlotCache = (*AvailabilityRedis)(nil)
