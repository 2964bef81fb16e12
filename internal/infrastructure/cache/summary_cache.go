package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/application/stats"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

var _ stats.SummaryCache = (*SummaryCache)(nil)

const (
	summaryKey = "stats:summary"
	summaryTTL = 60 * time.Second
)

// SummaryCache guarda el resumen del tablero serializado en Redis con TTL
// corto. Los fallos de Redis se registran y se tratan como cache miss.
type SummaryCache struct {
	redis *RedisClient
	log   *logger.Logger
}

// NewSummaryCache construye el cache del resumen.
func NewSummaryCache(redis *RedisClient, log *logger.Logger) *SummaryCache {
	return &SummaryCache{redis: redis, log: log}
}

// GetSummary lee el resumen cacheado. El segundo valor indica hit.
func (c *SummaryCache) GetSummary(ctx context.Context) (*dto.StatsSummaryResponse, bool) {
	raw, err := c.redis.Get(ctx, summaryKey)
	if err != nil {
		return nil, false
	}
	var summary dto.StatsSummaryResponse
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		c.log.Warn().Err(err).Msg("resumen cacheado ilegible, se descarta")
		_ = c.redis.Delete(ctx, summaryKey)
		return nil, false
	}
	return &summary, true
}

// SetSummary guarda el resumen con el TTL del tablero.
func (c *SummaryCache) SetSummary(ctx context.Context, summary *dto.StatsSummaryResponse) {
	raw, err := json.Marshal(summary)
	if err != nil {
		c.log.Warn().Err(err).Msg("no se pudo serializar el resumen para cache")
		return
	}
	if err := c.redis.Set(ctx, summaryKey, string(raw), summaryTTL); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo escribir el resumen en cache")
	}
}
