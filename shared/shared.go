package shared

import (
	"context"
	"strconv"
	"strings"

	"todoapi/shared/cache"
	"todoapi/shared/constant"
	"todoapi/shared/dto"
	"todoapi/shared/failure"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// ParseID converts a path identifier into a store key. Any 64-bit integer is accepted; ids
// that were never issued are left for the store to report as missing.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, failure.InvalidIDParam
	}

	return id, nil
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins prefix and parts with ':'.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a cache key for a list query.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams) string {
	return BuildCacheKey(prefix, params.String())
}

// InvalidateCaches removes every key under prefix. Failures are logged, not returned:
// a stale entry expires with its TTL.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
