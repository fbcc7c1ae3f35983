// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package rewind

import (
	"context"

	"github.com/jellyrewind/jellyrewind/internal/cache"
	"github.com/jellyrewind/jellyrewind/internal/metrics"
	"github.com/jellyrewind/jellyrewind/internal/stats"
)

// cachedMeta wraps a MetadataSource with the TTL cache. Library metadata
// changes rarely but is consulted for every report, so even a short TTL
// removes most of the lookup load.
type cachedMeta struct {
	src   stats.MetadataSource
	cache cache.Cacher
}

var _ stats.MetadataSource = (*cachedMeta)(nil)

func newCachedMeta(src stats.MetadataSource, c cache.Cacher) *cachedMeta {
	return &cachedMeta{src: src, cache: c}
}

func (m *cachedMeta) ItemRuntimes(ctx context.Context, itemIDs []string) (map[string]int64, error) {
	key := cache.GenerateKey("item_runtimes", itemIDs)
	if v, ok := m.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		return v.(map[string]int64), nil
	}
	metrics.CacheMisses.Inc()

	out, err := m.src.ItemRuntimes(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	m.store(key, out)
	return out, nil
}

func (m *cachedMeta) SeriesAverageRuntime(ctx context.Context, seriesName string) (int64, error) {
	key := cache.GenerateKey("series_runtime", seriesName)
	if v, ok := m.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		return v.(int64), nil
	}
	metrics.CacheMisses.Inc()

	out, err := m.src.SeriesAverageRuntime(ctx, seriesName)
	if err != nil {
		return 0, err
	}
	m.store(key, out)
	return out, nil
}

func (m *cachedMeta) ItemGenres(ctx context.Context, itemIDs []string) (map[string][]string, error) {
	key := cache.GenerateKey("item_genres", itemIDs)
	if v, ok := m.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		return v.(map[string][]string), nil
	}
	metrics.CacheMisses.Inc()

	out, err := m.src.ItemGenres(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	m.store(key, out)
	return out, nil
}

func (m *cachedMeta) SeriesGenres(ctx context.Context, seriesName string) ([]string, error) {
	key := cache.GenerateKey("series_genres", seriesName)
	if v, ok := m.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		return v.([]string), nil
	}
	metrics.CacheMisses.Inc()

	out, err := m.src.SeriesGenres(ctx, seriesName)
	if err != nil {
		return nil, err
	}
	m.store(key, out)
	return out, nil
}

func (m *cachedMeta) ItemProviderIDs(ctx context.Context, itemIDs []string) (map[string]string, error) {
	key := cache.GenerateKey("item_provider_ids", itemIDs)
	if v, ok := m.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		return v.(map[string]string), nil
	}
	metrics.CacheMisses.Inc()

	out, err := m.src.ItemProviderIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	m.store(key, out)
	return out, nil
}

func (m *cachedMeta) SeriesProviderID(ctx context.Context, seriesName string) (string, error) {
	key := cache.GenerateKey("series_provider_id", seriesName)
	if v, ok := m.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		return v.(string), nil
	}
	metrics.CacheMisses.Inc()

	out, err := m.src.SeriesProviderID(ctx, seriesName)
	if err != nil {
		return "", err
	}
	m.store(key, out)
	return out, nil
}

func (m *cachedMeta) store(key string, value interface{}) {
	m.cache.Set(key, value)
	metrics.CacheSize.Set(float64(m.cache.GetStats().TotalKeys))
}
