// Package cachestore persiste o blob único e versionado do cache de
// vendas. A semântica é deliberadamente a de um blob último-escreve-
// vence: leituras concorrentes não são coordenadas (dados de painel,
// não transacionais).
package cachestore

import (
	"math"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BlobVersion identifica o layout persistido do cache de vendas.
const BlobVersion = "sales_data_cache_v1"

// CacheStore é o contrato de persistência do cache incremental:
// um único blob, get/set/clear, último-escreve-vence.
type CacheStore interface {
	// Get devolve o cache persistido, ou (nil, nil) quando ausente.
	Get() (*domain.SalesCache, error)
	Set(cache *domain.SalesCache) error
	Clear() error
}

// persistedBucket aceita tanto o campo atual quanto o alias legado
// "total" usado por blobs antigos; campos ausentes valem 0.
type persistedBucket struct {
	Revenue *float64 `json:"revenue,omitempty"`
	Total   *float64 `json:"total,omitempty"`
	Count   *int     `json:"count,omitempty"`
}

type persistedCache struct {
	Version    string                     `json:"version"`
	LastUpdate string                     `json:"lastUpdate"`
	Data       map[string]persistedBucket `json:"data"`
}

func encodeCache(cache *domain.SalesCache) ([]byte, error) {
	blob := persistedCache{
		Version:    BlobVersion,
		LastUpdate: cache.LastUpdateDateKey,
		Data:       make(map[string]persistedBucket, len(cache.Buckets)),
	}

	for key, bucket := range cache.Buckets {
		if bucket.IsEmpty() {
			continue // bucket vazio equivale a bucket ausente
		}
		revenue := bucket.Revenue()
		count := bucket.Count
		blob.Data[key] = persistedBucket{Revenue: &revenue, Count: &count}
	}

	raw, err := json.Marshal(blob)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar o cache de vendas")
	}
	return raw, nil
}

func decodeCache(raw []byte) (*domain.SalesCache, error) {
	var blob persistedCache
	if err := json.Unmarshal(raw, &blob); err != nil {
		return nil, errors.Wrap(err, "erro ao deserializar o cache de vendas")
	}

	if blob.LastUpdate != "" {
		if _, err := time.Parse(time.DateOnly, blob.LastUpdate); err != nil {
			return nil, errors.Wrapf(err, "lastUpdate inválido no cache persistido: %q", blob.LastUpdate)
		}
	}

	cache := &domain.SalesCache{
		LastUpdateDateKey: blob.LastUpdate,
		Buckets:           make(domain.BucketMap, len(blob.Data)),
	}

	for key, stored := range blob.Data {
		if _, err := time.Parse(time.DateOnly, key); err != nil {
			continue // chave corrompida, descarta defensivamente
		}

		revenue := 0.0
		switch {
		case stored.Revenue != nil:
			revenue = *stored.Revenue
		case stored.Total != nil:
			// Alias legado, normalizado para "revenue" na próxima gravação.
			revenue = *stored.Total
		}

		count := 0
		if stored.Count != nil {
			count = *stored.Count
		}
		if count == 0 {
			continue
		}

		cache.Buckets[key] = domain.DateBucket{
			RevenueCents: int64(math.Round(revenue * 100)),
			Count:        count,
		}
	}

	return cache, nil
}
