package cachestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sales_cache.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)
	return store
}

func TestFileStore_GetSemArquivo(t *testing.T) {
	store := tempStore(t)

	cache, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, cache)
}

func TestFileStore_GravaELeDeVolta(t *testing.T) {
	store := tempStore(t)

	original := &domain.SalesCache{
		LastUpdateDateKey: "2024-11-05",
		Buckets: domain.BucketMap{
			"2024-11-04": {RevenueCents: 7990, Count: 2},
			"2024-11-05": {RevenueCents: 12750, Count: 3},
		},
	}

	require.NoError(t, store.Set(original))

	loaded, err := store.Get()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, "2024-11-05", loaded.LastUpdateDateKey)
	assert.Equal(t, original.Buckets, loaded.Buckets)
}

func TestFileStore_BucketVazioNaoEPersistido(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.Set(&domain.SalesCache{
		LastUpdateDateKey: "2024-11-05",
		Buckets: domain.BucketMap{
			"2024-11-04": {RevenueCents: 7990, Count: 1},
			"2024-11-05": {RevenueCents: 0, Count: 0},
		},
	}))

	loaded, err := store.Get()
	require.NoError(t, err)

	assert.Len(t, loaded.Buckets, 1)
	_, exists := loaded.Buckets["2024-11-05"]
	assert.False(t, exists)
}

func TestFileStore_BlobCorrompidoVirouCacheFrio(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, os.WriteFile(store.path, []byte("{nao é json"), 0o644))

	cache, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, cache)
}

func TestFileStore_Clear(t *testing.T) {
	store := tempStore(t)

	require.NoError(t, store.Set(&domain.SalesCache{
		LastUpdateDateKey: "2024-11-05",
		Buckets: domain.BucketMap{
			"2024-11-05": {RevenueCents: 4990, Count: 1},
		},
	}))

	require.NoError(t, store.Clear())
	// Clear em cache já ausente é idempotente.
	require.NoError(t, store.Clear())

	cache, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, cache)
}

func TestDecodeCache_AliasLegadoTotal(t *testing.T) {
	// Blobs antigos gravavam a receita no campo "total"; a leitura
	// aceita os dois e normaliza na próxima gravação.
	raw := []byte(`{
		"version": "sales_data_cache_v1",
		"lastUpdate": "2024-11-05",
		"data": {
			"2024-11-04": {"total": 79.90, "count": 2},
			"2024-11-05": {"revenue": 127.50, "count": 3}
		}
	}`)

	cache, err := decodeCache(raw)
	require.NoError(t, err)

	assert.Equal(t, int64(7990), cache.Buckets["2024-11-04"].RevenueCents)
	assert.Equal(t, 2, cache.Buckets["2024-11-04"].Count)
	assert.Equal(t, int64(12750), cache.Buckets["2024-11-05"].RevenueCents)
}

func TestDecodeCache_EntradasInvalidasSaoDescartadas(t *testing.T) {
	raw := []byte(`{
		"version": "sales_data_cache_v1",
		"lastUpdate": "2024-11-05",
		"data": {
			"nao-e-data":  {"revenue": 10.0, "count": 1},
			"2024-11-04":  {"revenue": 79.90, "count": 0},
			"2024-11-05":  {"revenue": 127.50, "count": 3}
		}
	}`)

	cache, err := decodeCache(raw)
	require.NoError(t, err)

	// Chave malformada e bucket com contagem zero caem fora.
	assert.Len(t, cache.Buckets, 1)
	assert.Equal(t, 3, cache.Buckets["2024-11-05"].Count)
}

func TestDecodeCache_LastUpdateInvalido(t *testing.T) {
	raw := []byte(`{"version": "sales_data_cache_v1", "lastUpdate": "ontem", "data": {}}`)

	_, err := decodeCache(raw)
	assert.Error(t, err)
}

func TestMemoryStore_CopiaIndependente(t *testing.T) {
	store := NewMemoryStore()

	original := &domain.SalesCache{
		LastUpdateDateKey: "2024-11-05",
		Buckets: domain.BucketMap{
			"2024-11-05": {RevenueCents: 4990, Count: 1},
		},
	}
	require.NoError(t, store.Set(original))

	// Mutação no mapa original não vaza para o store.
	original.Buckets["2024-11-05"] = domain.DateBucket{RevenueCents: 1, Count: 1}

	loaded, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, int64(4990), loaded.Buckets["2024-11-05"].RevenueCents)

	// Mutação no snapshot lido também não vaza.
	loaded.Buckets["2024-11-05"] = domain.DateBucket{RevenueCents: 2, Count: 2}

	again, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, int64(4990), again.Buckets["2024-11-05"].RevenueCents)
}
