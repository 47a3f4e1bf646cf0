package cachestore

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Janssemsan72/Suamusicafacil-sub000/infrastructure/database/postgres"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
)

const salesCacheTable = "sales_data_cache"

// PostgresStore persiste o blob do cache em uma única linha versionada
// no Postgres, para deployments com mais de uma instância do painel. A
// tabela pertence a este serviço (diferente da relação de pedidos, que
// é do record source externo).
type PostgresStore struct {
	db postgres.Queryer
}

// NewPostgresStore cria o store e garante a tabela do blob.
func NewPostgresStore(db postgres.Queryer) (*PostgresStore, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sales_data_cache (
			version TEXT PRIMARY KEY,
			blob JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao garantir a tabela do cache de vendas")
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get() (*domain.SalesCache, error) {
	query, args, err := squirrel.
		Select("blob").
		From(salesCacheTable).
		Where(squirrel.Eq{"version": BlobVersion}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query do cache de vendas")
	}

	var raw []byte
	if err := s.db.QueryRow(query, args...).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao ler o cache de vendas do banco")
	}

	return decodeCache(raw)
}

func (s *PostgresStore) Set(cache *domain.SalesCache) error {
	raw, err := encodeCache(cache)
	if err != nil {
		return err
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(salesCacheTable).
		Columns("version", "blob").
		Values(BlobVersion, raw).
		Suffix(`
			ON CONFLICT (version) DO UPDATE SET
				blob = EXCLUDED.blob,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir o upsert do cache de vendas")
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return errors.Wrapf(err, "erro no banco de dados (código: %s)", pqErr.Code)
		}
		return errors.Wrap(err, "erro ao gravar o cache de vendas no banco")
	}

	return nil
}

func (s *PostgresStore) Clear() error {
	query, args, err := squirrel.
		Delete(salesCacheTable).
		Where(squirrel.Eq{"version": BlobVersion}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir o delete do cache de vendas")
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return errors.Wrap(err, "erro ao limpar o cache de vendas no banco")
	}

	return nil
}
