package recordsource

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/Janssemsan72/Suamusicafacil-sub000/infrastructure/database/postgres"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
)

const ordersTable = "orders"

// Colunas da relação de pedidos. amount_cents é opcional: nem todo
// deployment da loja possui a coluna, e a sonda de esquema decide se ela
// entra no select.
const (
	ColumnID          = "id"
	ColumnStatus      = "status"
	ColumnCreatedAt   = "created_at"
	ColumnAmountCents = "amount_cents"
)

// MandatoryColumns é o mínimo consultável da relação de pedidos.
var MandatoryColumns = []string{ColumnID, ColumnStatus, ColumnCreatedAt}

// SelectParams descreve um select filtrado e paginado por intervalo.
type SelectParams struct {
	Columns   []string
	Status    string
	StartTime *time.Time // created_at >= StartTime
	EndTime   *time.Time // created_at < EndTime
	Limit     uint64
	Offset    uint64
}

// CountParams descreve uma contagem exata com os mesmos filtros.
type CountParams struct {
	Status    string
	StartTime *time.Time
	EndTime   *time.Time
}

// OrderSource é a capacidade de leitura consumida do record source:
// selects filtrados e paginados por intervalo, mais uma contagem exata
// opcional e não confiável em tabelas muito grandes.
type OrderSource interface {
	SelectOrders(params SelectParams) ([]*domain.OrderRecord, error)
	CountOrders(params CountParams) (int64, error)
}

type orderSource struct {
	db postgres.Queryer
}

// NewOrderSource cria um OrderSource sobre a conexão Postgres.
func NewOrderSource(db postgres.Queryer) OrderSource {
	return &orderSource{db: db}
}

func (s *orderSource) SelectOrders(params SelectParams) ([]*domain.OrderRecord, error) {
	columns := params.Columns
	if len(columns) == 0 {
		columns = MandatoryColumns
	}

	builder := squirrel.
		Select(columns...).
		From(ordersTable).
		OrderBy(ColumnCreatedAt+" ASC", ColumnID+" ASC").
		PlaceholderFormat(squirrel.Dollar)

	if params.Status != "" {
		builder = builder.Where(squirrel.Eq{ColumnStatus: params.Status})
	}
	if params.StartTime != nil {
		builder = builder.Where(squirrel.GtOrEq{ColumnCreatedAt: *params.StartTime})
	}
	if params.EndTime != nil {
		builder = builder.Where(squirrel.Lt{ColumnCreatedAt: *params.EndTime})
	}
	if params.Limit > 0 {
		builder = builder.Limit(params.Limit)
	}
	if params.Offset > 0 {
		builder = builder.Offset(params.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de pedidos")
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		// O wrap preserva a causa (*pq.Error) para a classificação de
		// esquema/permissão no chamador.
		return nil, errors.Wrap(err, "erro ao executar a query de pedidos")
	}
	defer rows.Close()

	orders := make([]*domain.OrderRecord, 0)
	for rows.Next() {
		order, err := scanOrder(rows, columns)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear pedido")
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de pedidos")
	}

	return orders, nil
}

func (s *orderSource) CountOrders(params CountParams) (int64, error) {
	builder := squirrel.
		Select("COUNT(*)").
		From(ordersTable).
		PlaceholderFormat(squirrel.Dollar)

	if params.Status != "" {
		builder = builder.Where(squirrel.Eq{ColumnStatus: params.Status})
	}
	if params.StartTime != nil {
		builder = builder.Where(squirrel.GtOrEq{ColumnCreatedAt: *params.StartTime})
	}
	if params.EndTime != nil {
		builder = builder.Where(squirrel.Lt{ColumnCreatedAt: *params.EndTime})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query de contagem")
	}

	var count int64
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "erro ao contar pedidos")
	}

	return count, nil
}

// scanOrder escaneia uma linha respeitando o conjunto de colunas ativo
// da sessão, que pode ter sido degradado pela sonda de esquema.
func scanOrder(rows *sql.Rows, columns []string) (*domain.OrderRecord, error) {
	order := &domain.OrderRecord{}
	var amount sql.NullInt64

	targets := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		switch column {
		case ColumnID:
			targets = append(targets, &order.ID)
		case ColumnStatus:
			targets = append(targets, &order.Status)
		case ColumnCreatedAt:
			targets = append(targets, &order.CreatedAt)
		case ColumnAmountCents:
			targets = append(targets, &amount)
		default:
			return nil, errors.Errorf("coluna desconhecida no select de pedidos: %s", column)
		}
	}

	if err := rows.Scan(targets...); err != nil {
		return nil, err
	}

	if amount.Valid {
		value := amount.Int64
		order.AmountCents = &value
	}

	return order, nil
}
