package reporting

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Janssemsan72/Suamusicafacil-sub000/infrastructure/recordsource"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/config"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
)

// Fetcher busca pedidos pagos do record source em páginas de tamanho
// fixo, com um atalho de contagem exata e fallback para paginação manual
// completa. A paginação dentro de uma busca é estritamente sequencial:
// o offset de cada página depende do tamanho devolvido pela anterior.
type Fetcher struct {
	source recordsource.OrderSource
	cfg    config.SalesEngine

	mu   sync.Mutex
	caps SchemaCapabilities
}

// NewFetcher cria um Fetcher com a capability de esquema da sessão.
func NewFetcher(source recordsource.OrderSource, caps SchemaCapabilities, cfg config.SalesEngine) *Fetcher {
	return &Fetcher{
		source: source,
		cfg:    cfg,
		caps:   caps,
	}
}

// Capabilities devolve a capability de esquema ativa da sessão.
func (f *Fetcher) Capabilities() SchemaCapabilities {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.caps
}

// degradeAmount rebaixa a capability da sessão após um erro de coluna
// ausente no meio da paginação, evitando novas tentativas com a coluna.
func (f *Fetcher) degradeAmount() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.caps = f.caps.WithoutAmount()
}

// FetchPaidOrders devolve os pedidos pagos com created_at em
// [startTime, endTime), limitados a maxRows. Resultados parciais são
// válidos: fonte indisponível no meio da paginação devolve o que foi
// acumulado, sem erro.
func (f *Fetcher) FetchPaidOrders(startTime, endTime *time.Time, maxRows int) ([]*domain.OrderRecord, error) {
	logger := logrus.WithFields(logrus.Fields{
		"max_rows": maxRows,
	})

	// Contagem exata primeiro, como sinal barato. Contagens nulas, zero
	// ou abaixo do limiar de confiança não provam ausência de dados em
	// tabelas grandes, então a paginação manual roda de qualquer forma.
	count, err := f.source.CountOrders(recordsource.CountParams{
		Status:    domain.OrderStatusPaid,
		StartTime: startTime,
		EndTime:   endTime,
	})
	if err != nil {
		if recordsource.IsSourceUnavailable(err) {
			logger.WithError(err).Warn("Record source indisponível na contagem de pedidos")
			return []*domain.OrderRecord{}, nil
		}
		logger.WithError(err).Warn("Contagem exata de pedidos falhou, seguindo para paginação manual")
	} else {
		logger = logger.WithField("exact_count", count)
		if count < f.cfg.CountTrustThreshold {
			logger.Debug("Contagem exata abaixo do limiar de confiança, paginação manual obrigatória")
		}
	}

	pageSize := f.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}

	orders := make([]*domain.OrderRecord, 0)
	offset := uint64(0)
	pages := 0

	for len(orders) < maxRows {
		columns := f.Capabilities().Columns()

		page, err := f.source.SelectOrders(recordsource.SelectParams{
			Columns:   columns,
			Status:    domain.OrderStatusPaid,
			StartTime: startTime,
			EndTime:   endTime,
			Limit:     uint64(pageSize),
			Offset:    offset,
		})
		if err != nil {
			if recordsource.IsMissingColumn(err) && f.Capabilities().HasAmount() {
				// Rebaixa a coluna e re-tenta a MESMA página: o buffer da
				// página em voo é substituído, não acumulado, então não há
				// perda nem contagem dupla.
				logger.WithError(err).Warn("Coluna ausente durante a paginação, re-tentando a página sem ela")
				f.degradeAmount()
				continue
			}

			if recordsource.IsSourceUnavailable(err) {
				// Resultado parcial é válido; o painel degrada para um
				// gráfico incompleto em vez de falhar.
				logger.WithError(err).WithField("rows", len(orders)).Warn("Record source indisponível no meio da paginação, devolvendo parcial")
				return orders, nil
			}

			return orders, fmt.Errorf("erro ao paginar pedidos (offset %d): %w", offset, err)
		}

		orders = append(orders, page...)
		pages++

		if len(page) < pageSize {
			break // fim dos dados
		}

		offset += uint64(pageSize)
	}

	if len(orders) > maxRows {
		orders = orders[:maxRows]
	}

	logger.WithFields(logrus.Fields{
		"rows":  len(orders),
		"pages": pages,
	}).Debug("Paginação de pedidos concluída")

	return orders, nil
}
