package reporting

import (
	"time"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/reporting_mock.go -package=mocks

// Reporter é a fachada de relatórios de vendas consumida pela API e
// pelo agendador de pré-aquecimento.
type Reporter interface {
	// ChartSeries devolve a série do gráfico para a janela pedida.
	// selectedMonth (YYYY-MM) só é considerado na janela "month".
	ChartSeries(kind domain.WindowKind, selectedMonth string) ([]domain.ChartPoint, error)

	// Summary devolve os totais dos cartões do painel.
	Summary() (*domain.SalesSummary, error)

	// ExportOrders devolve os pedidos pagos crus do intervalo, para
	// exportação administrativa.
	ExportOrders(startTime, endTime *time.Time) ([]*domain.OrderRecord, error)

	// RunCycle força um ciclo completo do cache incremental e devolve o
	// estado resultante.
	RunCycle() (*domain.SalesCache, error)
}
