package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/calendar"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/usecases/reporting"
	"github.com/Janssemsan72/Suamusicafacil-sub000/pkg/apiErrors"
	"github.com/Janssemsan72/Suamusicafacil-sub000/pkg/log"
)

// GetSalesChart devolve a série do gráfico de vendas.
//
// Query params:
//   - window: 7d | 30d | 90d | month | all (padrão 30d)
//   - month:  YYYY-MM quando window=month; ausente, o mês corrente
func GetSalesChart(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		window := r.URL.Query().Get("window")
		if window == "" {
			window = string(domain.WindowLast30Days)
		}

		selectedMonth := r.URL.Query().Get("month")
		if domain.WindowKind(window) == domain.WindowMonth && selectedMonth != "" && !validMonthParam(selectedMonth) {
			logger.WithField("month", selectedMonth).Warn("sales: parâmetro month inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro month deve estar no formato YYYY-MM", nil)
			return
		}

		logger.WithFields(log.Fields{
			"window": window,
			"month":  selectedMonth,
		}).Debug("sales: montando série do gráfico")

		points, err := service.ChartSeries(domain.WindowKind(window), selectedMonth)
		if err != nil {
			if errors.Is(err, reporting.ErrUnsupportedWindow) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidWindow, "Janela inválida. Valores aceitos: 7d, 30d, 90d, month, all", nil)
				return
			}

			logger.WithError(err).Error("sales: falha ao montar a série do gráfico")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar a série de vendas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(points); err != nil {
			logger.WithError(err).Error("sales: falha ao serializar a série do gráfico")
		}
	})
}

// GetSalesSummary devolve os totais dos cartões do painel.
func GetSalesSummary(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		summary, err := service.Summary()
		if err != nil {
			logger.WithError(err).Error("sales: falha ao montar o resumo de vendas")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar o resumo de vendas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logger.WithError(err).Error("sales: falha ao serializar o resumo de vendas")
		}
	})
}

// exportedOrder é a linha crua da exportação administrativa. A receita
// sai em reais; nula quando o deployment não tem a coluna de valor.
type exportedOrder struct {
	ID        string   `json:"id"`
	CreatedAt string   `json:"created_at"`
	DateKey   string   `json:"date_key"`
	Amount    *float64 `json:"amount"`
	Status    string   `json:"status"`
}

// ExportSalesOrders devolve os pedidos pagos crus de um intervalo de
// dias de negócio (start_date e end_date em YYYY-MM-DD, inclusivos).
func ExportSalesOrders(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		startTime, err := exportBound(r.URL.Query().Get("start_date"), false)
		if err != nil {
			logger.WithError(err).Warn("sales: parâmetro start_date inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro start_date deve estar no formato YYYY-MM-DD", nil)
			return
		}

		endTime, err := exportBound(r.URL.Query().Get("end_date"), true)
		if err != nil {
			logger.WithError(err).Warn("sales: parâmetro end_date inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro end_date deve estar no formato YYYY-MM-DD", nil)
			return
		}

		orders, err := service.ExportOrders(startTime, endTime)
		if err != nil {
			logger.WithError(err).Error("sales: falha na exportação de pedidos")
			apiErrors.WriteError(w, apiErrors.ErrSourceUnavailable, "Erro ao exportar pedidos", nil)
			return
		}

		rows := make([]exportedOrder, 0, len(orders))
		for _, order := range orders {
			if order == nil {
				continue
			}

			row := exportedOrder{
				ID:        order.ID,
				CreatedAt: order.CreatedAt.In(calendar.Location()).Format(time.RFC3339),
				DateKey:   calendar.ToBucketKey(order.CreatedAt),
				Status:    order.Status,
			}
			if order.AmountCents != nil {
				amount := float64(*order.AmountCents) / 100
				row.Amount = &amount
			}
			rows = append(rows, row)
		}

		logger.WithField("rows", len(rows)).Info("sales: exportação de pedidos concluída")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rows); err != nil {
			logger.WithError(err).Error("sales: falha ao serializar a exportação de pedidos")
		}
	})
}

// exportBound converte uma chave de dia de negócio em limite de
// intervalo: início do dia para start, início do dia SEGUINTE para end
// (intervalo meio-aberto). Parâmetro vazio vira limite aberto (nil).
func exportBound(dateKey string, exclusiveEnd bool) (*time.Time, error) {
	if dateKey == "" {
		return nil, nil
	}

	start, end, err := calendar.DayBounds(dateKey)
	if err != nil {
		return nil, err
	}

	if exclusiveEnd {
		return &end, nil
	}
	return &start, nil
}

func validMonthParam(month string) bool {
	if len(month) != 7 || !strings.Contains(month, "-") {
		return false
	}
	_, err := time.Parse("2006-01", month)
	return err == nil
}
