package reporting

import (
	"time"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/calendar"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
)

// Aggregate dobra os pedidos buscados em buckets por dia de negócio.
// Puro e determinístico: mesma entrada e mesma lista de overrides
// produzem sempre o mesmo mapa.
//
// Regras de contabilização por pedido pago:
//   - override manual presente: o bucket é a data do override, não o
//     created_at;
//   - coluna de valor ausente no deployment (hasAmountColumn=false) ou
//     valor nulo: conta no bucket com contribuição de receita zero
//     ("sem dado de receita" é diferente de "receita zero");
//   - valor presente mas <= 0: pedido malformado, não conta (piso
//     deliberado contra registros inválidos).
func Aggregate(orders []*domain.OrderRecord, overrides []domain.ManualOverride, hasAmountColumn bool) domain.BucketMap {
	overrideByID := make(map[string]string, len(overrides))
	for _, override := range overrides {
		if _, err := time.Parse(time.DateOnly, override.BusinessDate); err != nil {
			continue // entrada malformada na tabela de correções
		}
		overrideByID[override.OrderID] = override.BusinessDate
	}

	buckets := make(domain.BucketMap)

	for _, order := range orders {
		if order == nil || order.Status != domain.OrderStatusPaid {
			continue
		}

		dateKey, ok := overrideByID[order.ID]
		if !ok {
			dateKey = calendar.ToBucketKey(order.CreatedAt)
		}

		var revenueCents int64
		if hasAmountColumn && order.AmountCents != nil {
			if *order.AmountCents <= 0 {
				continue
			}
			revenueCents = *order.AmountCents
		}

		bucket := buckets[dateKey]
		bucket.RevenueCents += revenueCents
		bucket.Count++
		buckets[dateKey] = bucket
	}

	return buckets
}
