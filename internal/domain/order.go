package domain

import "time"

// OrderStatusPaid é o único status contabilizado pelo engine de vendas.
const OrderStatusPaid = "paid"

// OrderRecord é um pedido pago como visto pelo engine de agregação.
// O registro pertence ao record source externo e é somente leitura aqui.
type OrderRecord struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	AmountCents *int64    `json:"amount_cents,omitempty"`
	Status      string    `json:"status"`
}

// ManualOverride reatribui a data de negócio de um pedido específico,
// corrigindo discrepâncias conhecidas de timestamp/fuso. A lista é
// carregada no bootstrap e nunca mutada.
type ManualOverride struct {
	OrderID      string `json:"order_id"`
	BusinessDate string `json:"business_date"` // YYYY-MM-DD no fuso de negócio
}
