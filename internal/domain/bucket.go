package domain

// DateBucket é o agregado de um dia-calendário no fuso de negócio.
// A receita é acumulada em centavos inteiros; a conversão para reais
// acontece apenas na borda de apresentação.
type DateBucket struct {
	RevenueCents int64 `json:"revenue_cents"`
	Count        int   `json:"count"`
}

// Revenue devolve a receita do bucket em reais.
func (b DateBucket) Revenue() float64 {
	return float64(b.RevenueCents) / 100
}

// IsEmpty indica um bucket semanticamente vazio, que deve ser tratado
// como ausente.
func (b DateBucket) IsEmpty() bool {
	return b.Count == 0
}

// BucketMap mapeia chaves de data (YYYY-MM-DD) para buckets diários.
type BucketMap map[string]DateBucket

// MergeMissing copia de from apenas as chaves ausentes em m. Dias já
// presentes no cache permanecem como estão: tanto o bucket cacheado
// quanto o re-buscado são derivações completas do mesmo dia, e somar as
// duas inflaria a receita.
func (m BucketMap) MergeMissing(from BucketMap) {
	for key, bucket := range from {
		if _, ok := m[key]; ok {
			continue
		}
		m[key] = bucket
	}
}

// Clone devolve uma cópia independente do mapa.
func (m BucketMap) Clone() BucketMap {
	out := make(BucketMap, len(m))
	for key, bucket := range m {
		out[key] = bucket
	}
	return out
}

// SalesCache é o estado persistido do cache incremental de vendas.
type SalesCache struct {
	LastUpdateDateKey string
	Buckets           BucketMap
}

// ChartPoint é uma linha pronta para o gráfico do painel; nunca é
// persistida.
type ChartPoint struct {
	DateKey string  `json:"date_key"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// SalesSummary alimenta os cartões de totais do painel.
type SalesSummary struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalOrders  int     `json:"total_orders"`
	TodayRevenue float64 `json:"today_revenue"`
	TodayOrders  int     `json:"today_orders"`
	LastUpdate   string  `json:"last_update"`
}

// WindowKind identifica o recorte de janela do gráfico de vendas.
type WindowKind string

const (
	WindowLast7Days  WindowKind = "7d"
	WindowLast30Days WindowKind = "30d"
	WindowLast90Days WindowKind = "90d"
	WindowMonth      WindowKind = "month"
	WindowAllTime    WindowKind = "all"
)

// ValidWindow informa se o recorte solicitado é suportado.
func ValidWindow(kind WindowKind) bool {
	switch kind {
	case WindowLast7Days, WindowLast30Days, WindowLast90Days, WindowMonth, WindowAllTime:
		return true
	}
	return false
}
