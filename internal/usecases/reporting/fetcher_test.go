package reporting

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Janssemsan72/Suamusicafacil-sub000/infrastructure/recordsource"
	"github.com/Janssemsan72/Suamusicafacil-sub000/infrastructure/recordsource/mocks"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/config"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
)

func testEngineConfig() config.SalesEngine {
	return config.SalesEngine{
		PageSize:            2,
		CountTrustThreshold: 50000,
		MaxChartRows:        200000,
		MaxExportRows:       1000000,
		RetentionDays:       90,
		EpochMonth:          11,
		EpochDay:            3,
	}
}

func ordersPage(prefix string, n int) []*domain.OrderRecord {
	page := make([]*domain.OrderRecord, 0, n)
	for i := 0; i < n; i++ {
		page = append(page, paidOrder(fmt.Sprintf("%s_%d", prefix, i), "2024-11-04", int64Ptr(4990)))
	}
	return page
}

func TestFetchPaidOrders_PaginacaoSequencial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockOrderSource(ctrl)

	source.EXPECT().
		CountOrders(gomock.Any()).
		Return(int64(5), nil)

	// Três páginas: 2 + 2 + 1; a última, menor que o tamanho da página,
	// encerra a paginação.
	gomock.InOrder(
		source.EXPECT().
			SelectOrders(gomock.Any()).
			DoAndReturn(func(params recordsource.SelectParams) ([]*domain.OrderRecord, error) {
				assert.Equal(t, uint64(0), params.Offset)
				return ordersPage("p1", 2), nil
			}),
		source.EXPECT().
			SelectOrders(gomock.Any()).
			DoAndReturn(func(params recordsource.SelectParams) ([]*domain.OrderRecord, error) {
				assert.Equal(t, uint64(2), params.Offset)
				return ordersPage("p2", 2), nil
			}),
		source.EXPECT().
			SelectOrders(gomock.Any()).
			DoAndReturn(func(params recordsource.SelectParams) ([]*domain.OrderRecord, error) {
				assert.Equal(t, uint64(4), params.Offset)
				return ordersPage("p3", 1), nil
			}),
	)

	fetcher := NewFetcher(source, fullCapabilities(), testEngineConfig())

	orders, err := fetcher.FetchPaidOrders(nil, nil, 100)
	require.NoError(t, err)
	assert.Len(t, orders, 5)
}

func TestFetchPaidOrders_ContagemBaixaNaoDispensaPaginacao(t *testing.T) {
	// Contagem abaixo do limiar de confiança não prova ausência de dados:
	// a paginação roda de qualquer forma e encontra os pedidos.
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockOrderSource(ctrl)

	source.EXPECT().
		CountOrders(gomock.Any()).
		Return(int64(0), nil)

	source.EXPECT().
		SelectOrders(gomock.Any()).
		Return(ordersPage("p1", 1), nil)

	fetcher := NewFetcher(source, fullCapabilities(), testEngineConfig())

	orders, err := fetcher.FetchPaidOrders(nil, nil, 100)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestFetchPaidOrders_FonteIndisponivelNaContagem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockOrderSource(ctrl)

	source.EXPECT().
		CountOrders(gomock.Any()).
		Return(int64(0), &pq.Error{Code: "42P01"})

	fetcher := NewFetcher(source, fullCapabilities(), testEngineConfig())

	orders, err := fetcher.FetchPaidOrders(nil, nil, 100)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFetchPaidOrders_ColunaSomeNoMeioDaPaginacao(t *testing.T) {
	// A coluna de valor desaparece entre páginas (migração concorrente):
	// a MESMA página é re-tentada sem a coluna, sem avanço de offset e
	// sem duplicar resultados.
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockOrderSource(ctrl)

	source.EXPECT().
		CountOrders(gomock.Any()).
		Return(int64(3), nil)

	gomock.InOrder(
		source.EXPECT().
			SelectOrders(gomock.Any()).
			DoAndReturn(func(params recordsource.SelectParams) ([]*domain.OrderRecord, error) {
				assert.Equal(t, uint64(0), params.Offset)
				assert.Contains(t, params.Columns, recordsource.ColumnAmountCents)
				return ordersPage("p1", 2), nil
			}),
		source.EXPECT().
			SelectOrders(gomock.Any()).
			DoAndReturn(func(params recordsource.SelectParams) ([]*domain.OrderRecord, error) {
				assert.Equal(t, uint64(2), params.Offset)
				return nil, &pq.Error{Code: "42703"}
			}),
		source.EXPECT().
			SelectOrders(gomock.Any()).
			DoAndReturn(func(params recordsource.SelectParams) ([]*domain.OrderRecord, error) {
				// Mesmo offset, agora sem a coluna de valor.
				assert.Equal(t, uint64(2), params.Offset)
				assert.NotContains(t, params.Columns, recordsource.ColumnAmountCents)
				return ordersPage("p2", 1), nil
			}),
	)

	fetcher := NewFetcher(source, fullCapabilities(), testEngineConfig())

	orders, err := fetcher.FetchPaidOrders(nil, nil, 100)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
	assert.False(t, fetcher.Capabilities().HasAmount())
}

func TestFetchPaidOrders_FonteIndisponivelNoMeioDevolveParcial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockOrderSource(ctrl)

	source.EXPECT().
		CountOrders(gomock.Any()).
		Return(int64(10), nil)

	gomock.InOrder(
		source.EXPECT().
			SelectOrders(gomock.Any()).
			Return(ordersPage("p1", 2), nil),
		source.EXPECT().
			SelectOrders(gomock.Any()).
			Return(nil, &pq.Error{Code: "42501"}),
	)

	fetcher := NewFetcher(source, fullCapabilities(), testEngineConfig())

	orders, err := fetcher.FetchPaidOrders(nil, nil, 100)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestFetchPaidOrders_ErroDesconhecidoSobeComParcial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockOrderSource(ctrl)

	source.EXPECT().
		CountOrders(gomock.Any()).
		Return(int64(10), nil)

	gomock.InOrder(
		source.EXPECT().
			SelectOrders(gomock.Any()).
			Return(ordersPage("p1", 2), nil),
		source.EXPECT().
			SelectOrders(gomock.Any()).
			Return(nil, fmt.Errorf("connection reset")),
	)

	fetcher := NewFetcher(source, fullCapabilities(), testEngineConfig())

	orders, err := fetcher.FetchPaidOrders(nil, nil, 100)
	require.Error(t, err)
	assert.Len(t, orders, 2)
}

func TestFetchPaidOrders_TetoDeLinhas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockOrderSource(ctrl)

	source.EXPECT().
		CountOrders(gomock.Any()).
		Return(int64(10), nil)

	// Duas páginas cheias bastam para atingir o teto de 3 linhas.
	gomock.InOrder(
		source.EXPECT().
			SelectOrders(gomock.Any()).
			Return(ordersPage("p1", 2), nil),
		source.EXPECT().
			SelectOrders(gomock.Any()).
			Return(ordersPage("p2", 2), nil),
	)

	fetcher := NewFetcher(source, fullCapabilities(), testEngineConfig())

	orders, err := fetcher.FetchPaidOrders(nil, nil, 3)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}
