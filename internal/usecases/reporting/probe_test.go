package reporting

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Janssemsan72/Suamusicafacil-sub000/infrastructure/recordsource"
	"github.com/Janssemsan72/Suamusicafacil-sub000/infrastructure/recordsource/mocks"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
)

func TestProbeSchema(t *testing.T) {
	missingColumn := &pq.Error{Code: "42703", Message: "column \"amount_cents\" does not exist"}
	missingTable := &pq.Error{Code: "42P01", Message: "relation \"orders\" does not exist"}
	permissionDenied := &pq.Error{Code: "42501", Message: "permission denied for relation orders"}

	tests := []struct {
		name     string
		setup    func(source *mocks.MockOrderSource)
		validate func(t *testing.T, caps SchemaCapabilities, err error)
	}{
		{
			name: "Esquema completo mantem a coluna de valor",
			setup: func(source *mocks.MockOrderSource) {
				source.EXPECT().
					SelectOrders(gomock.Any()).
					Return([]*domain.OrderRecord{}, nil)
			},
			validate: func(t *testing.T, caps SchemaCapabilities, err error) {
				require.NoError(t, err)
				assert.True(t, caps.HasAmount())
				assert.Contains(t, caps.Columns(), recordsource.ColumnAmountCents)
			},
		},
		{
			name: "Coluna de valor ausente rebaixa para o minimo obrigatorio",
			setup: func(source *mocks.MockOrderSource) {
				gomock.InOrder(
					source.EXPECT().
						SelectOrders(gomock.Any()).
						Return(nil, missingColumn),
					source.EXPECT().
						SelectOrders(gomock.Any()).
						DoAndReturn(func(params recordsource.SelectParams) ([]*domain.OrderRecord, error) {
							assert.NotContains(t, params.Columns, recordsource.ColumnAmountCents)
							return []*domain.OrderRecord{}, nil
						}),
				)
			},
			validate: func(t *testing.T, caps SchemaCapabilities, err error) {
				require.NoError(t, err)
				assert.False(t, caps.HasAmount())
				assert.ElementsMatch(t, recordsource.MandatoryColumns, caps.Columns())
			},
		},
		{
			name: "Tabela ausente sobe o erro sem re-tentar",
			setup: func(source *mocks.MockOrderSource) {
				source.EXPECT().
					SelectOrders(gomock.Any()).
					Return(nil, missingTable)
			},
			validate: func(t *testing.T, caps SchemaCapabilities, err error) {
				require.Error(t, err)
				assert.True(t, recordsource.IsSourceUnavailable(err))
			},
		},
		{
			name: "Permissao negada sobe o erro sem re-tentar",
			setup: func(source *mocks.MockOrderSource) {
				source.EXPECT().
					SelectOrders(gomock.Any()).
					Return(nil, permissionDenied)
			},
			validate: func(t *testing.T, caps SchemaCapabilities, err error) {
				require.Error(t, err)
				assert.True(t, recordsource.IsSourceUnavailable(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := mocks.NewMockOrderSource(ctrl)
			tt.setup(source)

			caps, err := ProbeSchema(source)
			tt.validate(t, caps, err)
		})
	}
}
