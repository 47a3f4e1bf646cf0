package reporting

import (
	"github.com/sirupsen/logrus"

	"github.com/Janssemsan72/Suamusicafacil-sub000/infrastructure/recordsource"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
)

// SchemaCapabilities é o conjunto máximo de colunas consultável no
// deployment atual do record source. É produzido uma única vez por sessão
// pela sonda de esquema e injetado no fetcher, em vez de re-sondado a
// cada consulta.
type SchemaCapabilities struct {
	columns   []string
	hasAmount bool
}

// Columns devolve uma cópia do conjunto de colunas consultável.
func (c SchemaCapabilities) Columns() []string {
	out := make([]string, len(c.columns))
	copy(out, c.columns)
	return out
}

// HasAmount informa se a coluna de valor existe neste deployment. Quando
// ausente, os pedidos ainda são contados, mas a contribuição de receita
// é zero.
func (c SchemaCapabilities) HasAmount() bool {
	return c.hasAmount
}

// WithoutAmount devolve a capability rebaixada para o mínimo obrigatório.
func (c SchemaCapabilities) WithoutAmount() SchemaCapabilities {
	return minimalCapabilities()
}

func minimalCapabilities() SchemaCapabilities {
	return SchemaCapabilities{columns: recordsource.MandatoryColumns, hasAmount: false}
}

func fullCapabilities() SchemaCapabilities {
	columns := append([]string{}, recordsource.MandatoryColumns...)
	columns = append(columns, recordsource.ColumnAmountCents)
	return SchemaCapabilities{columns: columns, hasAmount: true}
}

// ProbeSchema descobre, por consulta de tentativa (limit 1), quais colunas
// opcionais existem no record source. Em erro de "coluna inexistente"
// remove a última coluna opcional e tenta de novo, até sobrar apenas o
// mínimo obrigatório. Qualquer outra falha não é re-tentada com menos
// colunas: sobe para o chamador, que deve tratá-la como "zero resultados".
func ProbeSchema(source recordsource.OrderSource) (SchemaCapabilities, error) {
	caps := fullCapabilities()

	for {
		_, err := source.SelectOrders(recordsource.SelectParams{
			Columns: caps.columns,
			Status:  domain.OrderStatusPaid,
			Limit:   1,
		})
		if err == nil {
			logrus.WithFields(logrus.Fields{
				"columns":    caps.columns,
				"has_amount": caps.hasAmount,
			}).Debug("Sonda de esquema concluída")
			return caps, nil
		}

		if recordsource.IsMissingColumn(err) && caps.hasAmount {
			logrus.WithError(err).Warn("Coluna de valor ausente no record source, rebaixando o select")
			caps = caps.WithoutAmount()
			continue
		}

		// Tabela ausente, permissão negada ou falha desconhecida: o
		// chamador decide a degradação (gráficos vazios, nunca crash).
		return caps, err
	}
}
