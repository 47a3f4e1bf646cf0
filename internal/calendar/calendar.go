// Package calendar converte timestamps para dias-calendário no fuso fixo
// de negócio (America/Sao_Paulo), independente do fuso do servidor ou do
// cliente. Toda a agregação de vendas usa estas funções como fronteira de
// dia.
package calendar

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// BusinessTimezone é o fuso único usado para calcular fronteiras de dia.
const BusinessTimezone = "America/Sao_Paulo"

var location = loadBusinessLocation()

func loadBusinessLocation() *time.Location {
	loc, err := time.LoadLocation(BusinessTimezone)
	if err != nil {
		// Fallback para hosts sem tzdata. O offset fixo de -3h é correto
		// para o regime atual do Brasil sem horário de verão; precisa ser
		// revisto se o horário de verão voltar.
		logrus.WithError(err).Warnf("calendar: tzdata indisponível para %s, usando offset fixo -03", BusinessTimezone)
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}

// Location devolve o *time.Location do fuso de negócio.
func Location() *time.Location {
	return location
}

// ToBucketKey converte um timestamp para a chave de dia (YYYY-MM-DD) no
// fuso de negócio. Determinística e monotônica em relação ao timestamp.
func ToBucketKey(t time.Time) string {
	return t.In(location).Format(time.DateOnly)
}

// Day representa um dia-calendário no fuso de negócio.
type Day struct {
	Year    int
	Month   time.Month
	DayNum  int
	DateKey string
}

// TodayIn devolve o dia de negócio do instante informado.
func TodayIn(now time.Time) Day {
	local := now.In(location)
	return Day{
		Year:    local.Year(),
		Month:   local.Month(),
		DayNum:  local.Day(),
		DateKey: local.Format(time.DateOnly),
	}
}

// Today devolve o dia de negócio atual.
func Today() Day {
	return TodayIn(time.Now())
}

// DayBounds devolve o intervalo [início, fim) do dia informado, no fuso
// de negócio. O fim é a meia-noite do dia seguinte (exclusivo).
func DayBounds(dateKey string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(time.DateOnly, dateKey, location)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("chave de data inválida %q: %w", dateKey, err)
	}
	return day, day.AddDate(0, 0, 1), nil
}

// AddDays devolve a chave de data n dias depois (ou antes, se negativo)
// da chave informada. Chaves inválidas são devolvidas sem alteração.
func AddDays(dateKey string, n int) string {
	day, err := time.ParseInLocation(time.DateOnly, dateKey, location)
	if err != nil {
		return dateKey
	}
	return day.AddDate(0, 0, n).Format(time.DateOnly)
}

// MonthKey devolve o prefixo YYYY-MM da chave de data.
func MonthKey(dateKey string) string {
	if len(dateKey) < 7 {
		return dateKey
	}
	return dateKey[:7]
}
