package reporting

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/calendar"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
	"github.com/Janssemsan72/Suamusicafacil-sub000/pkg/utils"
)

// Abreviações de mês em pt-BR para os rótulos da série mensal.
var monthAbbreviations = [...]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// FormatSeries converte o mapa de buckets na série ordenada que o
// gráfico consome. Cada janela tem sua própria regra de recorte:
//
//   - 7d e 90d: últimos N dias incluindo hoje, APENAS dias com dados;
//   - 30d: da época fixa até hoje, preenchendo dias vazios com zero
//     (o eixo do gráfico principal nunca encolhe);
//   - month: todos os dias com dados do mês selecionado (YYYY-MM);
//     sem seleção, o mês corrente;
//   - all: agregação mensal de todo o histórico.
//
// A receita sai em reais (float) apenas aqui, na borda de apresentação;
// todo o resto do pipeline trabalha em centavos inteiros.
func FormatSeries(buckets domain.BucketMap, kind domain.WindowKind, selectedMonth string, today calendar.Day, epochKey string) []domain.ChartPoint {
	switch kind {
	case domain.WindowLast7Days:
		return trailingDays(buckets, today, 7)
	case domain.WindowLast30Days:
		return gapFilledRange(buckets, epochKey, today.DateKey)
	case domain.WindowLast90Days:
		return trailingDays(buckets, today, 90)
	case domain.WindowMonth:
		if selectedMonth == "" {
			selectedMonth = calendar.MonthKey(today.DateKey)
		}
		return monthDays(buckets, selectedMonth)
	case domain.WindowAllTime:
		return monthlySeries(buckets)
	}
	return []domain.ChartPoint{}
}

// trailingDays devolve os últimos n dias (incluindo hoje) que possuem
// dados, em ordem crescente.
func trailingDays(buckets domain.BucketMap, today calendar.Day, n int) []domain.ChartPoint {
	cutoff := calendar.AddDays(today.DateKey, -(n - 1))

	points := make([]domain.ChartPoint, 0, n)
	for key, bucket := range buckets {
		if key < cutoff || key > today.DateKey || bucket.IsEmpty() {
			continue
		}
		points = append(points, dailyPoint(key, bucket))
	}

	sortPoints(points)
	return points
}

// gapFilledRange devolve um ponto para CADA dia entre startKey e endKey
// (inclusive), com zeros onde não há bucket. É a janela principal do
// painel: o tamanho da série só depende do intervalo, nunca dos dados.
func gapFilledRange(buckets domain.BucketMap, startKey, endKey string) []domain.ChartPoint {
	points := make([]domain.ChartPoint, 0, 32)
	for key := startKey; key <= endKey; {
		points = append(points, dailyPoint(key, buckets[key]))
		next := calendar.AddDays(key, 1)
		if next == key {
			// Chave malformada não avança; interrompe em vez de repetir.
			break
		}
		key = next
	}
	return points
}

// monthDays devolve os dias com dados do mês selecionado (YYYY-MM).
func monthDays(buckets domain.BucketMap, selectedMonth string) []domain.ChartPoint {
	points := make([]domain.ChartPoint, 0, 31)
	for key, bucket := range buckets {
		if calendar.MonthKey(key) != selectedMonth || bucket.IsEmpty() {
			continue
		}
		points = append(points, dailyPoint(key, bucket))
	}

	sortPoints(points)
	return points
}

// monthlySeries agrega todos os buckets por mês de calendário. A chave
// de cada ponto é o primeiro dia do mês para manter a ordenação textual.
func monthlySeries(buckets domain.BucketMap) []domain.ChartPoint {
	byMonth := make(map[string]domain.DateBucket)
	for key, bucket := range buckets {
		if bucket.IsEmpty() {
			continue
		}
		month := calendar.MonthKey(key)
		acc := byMonth[month]
		acc.RevenueCents += bucket.RevenueCents
		acc.Count += bucket.Count
		byMonth[month] = acc
	}

	points := make([]domain.ChartPoint, 0, len(byMonth))
	for month, bucket := range byMonth {
		points = append(points, domain.ChartPoint{
			DateKey: month + "-01",
			Label:   monthLabel(month),
			Revenue: utils.RoundWithTwoDecimalPlace(bucket.Revenue()),
			Count:   bucket.Count,
		})
	}

	sortPoints(points)
	return points
}

func dailyPoint(key string, bucket domain.DateBucket) domain.ChartPoint {
	return domain.ChartPoint{
		DateKey: key,
		Label:   dayLabel(key),
		Revenue: utils.RoundWithTwoDecimalPlace(bucket.Revenue()),
		Count:   bucket.Count,
	}
}

// dayLabel formata uma chave YYYY-MM-DD como DD/MM.
func dayLabel(dateKey string) string {
	if len(dateKey) != 10 {
		return dateKey
	}
	return dateKey[8:10] + "/" + dateKey[5:7]
}

// monthLabel formata uma chave YYYY-MM como Nov/2024.
func monthLabel(monthKey string) string {
	if len(monthKey) != 7 {
		return monthKey
	}
	month, err := strconv.Atoi(monthKey[5:7])
	if err != nil || month < 1 || month > 12 {
		return monthKey
	}
	return fmt.Sprintf("%s/%s", monthAbbreviations[month-1], monthKey[0:4])
}

func sortPoints(points []domain.ChartPoint) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].DateKey < points[j].DateKey
	})
}
