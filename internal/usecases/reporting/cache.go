package reporting

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/calendar"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
	"github.com/Janssemsan72/Suamusicafacil-sub000/pkg/utils"
)

// RunCycle executa um ciclo completo do cache incremental:
//
//  1. carrega o cache persistido e separa os buckets históricos válidos;
//  2. verifica lacuna em relação à época fixa da janela de 30 dias e,
//     se necessário, força uma única re-busca histórica (preenchendo
//     apenas dias ausentes no cache);
//  3. re-busca SEMPRE apenas o dia de negócio atual (substituição);
//  4. poda além do horizonte de retenção e persiste, com degradação
//     (subconjunto de 30 dias, depois sem persistir) se a gravação falhar.
//
// A garantia central de desempenho: no máximo uma busca histórica por
// ciclo (só em cache frio ou lacuna detectada) e exatamente uma busca
// do dia atual.
func (s *Service) RunCycle() (*domain.SalesCache, error) {
	runID, _ := utils.GenerateID()
	today := calendar.TodayIn(s.now())

	logger := logrus.WithFields(logrus.Fields{
		"run_id": runID,
		"today":  today.DateKey,
	})
	logger.Debug("Iniciando ciclo do cache de vendas")

	fetcher, err := s.ensureFetcher()
	if err != nil {
		// Fonte indisponível: os buckets já persistidos continuam válidos,
		// então serve o que existe em vez de zerar o painel.
		logger.WithError(err).Warn("Record source indisponível, servindo o cache persistido como está")
		cached, _ := s.store.Get()
		if cached == nil {
			cached = &domain.SalesCache{LastUpdateDateKey: today.DateKey, Buckets: make(domain.BucketMap)}
		}
		return cached, nil
	}

	// Load: buckets históricos válidos do cache persistido. Se o cache é
	// de um dia anterior, o bucket de "hoje" gravado lá é descartado; todo
	// o resto permanece válido e não é re-buscado.
	historical := make(domain.BucketMap)
	cached, err := s.store.Get()
	if err != nil {
		logger.WithError(err).Warn("Falha ao carregar o cache de vendas persistido, tratando como frio")
	}
	if cached != nil {
		for key, bucket := range cached.Buckets {
			if key == today.DateKey && cached.LastUpdateDateKey != today.DateKey {
				continue
			}
			if key == today.DateKey {
				// Válido, mas será substituído pela re-busca do dia.
				continue
			}
			historical[key] = bucket
		}
	}

	// Gap check: sem nenhum bucket a partir da época fixa da janela de 30
	// dias, o histórico é insuficiente (cache construído sob uma janela
	// mais estreita) e uma re-busca completa é forçada.
	epochKey := s.epochKeyFor(today)
	needHistorical := cached == nil
	if !needHistorical && !hasBucketAtOrAfter(historical, epochKey, today.DateKey) {
		logger.WithField("epoch", epochKey).Info("Lacuna detectada em relação à época da janela de 30 dias, forçando re-busca histórica")
		needHistorical = true
	}

	// Historical refetch (condicional): intervalo de retenção excluindo o
	// dia atual. O resultado só preenche dias ausentes: dias que o cache
	// já tem (ex.: anteriores à época, ainda na retenção) ficam como
	// estão, senão a re-busca completa somaria em cima deles.
	if needHistorical {
		start, _, err := calendar.DayBounds(calendar.AddDays(today.DateKey, -(s.cfg.SalesEngine.RetentionDays - 1)))
		if err != nil {
			return nil, fmt.Errorf("erro ao calcular o início do histórico: %w", err)
		}
		todayStart, _, err := calendar.DayBounds(today.DateKey)
		if err != nil {
			return nil, fmt.Errorf("erro ao calcular o início do dia atual: %w", err)
		}

		orders, ferr := fetcher.FetchPaidOrders(&start, &todayStart, s.cfg.SalesEngine.MaxChartRows)
		if ferr != nil {
			logger.WithError(ferr).WithField("rows", len(orders)).Warn("Re-busca histórica incompleta, seguindo com resultado parcial")
		}

		fetched := Aggregate(orders, s.overrides, fetcher.Capabilities().HasAmount())
		historical.MergeMissing(fetched)

		logger.WithFields(logrus.Fields{
			"rows":    len(orders),
			"buckets": len(fetched),
		}).Info("Re-busca histórica concluída")
	}

	// Today refetch (sempre): escopo de exatamente um dia de negócio; o
	// bucket de hoje é substituído, nunca somado a um valor velho.
	todayStart, todayEnd, err := calendar.DayBounds(today.DateKey)
	if err != nil {
		return nil, fmt.Errorf("erro ao calcular os limites do dia atual: %w", err)
	}

	combined := historical.Clone()
	delete(combined, today.DateKey)

	todayOrders, terr := fetcher.FetchPaidOrders(&todayStart, &todayEnd, s.cfg.SalesEngine.MaxChartRows)
	if terr != nil {
		// Mantém o histórico e serve o dia vazio; a próxima leitura tenta
		// de novo porque "hoje" é sempre re-derivado, nunca acumulado.
		logger.WithError(terr).Warn("Re-busca do dia atual falhou, servindo o dia vazio")
	} else {
		todayBuckets := Aggregate(todayOrders, s.overrides, fetcher.Capabilities().HasAmount())
		if bucket, ok := todayBuckets[today.DateKey]; ok && !bucket.IsEmpty() {
			combined[today.DateKey] = bucket
		}
		// Pedidos de hoje com override para outra data entram só na
		// re-busca histórica; somar o transbordo aqui duplicaria a cada
		// ciclo do mesmo dia.
		if len(todayBuckets) > 1 {
			logger.WithField("spill_keys", len(todayBuckets)-1).Debug("Overrides de pedidos de hoje apontam para outras datas, deixando para a reconciliação histórica")
		}
	}

	// Combine & persist: poda além do horizonte de retenção e grava com
	// degradação. Falha de persistência nunca aborta a leitura.
	retentionCutoff := calendar.AddDays(today.DateKey, -(s.cfg.SalesEngine.RetentionDays - 1))
	for key, bucket := range combined {
		if key < retentionCutoff || bucket.IsEmpty() {
			delete(combined, key)
		}
	}

	cache := &domain.SalesCache{
		LastUpdateDateKey: today.DateKey,
		Buckets:           combined,
	}

	s.persistWithFallback(cache, today, logger)

	logger.WithField("buckets", len(combined)).Debug("Ciclo do cache de vendas concluído")
	return cache, nil
}

// persistWithFallback tenta gravar o cache completo; em falha (ex.:
// quota de armazenamento), degrada para um subconjunto de 30 dias e, se
// ainda assim falhar, segue sem persistir (o cache se reconstrói no
// próximo ciclo).
func (s *Service) persistWithFallback(cache *domain.SalesCache, today calendar.Day, logger *logrus.Entry) {
	err := s.store.Set(cache)
	if err == nil {
		return
	}
	logger.WithError(err).Warn("Falha ao persistir o cache de vendas completo, tentando subconjunto de 30 dias")

	trimCutoff := calendar.AddDays(today.DateKey, -29)
	trimmed := &domain.SalesCache{
		LastUpdateDateKey: cache.LastUpdateDateKey,
		Buckets:           make(domain.BucketMap),
	}
	for key, bucket := range cache.Buckets {
		if key >= trimCutoff {
			trimmed.Buckets[key] = bucket
		}
	}

	if err := s.store.Set(trimmed); err != nil {
		logger.WithError(err).Warn("Falha ao persistir até o subconjunto do cache de vendas, seguindo sem persistir")
	}
}

// epochKeyFor devolve a chave da época fixa da janela de 30 dias: o dia
// configurado (padrão 3 de novembro) do limite de ano mais recente.
func (s *Service) epochKeyFor(today calendar.Day) string {
	year := today.Year
	epoch := fmt.Sprintf("%04d-%02d-%02d", year, s.cfg.SalesEngine.EpochMonth, s.cfg.SalesEngine.EpochDay)
	if today.DateKey < epoch {
		epoch = fmt.Sprintf("%04d-%02d-%02d", year-1, s.cfg.SalesEngine.EpochMonth, s.cfg.SalesEngine.EpochDay)
	}
	return epoch
}

// hasBucketAtOrAfter verifica se existe algum bucket histórico na época
// ou depois dela (antes de hoje).
func hasBucketAtOrAfter(buckets domain.BucketMap, epochKey, todayKey string) bool {
	if epochKey >= todayKey {
		// Época é hoje ou futura: não há histórico a exigir.
		return true
	}
	for key := range buckets {
		if key >= epochKey && key < todayKey {
			return true
		}
	}
	return false
}
