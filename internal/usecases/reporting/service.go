package reporting

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Janssemsan72/Suamusicafacil-sub000/infrastructure/cachestore"
	"github.com/Janssemsan72/Suamusicafacil-sub000/infrastructure/recordsource"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/calendar"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/config"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
	"github.com/Janssemsan72/Suamusicafacil-sub000/pkg/utils"
)

// ErrUnsupportedWindow indica uma janela de gráfico fora do conjunto
// suportado.
var ErrUnsupportedWindow = errors.New("janela de gráfico não suportada")

// Service implementa Reporter sobre o record source e o cache
// incremental persistido.
//
// Modelo de concorrência: leituras servem o cache persistido
// imediatamente (mesmo de um dia anterior) e disparam a atualização em
// segundo plano, sem bloquear o chamador. Escritas do cache são
// last-write-wins por desenho, já que cada ciclo re-deriva o estado a
// partir da fonte.
type Service struct {
	cfg       *config.Config
	source    recordsource.OrderSource
	store     cachestore.CacheStore
	overrides []domain.ManualOverride
	now       func() time.Time

	mu         sync.Mutex
	fetcher    *Fetcher
	refreshing bool
}

// NewService cria o serviço de relatórios. A sonda de esquema roda de
// forma preguiçosa no primeiro ciclo, não na construção.
func NewService(cfg *config.Config, source recordsource.OrderSource, store cachestore.CacheStore, overrides []domain.ManualOverride) *Service {
	return &Service{
		cfg:       cfg,
		source:    source,
		store:     store,
		overrides: overrides,
		now:       time.Now,
	}
}

// ensureFetcher devolve o fetcher da sessão, sondando o esquema na
// primeira chamada. Uma sonda que falha NÃO fixa a capability: a
// próxima chamada sonda de novo, para que um deployment que ganhou a
// tabela depois do boot passe a ser visto.
func (s *Service) ensureFetcher() (*Fetcher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fetcher != nil {
		return s.fetcher, nil
	}

	caps, err := ProbeSchema(s.source)
	if err != nil {
		return nil, errors.Wrap(err, "erro na sonda de esquema do record source")
	}

	s.fetcher = NewFetcher(s.source, caps, s.cfg.SalesEngine)
	return s.fetcher, nil
}

// ChartSeries devolve a série da janela pedida. Cache persistido
// presente: formata e devolve na hora, agendando um ciclo em segundo
// plano — toda leitura re-deriva o dia atual, mesmo quando o cache já é
// de hoje, para que vendas intra-dia entrem sem depender do cron de
// pré-aquecimento. Cache frio: roda um ciclo completo de forma síncrona.
func (s *Service) ChartSeries(kind domain.WindowKind, selectedMonth string) ([]domain.ChartPoint, error) {
	if !domain.ValidWindow(kind) {
		return nil, errors.Wrapf(ErrUnsupportedWindow, "janela %q", kind)
	}

	today := calendar.TodayIn(s.now())

	cache, err := s.store.Get()
	if err != nil {
		logrus.WithError(err).Warn("sales: falha ao ler o cache persistido, rodando ciclo completo")
	}

	if cache == nil {
		cache, err = s.RunCycle()
		if err != nil {
			return nil, err
		}
	} else {
		s.refreshAsync()
	}

	return FormatSeries(cache.Buckets, kind, selectedMonth, today, s.epochKeyFor(today)), nil
}

// Summary devolve os totais agregados dos cartões do painel, derivados
// do mesmo cache que alimenta os gráficos.
func (s *Service) Summary() (*domain.SalesSummary, error) {
	today := calendar.TodayIn(s.now())

	cache, err := s.store.Get()
	if err != nil {
		logrus.WithError(err).Warn("sales: falha ao ler o cache persistido para o resumo, rodando ciclo completo")
	}

	if cache == nil {
		cache, err = s.RunCycle()
		if err != nil {
			return nil, err
		}
	} else {
		s.refreshAsync()
	}

	var totalCents int64
	var totalOrders int
	for _, bucket := range cache.Buckets {
		totalCents += bucket.RevenueCents
		totalOrders += bucket.Count
	}

	todayBucket := cache.Buckets[today.DateKey]

	return &domain.SalesSummary{
		TotalRevenue: utils.RoundWithTwoDecimalPlace(float64(totalCents) / 100),
		TotalOrders:  totalOrders,
		TodayRevenue: utils.RoundWithTwoDecimalPlace(todayBucket.Revenue()),
		TodayOrders:  todayBucket.Count,
		LastUpdate:   cache.LastUpdateDateKey,
	}, nil
}

// ExportOrders devolve os pedidos pagos crus do intervalo, limitados ao
// teto de exportação. Não passa pelo cache: exportação é sempre fresca.
func (s *Service) ExportOrders(startTime, endTime *time.Time) ([]*domain.OrderRecord, error) {
	fetcher, err := s.ensureFetcher()
	if err != nil {
		return nil, err
	}
	return fetcher.FetchPaidOrders(startTime, endTime, s.cfg.SalesEngine.MaxExportRows)
}

// refreshAsync agenda um ciclo do cache em segundo plano, no máximo um
// por vez. Leituras concorrentes seguem servindo o estado persistido.
func (s *Service) refreshAsync() {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		return
	}
	s.refreshing = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.refreshing = false
			s.mu.Unlock()
		}()

		if _, err := s.RunCycle(); err != nil {
			logrus.WithError(err).Warn("sales: ciclo de atualização em segundo plano falhou")
		}
	}()
}
