package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/config"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/usecases/reporting"
)

// SalesCacheWarmService agenda o pré-aquecimento do cache de vendas fora
// do horário de pico, para que a primeira visita do dia ao painel já
// encontre o cache do dia corrente.
type SalesCacheWarmService struct {
	scheduler *gocron.Scheduler
	config    config.SalesCacheWarm
	reporter  reporting.Reporter

	warmRunning         bool
	warmMutex           sync.Mutex
	lastWarmStartedAt   time.Time
	lastWarmCompletedAt time.Time
}

// NewSalesCacheWarmService cria o serviço de pré-aquecimento do cache de vendas
func NewSalesCacheWarmService(reporter reporting.Reporter, appConfig *config.Config) *SalesCacheWarmService {
	warmConfig := appConfig.SalesCacheWarm

	logrus.WithFields(logrus.Fields{
		"cron_schedule": warmConfig.CronSchedule,
		"warm_enabled":  warmConfig.Enabled,
	}).Info("Configuração do agendador de pré-aquecimento do cache de vendas carregada")

	return &SalesCacheWarmService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    warmConfig,
		reporter:  reporter,
	}
}

// Start inicia o agendador
func (s *SalesCacheWarmService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Pré-aquecimento do cache de vendas desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de pré-aquecimento do cache de vendas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.warmSalesCache()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar pré-aquecimento do cache de vendas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de pré-aquecimento do cache de vendas")
		s.scheduler.Stop()
	}()

	return nil
}

// warmSalesCache roda um ciclo completo do cache incremental
func (s *SalesCacheWarmService) warmSalesCache() {
	startTime := time.Now()

	s.warmMutex.Lock()
	if s.warmRunning {
		s.warmMutex.Unlock()
		logrus.Info("Pré-aquecimento do cache de vendas já em andamento, ignorando")
		return
	}
	s.warmRunning = true
	s.lastWarmStartedAt = startTime
	s.warmMutex.Unlock()

	defer func() {
		s.warmMutex.Lock()
		s.warmRunning = false
		s.warmMutex.Unlock()
	}()

	logrus.Info("Iniciando pré-aquecimento do cache de vendas")

	cache, err := s.reporter.RunCycle()
	if err != nil {
		logrus.WithError(err).Error("Erro no pré-aquecimento do cache de vendas")
		return
	}

	logrus.WithFields(logrus.Fields{
		"duration":    time.Since(startTime).String(),
		"buckets":     len(cache.Buckets),
		"last_update": cache.LastUpdateDateKey,
	}).Info("Pré-aquecimento do cache de vendas concluído")

	s.warmMutex.Lock()
	s.lastWarmCompletedAt = time.Now()
	s.warmMutex.Unlock()
}

// TriggerManualWarm inicia manualmente um pré-aquecimento do cache de vendas
func (s *SalesCacheWarmService) TriggerManualWarm() {
	s.warmMutex.Lock()
	if s.warmRunning {
		s.warmMutex.Unlock()
		logrus.Info("Pré-aquecimento do cache de vendas já em andamento, ignorando solicitação manual")
		return
	}
	s.warmMutex.Unlock()

	logrus.Info("Iniciando pré-aquecimento manual do cache de vendas")
	go s.warmSalesCache()
}

// GetStatus retorna o status atual do agendador
func (s *SalesCacheWarmService) GetStatus() map[string]any {
	s.warmMutex.Lock()
	startedAt := s.lastWarmStartedAt
	completedAt := s.lastWarmCompletedAt
	s.warmMutex.Unlock()

	return map[string]any{
		"warm_enabled":           s.config.Enabled,
		"warm_cron":              s.config.CronSchedule,
		"last_warm_started_at":   startedAt,
		"last_warm_completed_at": completedAt,
	}
}
