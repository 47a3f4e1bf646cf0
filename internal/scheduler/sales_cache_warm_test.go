package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/config"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/usecases/reporting/mocks"
)

func warmConfig(enabled bool) *config.Config {
	return &config.Config{
		SalesCacheWarm: config.SalesCacheWarm{
			CronSchedule: "0 3 * * *",
			Enabled:      enabled,
		},
	}
}

func TestSalesCacheWarmService_TriggerManualWarm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)

	done := make(chan struct{})
	reporter.EXPECT().
		RunCycle().
		DoAndReturn(func() (*domain.SalesCache, error) {
			defer close(done)
			return &domain.SalesCache{
				LastUpdateDateKey: "2024-11-05",
				Buckets:           domain.BucketMap{},
			}, nil
		})

	service := NewSalesCacheWarmService(reporter, warmConfig(true))
	service.TriggerManualWarm()

	// Leituras de status durante o aquecimento em andamento.
	statusDone := make(chan struct{})
	go func() {
		defer close(statusDone)
		for i := 0; i < 100; i++ {
			service.GetStatus()
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pré-aquecimento manual não executou o ciclo")
	}
	<-statusDone

	require.Eventually(t, func() bool {
		status := service.GetStatus()
		completedAt, ok := status["last_warm_completed_at"].(time.Time)
		return ok && !completedAt.IsZero()
	}, 2*time.Second, 10*time.Millisecond, "status não registrou a conclusão do aquecimento")

	status := service.GetStatus()
	startedAt, ok := status["last_warm_started_at"].(time.Time)
	require.True(t, ok)
	assert.False(t, startedAt.IsZero())
}

func TestSalesCacheWarmService_DesabilitadoNaoAgenda(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	service := NewSalesCacheWarmService(reporter, warmConfig(false))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start desabilitado não registra job nem toca o reporter.
	require.NoError(t, service.Start(ctx))

	status := service.GetStatus()
	assert.Equal(t, false, status["warm_enabled"])
	assert.Equal(t, "0 3 * * *", status["warm_cron"])
}
