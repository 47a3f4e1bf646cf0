package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/scheduler"
	"github.com/Janssemsan72/Suamusicafacil-sub000/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeSalesCacheWarm = "sales-cache-warm"
	CronJobTypeAll            = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	SalesCacheWarmService *scheduler.SalesCacheWarmService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeSalesCacheWarm, CronJobTypeAll:
			if services.SalesCacheWarmService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de pré-aquecimento do cache de vendas não disponível", nil)
				return
			}
			services.SalesCacheWarmService.TriggerManualWarm()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: sales-cache-warm, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"sales-cache-warm": services.SalesCacheWarmService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
