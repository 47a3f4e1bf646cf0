package handler

import (
	"net/http"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/api/handler/router"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func SalesReports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales/chart",
			Method:  http.MethodGet,
			Handler: GetSalesChart(service),
		},
		{
			Path:    "/v1/sales/summary",
			Method:  http.MethodGet,
			Handler: GetSalesSummary(service),
		},
		{
			Path:    "/v1/sales/orders/export",
			Method:  http.MethodGet,
			Handler: ExportSalesOrders(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
