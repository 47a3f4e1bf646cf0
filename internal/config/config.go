package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	SalesEngine    SalesEngine    `mapstructure:",squash"`
	SalesCacheWarm SalesCacheWarm `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// SalesEngine reúne os limites do engine de agregação de vendas. Os
// valores padrão (página 1000, limiar de confiança 50000, tetos 200000 e
// 1000000, retenção 90 dias, época 03/11) vêm do comportamento observado
// em produção e não são otimizados por teste de carga; revisar antes de
// assumir que são ideais.
type SalesEngine struct {
	PageSize            int    `mapstructure:"sales_fetch_page_size"`
	CountTrustThreshold int64  `mapstructure:"sales_count_trust_threshold"`
	MaxChartRows        int    `mapstructure:"sales_chart_row_cap"`
	MaxExportRows       int    `mapstructure:"sales_export_row_cap"`
	RetentionDays       int    `mapstructure:"sales_cache_retention_days"`
	EpochMonth          int    `mapstructure:"sales_epoch_month"`
	EpochDay            int    `mapstructure:"sales_epoch_day"`
	CacheBackend        string `mapstructure:"sales_cache_backend"`
	CacheFilePath       string `mapstructure:"sales_cache_file"`
	OverridesFile       string `mapstructure:"sales_manual_overrides_file"`
}

type SalesCacheWarm struct {
	CronSchedule string `mapstructure:"sales_cache_warm_cron"`
	Enabled      bool   `mapstructure:"sales_cache_warm_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/suamusica")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	// Limites do engine de vendas
	viper.SetDefault("SALES_FETCH_PAGE_SIZE", 1000)        // Linhas por página na paginação manual
	viper.SetDefault("SALES_COUNT_TRUST_THRESHOLD", 50000) // Contagens abaixo disso não são confiáveis
	viper.SetDefault("SALES_CHART_ROW_CAP", 200000)        // Teto de linhas para consultas de gráfico
	viper.SetDefault("SALES_EXPORT_ROW_CAP", 1000000)      // Teto de linhas para exports brutos
	viper.SetDefault("SALES_CACHE_RETENTION_DAYS", 90)     // Horizonte de retenção do cache
	viper.SetDefault("SALES_EPOCH_MONTH", 11)              // Época fixa da janela de 30 dias: 3 de novembro
	viper.SetDefault("SALES_EPOCH_DAY", 3)
	viper.SetDefault("SALES_CACHE_BACKEND", "file") // file | postgres | memory
	viper.SetDefault("SALES_CACHE_FILE", "data/sales_data_cache_v1.json")
	viper.SetDefault("SALES_MANUAL_OVERRIDES_FILE", "")

	// Aquecimento agendado do cache de vendas
	viper.SetDefault("SALES_CACHE_WARM_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("SALES_CACHE_WARM_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
