package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Janssemsan72/Suamusicafacil-sub000/infrastructure/cachestore"
	"github.com/Janssemsan72/Suamusicafacil-sub000/infrastructure/database/postgres"
	"github.com/Janssemsan72/Suamusicafacil-sub000/infrastructure/recordsource"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/api"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/config"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/scheduler"
	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	orderSource := recordsource.NewOrderSource(pgConn)
	store := cacheStore(cfg, pgConn)
	overrides := reporting.LoadOverrides(cfg.SalesEngine.OverridesFile)

	reportingService := reporting.NewService(cfg, orderSource, store, overrides)

	salesCacheWarmService := scheduler.NewSalesCacheWarmService(reportingService, cfg)
	if err := salesCacheWarmService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de pré-aquecimento do cache de vendas")
	} else {
		logrus.Info("Agendador de pré-aquecimento do cache de vendas iniciado com sucesso")
	}

	server, err := api.New(cfg, reportingService, salesCacheWarmService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// cacheStore escolhe o backend de persistência do cache de vendas.
// Backend quebrado degrada para memória: o painel sobe de qualquer
// forma, apenas sem cache entre reinícios.
func cacheStore(cfg *config.Config, conn *postgres.Connection) cachestore.CacheStore {
	switch cfg.SalesEngine.CacheBackend {
	case "postgres":
		store, err := cachestore.NewPostgresStore(conn)
		if err != nil {
			logrus.WithError(err).Warn("Erro ao preparar o cache de vendas no PostgreSQL, usando memória")
			return cachestore.NewMemoryStore()
		}
		return store

	case "memory":
		return cachestore.NewMemoryStore()

	default:
		store, err := cachestore.NewFileStore(cfg.SalesEngine.CacheFilePath)
		if err != nil {
			logrus.WithError(err).Warn("Erro ao preparar o cache de vendas em arquivo, usando memória")
			return cachestore.NewMemoryStore()
		}
		return store
	}
}
