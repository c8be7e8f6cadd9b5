// Package main es el punto de entrada del bot.
// Carga la configuración, inicializa la aplicación y arranca el polling.
// Soporta graceful shutdown con SIGINT/SIGTERM.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/Alexmontesino96/FinancialBotGrok/internal/app"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/config"
)

func main() {
	setupLogging()

	// .env es opcional: en producción las variables vienen del entorno.
	if err := godotenv.Load(); err == nil {
		log.Debug("Variables cargadas desde .env")
	}

	log.Info("=== Bot de gastos arrancando ===")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("No se pudo cargar la configuración")
	}

	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("No se pudo inicializar la aplicación")
	}

	application.Scheduler.Start(ctx)
	defer application.Scheduler.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go application.Bot.Start(ctx)

	log.Info("=== Bot listo ===")

	sig := <-quit
	log.Infof("Señal %s recibida, deteniendo...", sig)

	cancel()

	log.Info("=== Bot detenido ===")
}

// setupLogging fija el formato de los logs.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
