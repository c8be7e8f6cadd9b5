// Package app inicializa todos los componentes de la aplicación.
// app.go es el punto de ensamblaje: cliente del ledger, sesiones,
// handlers de cada caso de uso, dispatcher y planificador.
package app

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/Alexmontesino96/FinancialBotGrok/internal/api"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/bot"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/config"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/features/edit"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/features/expenses"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/features/family"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/features/payments"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/flow"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/jobs"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/session"
)

// App contiene los componentes vivos de la aplicación.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	BotAPI    *tgbotapi.BotAPI
}

// New crea e inicializa la aplicación. El orden importa: los handlers
// dependen del cliente y del sender, y el dispatcher de los handlers.
func New(cfg *config.Config) (*App, error) {
	// === 1. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("error creando la API de Telegram: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Autorizado como @%s", botAPI.Self.UserName)

	// === 2. Cliente del ledger y sesiones ===
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	sessions := session.NewStore(client)

	// === 3. Sender y motor de flujos ===
	sender := bot.NewTelegramSender(botAPI)
	runner := flow.NewRunner(sender)

	// === 4. Handlers por caso de uso ===
	expenseHandler := expenses.NewHandler(client, sender)
	paymentHandler := payments.NewHandler(client, sender)
	editHandler := edit.NewHandler(client, sender)
	familyHandler := family.NewHandler(client, sender, botAPI.Self.UserName)

	// === 5. Dispatcher ===
	b := bot.New(botAPI, cfg, sessions, runner, sender,
		expenseHandler, paymentHandler, editHandler, familyHandler)

	// === 6. Planificador de tareas ===
	scheduler := jobs.NewScheduler(client, sessions, cfg.HealthProbeSchedule)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		BotAPI:    botAPI,
	}, nil
}
