// Package bot contiene el dispatcher: el polling de Telegram, la
// serialización por usuario y el ruteo de cada mensaje hacia el flujo
// activo o la opción de menú que corresponda.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/Alexmontesino96/FinancialBotGrok/internal/bot/middleware"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/config"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/features/edit"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/features/expenses"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/features/family"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/features/payments"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/flow"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/session"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/ui"
)

// Bot agrupa el polling, las sesiones y los handlers de cada caso de uso.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	sessions    *session.Store
	runner      *flow.Runner
	sender      ui.Sender
	rateLimiter *middleware.RateLimiter

	expenseHandler *expenses.Handler
	paymentHandler *payments.Handler
	editHandler    *edit.Handler
	familyHandler  *family.Handler

	// limitador de paralelismo del procesamiento de updates
	inflight chan struct{}
}

// New arma el bot con todas sus dependencias.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	sessions *session.Store,
	runner *flow.Runner,
	sender ui.Sender,
	expenseHandler *expenses.Handler,
	paymentHandler *payments.Handler,
	editHandler *edit.Handler,
	familyHandler *family.Handler,
) *Bot {
	maxInflight := cfg.BotMaxInflight
	if maxInflight <= 0 {
		maxInflight = 64
	}

	return &Bot{
		api:            api,
		cfg:            cfg,
		sessions:       sessions,
		runner:         runner,
		sender:         sender,
		rateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		expenseHandler: expenseHandler,
		paymentHandler: paymentHandler,
		editHandler:    editHandler,
		familyHandler:  familyHandler,
		inflight:       make(chan struct{}, maxInflight),
	}
}

// Start arranca el long polling de Telegram hasta que el contexto muera.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Bot en marcha, esperando mensajes...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Deteniendo el bot (ctx done)...")
			b.api.StopReceivingUpdates()
			b.rateLimiter.Close()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Canal de updates cerrado, bot detenido")
				return
			}

			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate procesa un update. La sesión del usuario queda bloqueada
// durante todo el mensaje: dos mensajes del mismo usuario nunca se
// procesan en paralelo.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" || update.Message.From == nil {
		return
	}
	message := update.Message
	chatID := message.Chat.ID

	defer middleware.RecoverFromPanic(func() {
		b.sender.SendMenu(chatID, ui.MsgGenericErr+"algo salió mal. Intenta de nuevo.")
	})

	middleware.LogMessage(message)

	if !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		return
	}

	sess := b.sessions.Get(message.From.ID)
	sess.Lock()
	defer sess.Unlock()

	ev := flow.Event{
		ChatID: chatID,
		UserID: message.From.ID,
		Text:   message.Text,
		Name:   message.From.FirstName,
	}
	b.route(ctx, sess, ev)
}

// route decide qué hace el mensaje: primero los comandos, después el
// flujo activo del usuario y por último las opciones del menú.
func (b *Bot) route(ctx context.Context, sess *session.Session, ev flow.Event) {
	switch {
	case ev.Text == "/cancel":
		// El comando equivale al botón: lo resuelve el flujo activo.
		ev.Text = ui.BtnCancel
		if !b.runner.Dispatch(ctx, sess, ev) {
			b.sender.SendMenu(ev.ChatID, ui.MsgMainMenu)
		}
		return

	case ev.Text == "/start" || hasCommandPrefix(ev.Text, "/start "):
		b.runner.Start(ctx, b.familyHandler.Flow(), sess, ev)
		return
	}

	if b.runner.Dispatch(ctx, sess, ev) {
		return
	}

	switch ev.Text {
	case ui.BtnCreateExpense:
		b.runner.Start(ctx, b.expenseHandler.Flow(), sess, ev)
	case ui.BtnListExpenses:
		b.expenseHandler.List(ctx, sess, ev)
	case ui.BtnBalances:
		b.familyHandler.Balances(ctx, sess, ev)
	case ui.BtnRegisterPay:
		b.runner.Start(ctx, b.paymentHandler.Flow(), sess, ev)
	case ui.BtnFamilyInfo:
		b.familyHandler.Info(ctx, sess, ev)
	case ui.BtnShareInvite:
		b.familyHandler.Invite(ctx, sess, ev)
	case ui.BtnEditDelete:
		b.runner.Start(ctx, b.editHandler.Flow(), sess, ev)
	default:
		b.sender.SendMenu(ev.ChatID, ui.MsgUnknownText)
	}
}

func hasCommandPrefix(text, prefix string) bool {
	return len(text) >= len(prefix) && text[:len(prefix)] == prefix
}
