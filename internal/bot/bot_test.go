package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Alexmontesino96/FinancialBotGrok/internal/api"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/features/edit"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/features/expenses"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/features/family"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/features/payments"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/flow"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/session"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/ui"
)

type fakeSender struct {
	texts []string
}

func (f *fakeSender) Send(chatID int64, text string)                         { f.texts = append(f.texts, text) }
func (f *fakeSender) SendMarkdown(chatID int64, text string, kb ui.Keyboard) { f.texts = append(f.texts, text) }
func (f *fakeSender) SendKeyboard(chatID int64, text string, kb ui.Keyboard) { f.texts = append(f.texts, text) }
func (f *fakeSender) SendMenu(chatID int64, text string)                     { f.texts = append(f.texts, text) }
func (f *fakeSender) SendPhoto(chatID int64, caption string, png []byte)     { f.texts = append(f.texts, caption) }

func (f *fakeSender) saw(sub string) bool {
	for _, t := range f.texts {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

// newTestBot arma un Bot sin la API de Telegram: route no la toca.
func newTestBot(t *testing.T, backend http.Handler) (*Bot, *fakeSender, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, 2*time.Second)
	sender := &fakeSender{}
	runner := flow.NewRunner(sender)
	sessions := session.NewStore(client)

	b := &Bot{
		sessions:       sessions,
		runner:         runner,
		sender:         sender,
		expenseHandler: expenses.NewHandler(client, sender),
		paymentHandler: payments.NewHandler(client, sender),
		editHandler:    edit.NewHandler(client, sender),
		familyHandler:  family.NewHandler(client, sender, "gastos_bot"),
	}
	return b, sender, sessions.Get(42)
}

func familyBackend() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/members/42", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "m1", "name": "Ana", "telegram_id": "42", "family_id": "f1"}`))
	})
	return mux
}

func ev(text string) flow.Event {
	return flow.Event{ChatID: 42, UserID: 42, Text: text, Name: "Ana"}
}

func TestRouteUnknownTextShowsMenu(t *testing.T) {
	b, sender, sess := newTestBot(t, familyBackend())

	b.route(context.Background(), sess, ev("hola"))

	if !sender.saw(ui.MsgUnknownText) {
		t.Errorf("texto suelto debe volver al menú: %q", sender.texts)
	}
}

func TestRouteMenuButtonStartsFlow(t *testing.T) {
	b, sender, sess := newTestBot(t, familyBackend())

	b.route(context.Background(), sess, ev(ui.BtnCreateExpense))

	if name, active := b.runner.ActiveFlow(42); !active || name != "create_expense" {
		t.Fatalf("flujo activo = %q (%v), quiero create_expense", name, active)
	}
	if !sender.saw("Nuevo Gasto") {
		t.Errorf("falta la bienvenida del flujo: %q", sender.texts)
	}
}

func TestRouteActiveFlowConsumesText(t *testing.T) {
	b, sender, sess := newTestBot(t, familyBackend())

	b.route(context.Background(), sess, ev(ui.BtnCreateExpense))
	// Este texto coincide con una etiqueta del menú, pero el flujo
	// activo tiene prioridad: es la descripción del gasto.
	b.route(context.Background(), sess, ev("cena con amigos"))

	if !sender.saw("cena con amigos") {
		t.Errorf("el flujo debió tomar el texto como descripción: %q", sender.texts)
	}
	draft, ok := sess.ExpenseDraft()
	if !ok || draft.Description != "cena con amigos" {
		t.Errorf("borrador = %+v (%v)", draft, ok)
	}
}

func TestRouteCancelCommandWithoutFlow(t *testing.T) {
	b, sender, sess := newTestBot(t, familyBackend())

	b.route(context.Background(), sess, ev("/cancel"))

	if !sender.saw(ui.MsgMainMenu) {
		t.Errorf("sin flujo activo /cancel vuelve al menú: %q", sender.texts)
	}
}

func TestRouteCancelCommandCancelsFlow(t *testing.T) {
	b, sender, sess := newTestBot(t, familyBackend())

	b.route(context.Background(), sess, ev(ui.BtnCreateExpense))
	b.route(context.Background(), sess, ev("/cancel"))

	if _, active := b.runner.ActiveFlow(42); active {
		t.Error("/cancel debe terminar el flujo activo")
	}
	if !sender.saw(ui.MsgCancelled) {
		t.Errorf("falta la despedida de cancelación: %q", sender.texts)
	}
}

func TestRouteStartCommand(t *testing.T) {
	b, sender, sess := newTestBot(t, familyBackend())

	b.route(context.Background(), sess, ev("/start"))

	if !sender.saw(ui.MsgAlreadyInFamily) {
		t.Errorf("usuario con familia va directo al menú: %q", sender.texts)
	}
}
