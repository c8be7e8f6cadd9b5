package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Alexmontesino96/FinancialBotGrok/internal/api"
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

// debtBackend simula una familia en la que el usuario 42 (miembro m1)
// le debe $30 a Luis (miembro m2).
func debtBackend(posts *int, debts string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/members/42", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "m1", "name": "Ana", "telegram_id": "42", "family_id": "f1"}`))
	})
	mux.HandleFunc("/families/f1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "f1", "name": "Casa", "members": [` +
			`{"id": "m1", "name": "Ana", "telegram_id": "42"},` +
			`{"id": "m2", "name": "Luis", "telegram_id": "77"}]}`))
	})
	mux.HandleFunc("/families/f1/balances", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"member_id": "m1", "debts": [` + debts + `]}]`))
	})
	mux.HandleFunc("/payments", func(w http.ResponseWriter, r *http.Request) {
		*posts++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "p1", "amount": 30, "from_member": "m1", "to_member": "m2"}`))
	})
	return mux
}

type fixture struct {
	sess   *session.Session
	sender *fakeSender
	runner *flow.Runner
	h      *Handler
}

func newFixture(t *testing.T, backend http.Handler) *fixture {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, 2*time.Second)
	sender := &fakeSender{}
	return &fixture{
		sess:   session.NewStore(client).Get(42),
		sender: sender,
		runner: flow.NewRunner(sender),
		h:      NewHandler(client, sender),
	}
}

func (fx *fixture) start() {
	fx.runner.Start(context.Background(), fx.h.Flow(), fx.sess, flow.Event{ChatID: 42, UserID: 42})
}

func (fx *fixture) send(text string) {
	fx.runner.Dispatch(context.Background(), fx.sess, flow.Event{ChatID: 42, UserID: 42, Text: text})
}

func TestPaymentHappyPath(t *testing.T) {
	var posts int
	fx := newFixture(t, debtBackend(&posts, `{"to": "Luis", "amount": 30}`))

	fx.start()
	fx.send("Luis ($30.00)")
	fx.send("25")
	fx.send(ui.BtnConfirm)

	if posts != 1 {
		t.Fatalf("posts = %d, quiero exactamente 1", posts)
	}
	if !fx.sender.saw(ui.MsgPaymentCreated) {
		t.Errorf("falta el mensaje de éxito: %q", fx.sender.texts)
	}
	if _, ok := fx.sess.PaymentDraft(); ok {
		t.Error("el borrador debe limpiarse al terminar")
	}
}

func TestPaymentNoDebtsEndsAtEntry(t *testing.T) {
	var posts int
	fx := newFixture(t, debtBackend(&posts, ``))

	fx.start()

	if !fx.sender.saw(ui.MsgPaymentNoDebts) {
		t.Errorf("falta el aviso de sin deudas: %q", fx.sender.texts)
	}
	if _, active := fx.runner.ActiveFlow(42); active {
		t.Error("sin deudas no debe quedar flujo activo")
	}
	if posts != 0 {
		t.Errorf("posts = %d sin deudas, quiero 0", posts)
	}
}

func TestPaymentAmountCappedByDebt(t *testing.T) {
	var posts int
	fx := newFixture(t, debtBackend(&posts, `{"to": "Luis", "amount": 30}`))

	fx.start()
	fx.send("Luis ($30.00)")
	fx.send("31")

	if !fx.sender.saw("monto máximo") {
		t.Fatalf("falta el rechazo por exceso: %q", fx.sender.texts)
	}
	if posts != 0 {
		t.Fatalf("posts = %d tras el rechazo, quiero 0", posts)
	}

	// Pagar exactamente la deuda sí es válido.
	fx.send("30")
	fx.send(ui.BtnConfirm)
	if posts != 1 {
		t.Errorf("posts = %d pagando el total de la deuda, quiero 1", posts)
	}
}

func TestPaymentUnresolvableCreditorSkipped(t *testing.T) {
	// "Pedro" no es miembro de la familia: la deuda se descarta y,
	// al ser la única, el flujo termina como si no hubiera deudas.
	var posts int
	fx := newFixture(t, debtBackend(&posts, `{"to": "Pedro", "amount": 10}`))

	fx.start()

	if !fx.sender.saw(ui.MsgPaymentNoDebts) {
		t.Errorf("la deuda sin acreedor resoluble debió descartarse: %q", fx.sender.texts)
	}
}

func TestPaymentInvalidPickReprompts(t *testing.T) {
	var posts int
	fx := newFixture(t, debtBackend(&posts, `{"to": "Luis", "amount": 30}`))

	fx.start()
	fx.send("alguien que no existe")

	if !fx.sender.saw(ui.MsgPaymentInvalidPick) {
		t.Fatalf("falta el reproche de selección inválida: %q", fx.sender.texts)
	}
	if _, active := fx.runner.ActiveFlow(42); !active {
		t.Error("el flujo debe seguir esperando una selección válida")
	}
}
