package expenses

import (
	"context"
	"io"
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

func (f *fakeSender) Send(chatID int64, text string)                          { f.texts = append(f.texts, text) }
func (f *fakeSender) SendMarkdown(chatID int64, text string, kb ui.Keyboard)  { f.texts = append(f.texts, text) }
func (f *fakeSender) SendKeyboard(chatID int64, text string, kb ui.Keyboard)  { f.texts = append(f.texts, text) }
func (f *fakeSender) SendMenu(chatID int64, text string)                      { f.texts = append(f.texts, text) }
func (f *fakeSender) SendPhoto(chatID int64, caption string, png []byte)      { f.texts = append(f.texts, caption) }

func (f *fakeSender) last() string {
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

func (f *fakeSender) saw(sub string) bool {
	for _, t := range f.texts {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
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

func (fx *fixture) send(text string) {
	fx.runner.Dispatch(context.Background(), fx.sess, flow.Event{ChatID: 42, UserID: 42, Text: text})
}

func memberBackend(posts *int, lastBody *string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/members/42", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "m1", "name": "Ana", "telegram_id": "42", "family_id": "f1"}`))
	})
	mux.HandleFunc("/expenses", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		*posts++
		if lastBody != nil {
			raw, _ := io.ReadAll(r.Body)
			*lastBody = string(raw)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "e9", "description": "Cena", "amount": 12.5, "paid_by": "m1"}`))
	})
	return mux
}

func TestCreateExpenseHappyPath(t *testing.T) {
	var posts int
	var body string
	fx := newFixture(t, memberBackend(&posts, &body))

	fx.runner.Start(context.Background(), fx.h.Flow(), fx.sess, flow.Event{ChatID: 42, UserID: 42})
	fx.send("Cena")
	fx.send("12.50")
	fx.send(ui.BtnConfirm)

	if posts != 1 {
		t.Fatalf("posts = %d, quiero exactamente 1", posts)
	}
	if !strings.Contains(body, `"Cena"`) || !strings.Contains(body, "12.5") {
		t.Errorf("cuerpo enviado = %q, faltan descripción o monto", body)
	}
	if !fx.sender.saw("Gasto Creado Exitosamente") {
		t.Errorf("falta el mensaje de éxito, mensajes: %q", fx.sender.texts)
	}
	if !strings.Contains(fx.sender.last(), "e9") {
		t.Errorf("el mensaje de éxito no incluye el ID: %q", fx.sender.last())
	}
	if _, ok := fx.sess.ExpenseDraft(); ok {
		t.Error("el borrador debe limpiarse al terminar")
	}
	if _, active := fx.runner.ActiveFlow(42); active {
		t.Error("el flujo debe terminar tras confirmar")
	}
}

func TestCreateExpenseCancelDiscardsDraft(t *testing.T) {
	var posts int
	fx := newFixture(t, memberBackend(&posts, nil))

	fx.runner.Start(context.Background(), fx.h.Flow(), fx.sess, flow.Event{ChatID: 42, UserID: 42})
	fx.send("Cena")
	fx.send(ui.BtnCancel)

	if posts != 0 {
		t.Fatalf("posts = %d tras cancelar, quiero 0", posts)
	}
	if _, ok := fx.sess.ExpenseDraft(); ok {
		t.Error("cancelar debe descartar el borrador")
	}
	if _, active := fx.runner.ActiveFlow(42); active {
		t.Error("cancelar debe terminar el flujo")
	}
	if !fx.sender.saw(ui.MsgCancelled) {
		t.Errorf("falta la despedida de cancelación: %q", fx.sender.texts)
	}
}

func TestCreateExpenseWithoutFamilyEndsAtEntry(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/members/42", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Member not found"}`))
	})
	fx := newFixture(t, mux)

	fx.runner.Start(context.Background(), fx.h.Flow(), fx.sess, flow.Event{ChatID: 42, UserID: 42})

	if !fx.sender.saw(ui.MsgNotInFamily) {
		t.Errorf("falta el aviso de sin familia: %q", fx.sender.texts)
	}
	if _, active := fx.runner.ActiveFlow(42); active {
		t.Error("sin familia no debe quedar flujo activo")
	}
	if _, ok := fx.sess.ExpenseDraft(); ok {
		t.Error("sin familia no debe sembrarse borrador")
	}
}

func TestCreateExpenseInvalidAmountReprompts(t *testing.T) {
	var posts int
	fx := newFixture(t, memberBackend(&posts, nil))

	fx.runner.Start(context.Background(), fx.h.Flow(), fx.sess, flow.Event{ChatID: 42, UserID: 42})
	fx.send("Cena")
	fx.send("abc")

	if !fx.sender.saw(ui.MsgInvalidAmount) {
		t.Fatalf("falta el reproche de monto inválido: %q", fx.sender.texts)
	}

	// El flujo sigue vivo en el mismo estado y acepta el reintento.
	fx.send("7")
	fx.send(ui.BtnConfirm)
	if posts != 1 {
		t.Errorf("posts = %d tras el reintento, quiero 1", posts)
	}
}

func TestListExpenses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/members/42", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "m1", "name": "Ana", "telegram_id": "42", "family_id": "f1"}`))
	})
	mux.HandleFunc("/families/f1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "f1", "name": "Casa", "members": [` +
			`{"id": "m1", "name": "Ana", "telegram_id": "42"}]}`))
	})
	mux.HandleFunc("/expenses/family/f1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "e1", "description": "Cena", "amount": 20, "paid_by": "m1"}]`))
	})
	fx := newFixture(t, mux)

	fx.h.List(context.Background(), fx.sess, flow.Event{ChatID: 42, UserID: 42})

	if !fx.sender.saw("Cena") || !fx.sender.saw("$20.00") {
		t.Errorf("el listado no incluye el gasto: %q", fx.sender.texts)
	}
	if !fx.sender.saw("Ana") {
		t.Errorf("el listado no resuelve el nombre del pagador: %q", fx.sender.texts)
	}
}

func TestListExpensesEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/members/42", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "m1", "name": "Ana", "telegram_id": "42", "family_id": "f1"}`))
	})
	mux.HandleFunc("/expenses/family/f1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	fx := newFixture(t, mux)

	fx.h.List(context.Background(), fx.sess, flow.Event{ChatID: 42, UserID: 42})

	if fx.sender.last() != ui.MsgExpenseListEmpty {
		t.Errorf("último mensaje = %q, quiero %q", fx.sender.last(), ui.MsgExpenseListEmpty)
	}
}
