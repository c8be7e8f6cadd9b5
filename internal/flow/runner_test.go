package flow

import (
	"context"
	"errors"
	"strings"
	"testing"

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

const stateEcho State = "echo"

// echoFlow queda esperando en un único estado hasta recibir "fin".
func echoFlow(cancelled *bool, fail error) *Flow {
	return &Flow{
		Name:  "echo",
		Entry: func(ctx context.Context, sess *session.Session, ev Event) (State, error) { return stateEcho, nil },
		States: map[State]HandlerFunc{
			stateEcho: func(ctx context.Context, sess *session.Session, ev Event) (State, error) {
				if fail != nil {
					return StateEnd, fail
				}
				if ev.Text == "fin" {
					return StateEnd, nil
				}
				return stateEcho, nil
			},
		},
		OnCancel: func(ctx context.Context, sess *session.Session, ev Event) (State, error) {
			*cancelled = true
			sess.ClearDraft()
			return StateEnd, nil
		},
	}
}

func TestRunnerLifecycle(t *testing.T) {
	sender := &fakeSender{}
	r := NewRunner(sender)
	sess := session.NewStore(nil).Get(1)
	ev := Event{ChatID: 1, UserID: 1}

	if r.Dispatch(context.Background(), sess, ev) {
		t.Fatal("sin flujo activo Dispatch debe devolver false")
	}

	var cancelled bool
	r.Start(context.Background(), echoFlow(&cancelled, nil), sess, ev)
	if _, active := r.ActiveFlow(1); !active {
		t.Fatal("tras Start el flujo debe quedar activo")
	}

	ev.Text = "cualquier cosa"
	if !r.Dispatch(context.Background(), sess, ev) {
		t.Fatal("con flujo activo Dispatch debe consumir el mensaje")
	}

	ev.Text = "fin"
	r.Dispatch(context.Background(), sess, ev)
	if _, active := r.ActiveFlow(1); active {
		t.Error("StateEnd debe descartar el flujo activo")
	}
}

func TestRunnerCancelTokenInterception(t *testing.T) {
	sender := &fakeSender{}
	r := NewRunner(sender)
	sess := session.NewStore(nil).Get(2)
	ev := Event{ChatID: 2, UserID: 2}

	var cancelled bool
	r.Start(context.Background(), echoFlow(&cancelled, nil), sess, ev)

	ev.Text = ui.BtnCancel
	if !r.Dispatch(context.Background(), sess, ev) {
		t.Fatal("el token de cancelar debe consumirse")
	}
	if !cancelled {
		t.Error("OnCancel no se ejecutó")
	}
	if _, active := r.ActiveFlow(2); active {
		t.Error("cancelar debe descartar el flujo activo")
	}
}

func TestRunnerHandlerErrorBoundary(t *testing.T) {
	sender := &fakeSender{}
	r := NewRunner(sender)
	sess := session.NewStore(nil).Get(3)
	sess.SetDraft(&session.ExpenseDraft{Description: "colgado"})
	ev := Event{ChatID: 3, UserID: 3}

	var cancelled bool
	boom := errors.New("se rompió algo")
	r.Start(context.Background(), echoFlow(&cancelled, boom), sess, ev)

	ev.Text = "avanzar"
	r.Dispatch(context.Background(), sess, ev)

	if _, active := r.ActiveFlow(3); active {
		t.Error("un error de handler debe terminar el flujo")
	}
	if _, ok := sess.ExpenseDraft(); ok {
		t.Error("un error de handler debe limpiar el borrador")
	}
	if !sender.saw("se rompió algo") {
		t.Errorf("el usuario debe ver el error: %q", sender.texts)
	}
	if !sender.saw(ui.MsgMainMenu) {
		t.Errorf("tras el error se vuelve al menú: %q", sender.texts)
	}
}

func TestRunnerMissingStateHandler(t *testing.T) {
	sender := &fakeSender{}
	r := NewRunner(sender)
	sess := session.NewStore(nil).Get(4)
	sess.SetDraft(&session.ExpenseDraft{})
	ev := Event{ChatID: 4, UserID: 4}

	broken := &Flow{
		Name:   "roto",
		Entry:  func(ctx context.Context, sess *session.Session, ev Event) (State, error) { return "fantasma", nil },
		States: map[State]HandlerFunc{},
	}
	r.Start(context.Background(), broken, sess, ev)

	ev.Text = "hola"
	if !r.Dispatch(context.Background(), sess, ev) {
		t.Fatal("el mensaje debe consumirse aunque el estado no tenga handler")
	}
	if _, active := r.ActiveFlow(4); active {
		t.Error("un estado sin handler fuerza el fin del flujo")
	}
	if _, ok := sess.ExpenseDraft(); ok {
		t.Error("el contexto inconsistente debe limpiarse")
	}
}
