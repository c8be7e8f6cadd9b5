// Package flow — runner.go lleva el registro de qué flujo tiene activo
// cada usuario y en qué estado está.
package flow

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/Alexmontesino96/FinancialBotGrok/internal/session"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/ui"
)

// Runner ejecuta los flujos. Usuarios distintos avanzan de forma
// independiente; el estado activo de cada uno se guarda aquí, no en la
// sesión, para que un flujo nunca sobreviva a su propio Runner.
type Runner struct {
	mu     sync.Mutex
	sender ui.Sender
	active map[int64]*activeFlow
}

type activeFlow struct {
	flow  *Flow
	state State
}

// NewRunner crea el ejecutor de flujos.
func NewRunner(sender ui.Sender) *Runner {
	return &Runner{
		sender: sender,
		active: make(map[int64]*activeFlow),
	}
}

// Start arranca un flujo para el usuario. Si la entrada termina en
// StateEnd (por ejemplo, usuario sin familia) no queda nada activo.
func (r *Runner) Start(ctx context.Context, f *Flow, sess *session.Session, ev Event) {
	state, err := f.Entry(ctx, sess, ev)
	if err != nil {
		r.fail(f, sess, ev, err)
		return
	}
	if state == StateEnd {
		r.clear(ev.UserID)
		return
	}
	r.mu.Lock()
	r.active[ev.UserID] = &activeFlow{flow: f, state: state}
	r.mu.Unlock()
}

// Dispatch entrega el mensaje al flujo activo del usuario. Devuelve
// false si no hay flujo activo y el dispatcher debe rutear el texto.
func (r *Runner) Dispatch(ctx context.Context, sess *session.Session, ev Event) bool {
	r.mu.Lock()
	current, ok := r.active[ev.UserID]
	r.mu.Unlock()
	if !ok {
		return false
	}

	// El token de cancelar vale en todos los estados del flujo.
	if ev.Text == ui.BtnCancel && current.flow.OnCancel != nil {
		r.clear(ev.UserID)
		if _, err := current.flow.OnCancel(ctx, sess, ev); err != nil {
			r.fail(current.flow, sess, ev, err)
		}
		return true
	}

	handler, ok := current.flow.States[current.state]
	if !ok {
		// Estado sin handler: contexto inconsistente, se fuerza el fin.
		log.WithFields(log.Fields{
			"flow":  current.flow.Name,
			"state": current.state,
		}).Error("Estado sin handler en la tabla de transición")
		r.clear(ev.UserID)
		sess.ClearDraft()
		r.sender.SendMenu(ev.ChatID, ui.MsgUnknownText)
		return true
	}

	next, err := handler(ctx, sess, ev)
	if err != nil {
		r.fail(current.flow, sess, ev, err)
		return true
	}

	if next == StateEnd {
		r.clear(ev.UserID)
		return true
	}

	r.mu.Lock()
	if current, ok := r.active[ev.UserID]; ok {
		current.state = next
	}
	r.mu.Unlock()
	return true
}

// ActiveFlow devuelve el nombre del flujo activo del usuario, si hay.
func (r *Runner) ActiveFlow(userID int64) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.active[userID]; ok {
		return current.flow.Name, true
	}
	return "", false
}

func (r *Runner) clear(userID int64) {
	r.mu.Lock()
	delete(r.active, userID)
	r.mu.Unlock()
}

// fail es el límite de errores de los flujos: registra, limpia el
// borrador, avisa al usuario y termina. Nada queda a medio camino.
func (r *Runner) fail(f *Flow, sess *session.Session, ev Event, err error) {
	log.WithError(err).WithFields(log.Fields{
		"flow":    f.Name,
		"user_id": ev.UserID,
	}).Error("Error en el flujo, se fuerza la terminación")

	r.clear(ev.UserID)
	sess.ClearDraft()
	r.sender.Send(ev.ChatID, ui.MsgGenericErr+err.Error())
	r.sender.SendMenu(ev.ChatID, ui.MsgMainMenu)
}
