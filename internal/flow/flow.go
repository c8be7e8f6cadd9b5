// Package flow es el motor de las conversaciones multi-paso. Cada caso
// de uso declara una máquina de estados: un punto de entrada, una tabla
// de transición por estado y un manejador de cancelación. El Runner
// ejecuta las tablas y centraliza lo que antes era boilerplate repetido
// en cada estado: el token de cancelar y los errores de handler.
package flow

import (
	"context"

	"github.com/Alexmontesino96/FinancialBotGrok/internal/session"
)

// State identifica un estado dentro de un flujo.
type State string

// StateEnd es el estado terminal de todo flujo: el Runner descarta el
// flujo activo y el siguiente mensaje vuelve al dispatcher.
const StateEnd State = "end"

// Event es un mensaje entrante ya atribuido a un usuario.
type Event struct {
	ChatID int64
	UserID int64
	Text   string
	// Name es el nombre de pila que reporta Telegram. Solo el alta de
	// familia lo usa como nombre por defecto del miembro.
	Name string
}

// HandlerFunc procesa la entrada de un estado y devuelve el siguiente.
// Un error termina el flujo: el Runner limpia el borrador, avisa al
// usuario y vuelve al menú. Ningún error cruza este límite.
type HandlerFunc func(ctx context.Context, sess *session.Session, ev Event) (State, error)

// Flow es la máquina de estados de un caso de uso.
type Flow struct {
	Name string
	// Entry arranca el flujo; si devuelve un estado distinto de
	// StateEnd el flujo queda activo para el usuario.
	Entry HandlerFunc
	// States es la tabla de transición: estado -> handler.
	States map[State]HandlerFunc
	// OnCancel corre cuando llega el token de cancelar en cualquier
	// estado. Debe limpiar el borrador y despedirse.
	OnCancel HandlerFunc
}
