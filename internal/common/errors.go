// Package common — errors.go define los errores centinela que usan
// todos los módulos del bot. Permiten a los handlers distinguir el tipo
// de problema y enviar al usuario un mensaje comprensible.
package common

import "errors"

// Errores de montos
var (
	// ErrInvalidAmount — el monto no es un número válido
	ErrInvalidAmount = errors.New("el monto no es un número válido")
	// ErrNonPositiveAmount — el monto es cero o negativo
	ErrNonPositiveAmount = errors.New("el monto debe ser positivo")
)

// Errores de estado de la conversación
var (
	// ErrNotInFamily — el usuario no pertenece a ninguna familia
	ErrNotInFamily = errors.New("el usuario no está en ninguna familia")
	// ErrMissingDraft — el flujo activo perdió su borrador (contexto obsoleto)
	ErrMissingDraft = errors.New("no hay datos del flujo en la sesión")
	// ErrItemNotFound — la selección no corresponde a ningún elemento
	ErrItemNotFound = errors.New("elemento no encontrado")
)
