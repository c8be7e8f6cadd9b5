// Package common — amount.go normaliza y valida los montos que el
// usuario escribe a mano: "12,50", "$12.50", " 12.50 " son equivalentes.
package common

import (
	"strconv"
	"strings"
)

// ParseAmount convierte el texto del usuario en un monto positivo.
// Acepta coma o punto como separador decimal y descarta el símbolo $.
// Devuelve ErrInvalidAmount si no es un número y ErrNonPositiveAmount
// si es cero o negativo.
func ParseAmount(text string) (float64, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = strings.TrimSpace(cleaned)

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if amount <= 0 {
		return 0, ErrNonPositiveAmount
	}
	return amount, nil
}
