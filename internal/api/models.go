// Package api — models.go define las estructuras que devuelve el backend.
// El bot solo guarda copias efímeras: el dueño de estos datos es el ledger.
package api

import "encoding/json"

// ID es el identificador opaco que entrega el backend. El backend ha
// devuelto tanto números como UUIDs en distintas versiones, así que se
// acepta cualquiera de los dos en el JSON y siempre se maneja como cadena.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Member es un integrante de una familia.
type Member struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	TelegramID string `json:"telegram_id"`
	FamilyID   ID     `json:"family_id"`
	IsAdmin    bool   `json:"is_admin"`
}

// NewMember es el cuerpo para crear o añadir un miembro.
type NewMember struct {
	TelegramID string `json:"telegram_id"`
	Name       string `json:"name"`
}

// Family agrupa miembros que comparten gastos.
type Family struct {
	ID      ID       `json:"id"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// Expense es un gasto registrado en el ledger.
type Expense struct {
	ID          ID      `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidBy      ID      `json:"paid_by"`
	FamilyID    ID      `json:"family_id"`
}

// Payment es un pago de liquidación entre dos miembros.
type Payment struct {
	ID         ID      `json:"id"`
	Amount     float64 `json:"amount"`
	FromMember ID      `json:"from_member"`
	ToMember   ID      `json:"to_member"`
}

// Debt es una deuda dirigida dentro del balance de un miembro.
// El backend identifica al acreedor por su NOMBRE, no por su ID.
type Debt struct {
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// MemberBalance es el balance derivado de un miembro: a quiénes les debe.
type MemberBalance struct {
	MemberID ID     `json:"member_id"`
	Debts    []Debt `json:"debts"`
}
