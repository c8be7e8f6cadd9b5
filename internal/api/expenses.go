// Package api — expenses.go: wrappers tipados sobre los endpoints de gastos.
// Cada wrapper fija método y ruta y devuelve el Result sin traducirlo:
// quien llama decide qué hacer cuando Status >= 400.
package api

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// CreateExpense registra un gasto nuevo. paidBy es el ID de miembro del
// pagador; identity el telegram_id de quien crea el gasto.
func (c *Client) CreateExpense(ctx context.Context, description string, amount float64, paidBy ID, identity string) (Result, *Expense) {
	body := map[string]any{
		"description": description,
		"amount":      amount,
		"paid_by":     paidBy,
	}
	res := c.request(ctx, http.MethodPost, "/expenses", body, identity)

	var expense Expense
	if res.OK() {
		if err := res.Decode(&expense); err != nil {
			log.WithError(err).Warn("Respuesta de create expense no se pudo decodificar")
			return res, nil
		}
		return res, &expense
	}
	return res, nil
}

// FamilyExpenses devuelve los gastos de una familia.
func (c *Client) FamilyExpenses(ctx context.Context, familyID ID, identity string) (Result, []Expense) {
	res := c.request(ctx, http.MethodGet, "/expenses/family/"+familyID.String(), nil, identity)

	var expenses []Expense
	if res.OK() {
		if err := res.Decode(&expenses); err != nil {
			log.WithError(err).Warn("Lista de gastos no se pudo decodificar")
			return res, nil
		}
	}
	return res, expenses
}

// GetExpense devuelve un gasto por su ID.
func (c *Client) GetExpense(ctx context.Context, expenseID ID) (Result, *Expense) {
	res := c.request(ctx, http.MethodGet, "/expenses/"+expenseID.String(), nil, "")

	var expense Expense
	if res.OK() {
		if err := res.Decode(&expense); err != nil {
			log.WithError(err).Warn("Gasto no se pudo decodificar")
			return res, nil
		}
		return res, &expense
	}
	return res, nil
}

// UpdateExpenseAmount actualiza el monto de un gasto (cuerpo parcial).
func (c *Client) UpdateExpenseAmount(ctx context.Context, expenseID ID, amount float64, identity string) Result {
	body := map[string]any{"amount": amount}
	return c.request(ctx, http.MethodPut, "/expenses/"+expenseID.String(), body, identity)
}

// DeleteExpense elimina un gasto.
func (c *Client) DeleteExpense(ctx context.Context, expenseID ID) Result {
	return c.request(ctx, http.MethodDelete, "/expenses/"+expenseID.String(), nil, "")
}
