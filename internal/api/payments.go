// Package api — payments.go: wrappers tipados sobre los endpoints de pagos.
package api

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// CreatePayment registra un pago de liquidación entre dos miembros.
func (c *Client) CreatePayment(ctx context.Context, fromMember, toMember ID, amount float64) (Result, *Payment) {
	body := map[string]any{
		"from_member": fromMember,
		"to_member":   toMember,
		"amount":      amount,
	}
	res := c.request(ctx, http.MethodPost, "/payments", body, "")

	var payment Payment
	if res.OK() {
		if err := res.Decode(&payment); err != nil {
			log.WithError(err).Warn("Respuesta de create payment no se pudo decodificar")
			return res, nil
		}
		return res, &payment
	}
	return res, nil
}

// FamilyPayments devuelve los pagos de una familia.
func (c *Client) FamilyPayments(ctx context.Context, familyID ID) (Result, []Payment) {
	res := c.request(ctx, http.MethodGet, "/payments/family/"+familyID.String(), nil, "")

	var payments []Payment
	if res.OK() {
		if err := res.Decode(&payments); err != nil {
			log.WithError(err).Warn("Lista de pagos no se pudo decodificar")
			return res, nil
		}
	}
	return res, payments
}

// DeletePayment elimina un pago.
func (c *Client) DeletePayment(ctx context.Context, paymentID ID) Result {
	return c.request(ctx, http.MethodDelete, "/payments/"+paymentID.String(), nil, "")
}
