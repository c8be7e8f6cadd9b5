// Package api — members.go: búsqueda de miembros por ID de Telegram.
package api

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// GetMember busca al miembro asociado a un ID de Telegram. Incluye
// family_id si el usuario pertenece a una familia; 404 si no existe.
func (c *Client) GetMember(ctx context.Context, telegramID string) (Result, *Member) {
	res := c.request(ctx, http.MethodGet, "/members/"+telegramID, nil, "")

	var member Member
	if res.OK() {
		if err := res.Decode(&member); err != nil {
			log.WithError(err).Warn("Miembro no se pudo decodificar")
			return res, nil
		}
		return res, &member
	}
	return res, nil
}
