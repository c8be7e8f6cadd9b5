// Package api — families.go: wrappers tipados sobre los endpoints de
// familias, incluidos miembros y balances.
package api

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// CreateFamily crea una familia con sus miembros iniciales.
func (c *Client) CreateFamily(ctx context.Context, name string, members []NewMember, identity string) (Result, *Family) {
	body := map[string]any{
		"name":    name,
		"members": members,
	}
	res := c.request(ctx, http.MethodPost, "/families/", body, identity)

	var family Family
	if res.OK() {
		if err := res.Decode(&family); err != nil {
			log.WithError(err).Warn("Respuesta de create family no se pudo decodificar")
			return res, nil
		}
		return res, &family
	}
	return res, nil
}

// GetFamily devuelve una familia con su lista de miembros.
func (c *Client) GetFamily(ctx context.Context, familyID ID, identity string) (Result, *Family) {
	res := c.request(ctx, http.MethodGet, "/families/"+familyID.String(), nil, identity)

	var family Family
	if res.OK() {
		if err := res.Decode(&family); err != nil {
			log.WithError(err).Warn("Familia no se pudo decodificar")
			return res, nil
		}
		return res, &family
	}
	return res, nil
}

// FamilyMembers devuelve los miembros de una familia.
func (c *Client) FamilyMembers(ctx context.Context, familyID ID, identity string) (Result, []Member) {
	res := c.request(ctx, http.MethodGet, "/families/"+familyID.String()+"/members", nil, identity)

	var members []Member
	if res.OK() {
		if err := res.Decode(&members); err != nil {
			log.WithError(err).Warn("Lista de miembros no se pudo decodificar")
			return res, nil
		}
	}
	return res, members
}

// AddMember añade un miembro a una familia existente.
func (c *Client) AddMember(ctx context.Context, familyID ID, telegramID, name, identity string) (Result, *Member) {
	body := NewMember{TelegramID: telegramID, Name: name}
	res := c.request(ctx, http.MethodPost, "/families/"+familyID.String()+"/members", body, identity)

	var member Member
	if res.OK() {
		if err := res.Decode(&member); err != nil {
			log.WithError(err).Warn("Respuesta de add member no se pudo decodificar")
			return res, nil
		}
		return res, &member
	}
	return res, nil
}

// FamilyBalances devuelve los balances derivados de una familia.
// Solo lectura: el bot nunca los guarda ni los modifica localmente.
func (c *Client) FamilyBalances(ctx context.Context, familyID ID, identity string) (Result, []MemberBalance) {
	res := c.request(ctx, http.MethodGet, "/families/"+familyID.String()+"/balances", nil, identity)

	var balances []MemberBalance
	if res.OK() {
		if err := res.Decode(&balances); err != nil {
			log.WithError(err).Warn("Balances no se pudieron decodificar")
			return res, nil
		}
	}
	return res, balances
}
