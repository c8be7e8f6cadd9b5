// Package payments implementa el registro de pagos de liquidación.
// El flujo arranca derivando los acreedores del usuario a partir de los
// balances de la familia; sin deudas no hay nada que registrar y el
// flujo ni siquiera comienza.
package payments

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Alexmontesino96/FinancialBotGrok/internal/api"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/common"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/flow"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/session"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/ui"
)

// Estados del flujo de registro de pago.
const (
	stateSelectCreditor flow.State = "payment_select_creditor"
	stateAmount         flow.State = "payment_amount"
	stateConfirm        flow.State = "payment_confirm"
)

// Handler agrupa el caso de uso de pagos.
type Handler struct {
	client *api.Client
	sender ui.Sender
	flow   *flow.Flow
}

// NewHandler crea el handler de pagos con su máquina de estados.
func NewHandler(client *api.Client, sender ui.Sender) *Handler {
	h := &Handler{client: client, sender: sender}
	h.flow = &flow.Flow{
		Name:  "register_payment",
		Entry: h.start,
		States: map[flow.State]flow.HandlerFunc{
			stateSelectCreditor: h.selectCreditor,
			stateAmount:         h.amount,
			stateConfirm:        h.confirm,
		},
		OnCancel: h.cancel,
	}
	return h
}

// Flow devuelve la máquina de estados de registro de pago.
func (h *Handler) Flow() *flow.Flow { return h.flow }

// start deriva los acreedores del usuario. El balance identifica al
// acreedor por NOMBRE, así que se cruza contra los miembros de la
// familia para recuperar su ID antes de ofrecerlo como destino.
func (h *Handler) start(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	sess.ClearDraft()

	res, member := h.client.GetMember(ctx, sess.TelegramID)
	if res.Status != 200 || member == nil || member.FamilyID == "" {
		h.sender.SendMenu(ev.ChatID, ui.MsgNotInFamily)
		return flow.StateEnd, nil
	}
	sess.SetFamily(member.FamilyID, member.ID)

	balRes, balances := h.client.FamilyBalances(ctx, member.FamilyID, sess.TelegramID)
	if balRes.Status != 200 || balances == nil {
		h.sender.SendMenu(ev.ChatID, fmt.Sprintf(ui.MsgBalancesErr, balRes.Status))
		return flow.StateEnd, nil
	}

	famRes, family := h.client.GetFamily(ctx, member.FamilyID, sess.TelegramID)
	if famRes.Status != 200 || family == nil {
		family = &api.Family{}
	}

	creditors := creditorsOf(member.ID, balances, family.Members)
	if len(creditors) == 0 {
		h.sender.SendMenu(ev.ChatID, ui.MsgPaymentNoDebts)
		return flow.StateEnd, nil
	}

	sess.SetDraft(&session.PaymentDraft{
		FromMember: member.ID,
		Creditors:  creditors,
	})

	labels := make([]string, 0, len(creditors))
	for _, c := range creditors {
		labels = append(labels, ui.CreditorLabel(c))
	}
	h.sender.SendMarkdown(ev.ChatID, ui.MsgPaymentIntro, ui.Selection(labels, ui.BtnCancel))
	return stateSelectCreditor, nil
}

// creditorsOf cruza las deudas del pagador con los miembros de la
// familia. Deudas cuyo acreedor no se puede resolver por nombre, o de
// monto no positivo, se descartan.
func creditorsOf(payer api.ID, balances []api.MemberBalance, members []api.Member) []session.Creditor {
	byName := make(map[string]api.ID, len(members))
	for _, m := range members {
		byName[m.Name] = m.ID
	}

	var creditors []session.Creditor
	for _, b := range balances {
		if session.CanonicalID(b.MemberID.String()) != session.CanonicalID(payer.String()) {
			continue
		}
		for _, d := range b.Debts {
			id, ok := byName[d.To]
			if !ok || d.Amount <= 0 {
				continue
			}
			creditors = append(creditors, session.Creditor{ID: id, Name: d.To, Amount: d.Amount})
		}
	}
	return creditors
}

// selectCreditor identifica al acreedor elegido. La etiqueta del botón
// es "Nombre ($monto)", por eso alcanza con el prefijo del nombre.
func (h *Handler) selectCreditor(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	draft, ok := sess.PaymentDraft()
	if !ok {
		return flow.StateEnd, common.ErrMissingDraft
	}

	text := strings.TrimSpace(ev.Text)
	for _, c := range draft.Creditors {
		if strings.HasPrefix(text, c.Name) {
			draft.ToMember = c.ID
			draft.ToMemberName = c.Name
			draft.MaxAmount = c.Amount
			h.sender.SendMarkdown(ev.ChatID, ui.MsgPaymentAskAmount, ui.CancelOnly())
			return stateAmount, nil
		}
	}

	h.sender.Send(ev.ChatID, ui.MsgPaymentInvalidPick)
	return stateSelectCreditor, nil
}

func (h *Handler) amount(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	draft, ok := sess.PaymentDraft()
	if !ok {
		return flow.StateEnd, common.ErrMissingDraft
	}

	amount, err := common.ParseAmount(ev.Text)
	if err != nil {
		h.sender.SendKeyboard(ev.ChatID, ui.MsgInvalidAmount, ui.CancelOnly())
		return stateAmount, nil
	}
	// Pagar exactamente la deuda es válido; pasarse no.
	if amount > draft.MaxAmount {
		h.sender.SendKeyboard(ev.ChatID, fmt.Sprintf(ui.MsgPaymentOverMax, draft.MaxAmount), ui.CancelOnly())
		return stateAmount, nil
	}

	draft.Amount = amount
	details := ui.PaymentDetails("Tú", draft.ToMemberName, amount)
	h.sender.SendMarkdown(ev.ChatID, fmt.Sprintf(ui.MsgConfirmPayment, details), ui.Confirmation())
	return stateConfirm, nil
}

func (h *Handler) confirm(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	draft, ok := sess.PaymentDraft()
	if !ok {
		return flow.StateEnd, common.ErrMissingDraft
	}

	if ev.Text != ui.BtnConfirm {
		h.sender.SendKeyboard(ev.ChatID, ui.MsgPaymentConfirmAsk, ui.Confirmation())
		return stateConfirm, nil
	}

	res, _ := h.client.CreatePayment(ctx, draft.FromMember, draft.ToMember, draft.Amount)
	sess.ClearDraft()
	if !res.OK() {
		log.WithFields(log.Fields{
			"status": res.Status,
			"detail": res.Detail(),
		}).Error("No se pudo registrar el pago")
		h.sender.SendMenu(ev.ChatID, fmt.Sprintf(ui.MsgPaymentCreateErr, res.Status))
		return flow.StateEnd, nil
	}

	h.sender.SendMenu(ev.ChatID, ui.MsgPaymentCreated)
	return flow.StateEnd, nil
}

func (h *Handler) cancel(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	sess.ClearDraft()
	h.sender.SendMenu(ev.ChatID, ui.MsgPaymentCancelled)
	return flow.StateEnd, nil
}
