// Package expenses implementa la creación y el listado de gastos.
// La creación es un flujo de tres pasos: descripción, monto y
// confirmación. El listado es una opción directa del menú.
package expenses

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

// Estados del flujo de creación de gasto.
const (
	stateDescription flow.State = "expense_description"
	stateAmount      flow.State = "expense_amount"
	stateConfirm     flow.State = "expense_confirm"
)

// Handler agrupa los casos de uso de gastos.
type Handler struct {
	client *api.Client
	sender ui.Sender
	flow   *flow.Flow
}

// NewHandler crea el handler de gastos con su máquina de estados.
func NewHandler(client *api.Client, sender ui.Sender) *Handler {
	h := &Handler{client: client, sender: sender}
	h.flow = &flow.Flow{
		Name:  "create_expense",
		Entry: h.start,
		States: map[flow.State]flow.HandlerFunc{
			stateDescription: h.description,
			stateAmount:      h.amount,
			stateConfirm:     h.confirm,
		},
		OnCancel: h.cancel,
	}
	return h
}

// Flow devuelve la máquina de estados de creación de gasto.
func (h *Handler) Flow() *flow.Flow { return h.flow }

// start verifica la pertenencia a una familia y siembra el borrador.
// Un usuario sin familia termina aquí, sin tocar el backend de gastos.
func (h *Handler) start(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	res, member := h.client.GetMember(ctx, sess.TelegramID)
	if res.Status != 200 || member == nil || member.FamilyID == "" {
		h.sender.SendMenu(ev.ChatID, ui.MsgNotInFamily)
		return flow.StateEnd, nil
	}
	sess.SetFamily(member.FamilyID, member.ID)

	sess.SetDraft(&session.ExpenseDraft{
		TelegramID: sess.TelegramID,
		MemberID:   member.ID,
		FamilyID:   member.FamilyID,
	})
	h.sender.SendMarkdown(ev.ChatID, ui.MsgExpenseIntro, ui.CancelOnly())
	return stateDescription, nil
}

func (h *Handler) description(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	draft, ok := sess.ExpenseDraft()
	if !ok {
		return flow.StateEnd, common.ErrMissingDraft
	}

	text := strings.TrimSpace(ev.Text)
	if text == "" {
		h.sender.SendKeyboard(ev.ChatID, ui.MsgExpenseIntro, ui.CancelOnly())
		return stateDescription, nil
	}

	draft.Description = text
	h.sender.SendMarkdown(ev.ChatID, fmt.Sprintf(ui.MsgExpenseAskAmount, text), ui.CancelOnly())
	return stateAmount, nil
}

func (h *Handler) amount(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	draft, ok := sess.ExpenseDraft()
	if !ok {
		return flow.StateEnd, common.ErrMissingDraft
	}

	amount, err := common.ParseAmount(ev.Text)
	if err != nil {
		h.sender.SendKeyboard(ev.ChatID, ui.MsgInvalidAmount, ui.CancelOnly())
		return stateAmount, nil
	}

	draft.Amount = amount
	details := ui.ExpenseDetails(draft.Description, amount, "Tú")
	h.sender.SendMarkdown(ev.ChatID, fmt.Sprintf(ui.MsgConfirmExpense, details), ui.Confirmation())
	return stateConfirm, nil
}

// confirm crea el gasto en el backend. Toda salida de este estado,
// exitosa o no, limpia el borrador.
func (h *Handler) confirm(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	draft, ok := sess.ExpenseDraft()
	if !ok {
		return flow.StateEnd, common.ErrMissingDraft
	}

	if ev.Text != ui.BtnConfirm {
		h.sender.SendKeyboard(ev.ChatID, ui.MsgInvalidOption, ui.Confirmation())
		return stateConfirm, nil
	}

	res, expense := h.client.CreateExpense(ctx, draft.Description, draft.Amount, draft.MemberID, draft.TelegramID)
	sess.ClearDraft()
	if !res.OK() {
		log.WithFields(log.Fields{
			"status": res.Status,
			"detail": res.Detail(),
		}).Error("No se pudo crear el gasto")
		h.sender.SendMenu(ev.ChatID, ui.MsgExpenseCreateErr)
		return flow.StateEnd, nil
	}

	expenseID := "N/A"
	if expense != nil && expense.ID != "" {
		expenseID = expense.ID.String()
	}
	h.sender.SendMarkdown(ev.ChatID,
		fmt.Sprintf(ui.MsgExpenseCreated, draft.Description, draft.Amount, expenseID),
		ui.MainMenu())
	return flow.StateEnd, nil
}

func (h *Handler) cancel(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	sess.ClearDraft()
	h.sender.SendMenu(ev.ChatID, ui.MsgCancelled)
	return flow.StateEnd, nil
}

// List muestra los gastos de la familia del usuario. No es un flujo:
// responde en un solo paso desde el menú principal.
func (h *Handler) List(ctx context.Context, sess *session.Session, ev flow.Event) {
	familyID, ok := sess.EnsureFamily(ctx)
	if !ok {
		h.sender.SendMenu(ev.ChatID, ui.MsgNotInFamily)
		return
	}

	res, list := h.client.FamilyExpenses(ctx, familyID, sess.TelegramID)
	if !res.OK() {
		h.sender.SendMenu(ev.ChatID, fmt.Sprintf(ui.MsgExpenseListErr, res.Status))
		return
	}
	if len(list) == 0 {
		h.sender.SendMenu(ev.ChatID, ui.MsgExpenseListEmpty)
		return
	}

	names := sess.MemberNames()
	if len(names) == 0 && sess.LoadMemberNames(ctx, familyID) {
		names = sess.MemberNames()
	}

	text := ui.MsgExpenseListHeader + "\n\n" + ui.FormatExpenses(list, names)
	h.sender.SendMarkdown(ev.ChatID, text, ui.MainMenu())
}
