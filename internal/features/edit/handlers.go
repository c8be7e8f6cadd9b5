// Package edit implementa la edición y eliminación de gastos y pagos.
// Un solo flujo cubre las cuatro opciones del submenú; la opción
// elegida queda en el borrador y decide las ramas posteriores.
package edit

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

// Estados del flujo de edición/eliminación.
const (
	stateOption        flow.State = "edit_option"
	stateSelectExpense flow.State = "edit_select_expense"
	stateSelectPayment flow.State = "edit_select_payment"
	stateNewAmount     flow.State = "edit_new_amount"
	stateConfirmDelete flow.State = "edit_confirm_delete"
)

// Handler agrupa los casos de uso de edición y eliminación.
type Handler struct {
	client *api.Client
	sender ui.Sender
	flow   *flow.Flow
}

// NewHandler crea el handler de edición con su máquina de estados.
func NewHandler(client *api.Client, sender ui.Sender) *Handler {
	h := &Handler{client: client, sender: sender}
	h.flow = &flow.Flow{
		Name:  "edit_delete",
		Entry: h.start,
		States: map[flow.State]flow.HandlerFunc{
			stateOption:        h.option,
			stateSelectExpense: h.selectExpense,
			stateSelectPayment: h.selectPayment,
			stateNewAmount:     h.newAmount,
			stateConfirmDelete: h.confirmDelete,
		},
		OnCancel: h.cancel,
	}
	return h
}

// Flow devuelve la máquina de estados de edición/eliminación.
func (h *Handler) Flow() *flow.Flow { return h.flow }

func (h *Handler) start(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	if _, ok := sess.EnsureFamily(ctx); !ok {
		h.sender.SendMenu(ev.ChatID, ui.MsgNotInFamily)
		return flow.StateEnd, nil
	}

	sess.SetDraft(&session.EditDraft{})
	h.sender.SendKeyboard(ev.ChatID, ui.MsgEditOptions, ui.EditOptions())
	return stateOption, nil
}

// option carga los candidatos de la opción elegida. Las listas se
// congelan en el borrador: la selección posterior se resuelve contra
// esta foto, no contra el backend.
func (h *Handler) option(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	draft, ok := sess.EditDraft()
	if !ok {
		return flow.StateEnd, common.ErrMissingDraft
	}

	switch ev.Text {
	case ui.BtnEditExpenses, ui.BtnDeleteExpenses:
		res, expenses := h.client.FamilyExpenses(ctx, sess.FamilyID(), sess.TelegramID)
		if !res.OK() || len(expenses) == 0 {
			sess.ClearDraft()
			h.sender.SendMenu(ev.ChatID, ui.MsgNoExpenses)
			return flow.StateEnd, nil
		}
		draft.Option = ev.Text
		draft.Expenses = expenses

		labels := make([]string, 0, len(expenses))
		for _, e := range expenses {
			labels = append(labels, ui.ExpenseLabel(e))
		}
		prompt := ui.MsgSelectExpenseEdit
		if ev.Text == ui.BtnDeleteExpenses {
			prompt = ui.MsgSelectExpenseDelete
		}
		h.sender.SendKeyboard(ev.ChatID, prompt, ui.Selection(labels, ui.BtnBack))
		return stateSelectExpense, nil

	case ui.BtnEditPayments, ui.BtnDeletePayments:
		res, payments := h.client.FamilyPayments(ctx, sess.FamilyID())
		if !res.OK() || len(payments) == 0 {
			sess.ClearDraft()
			h.sender.SendMenu(ev.ChatID, ui.MsgNoPayments)
			return flow.StateEnd, nil
		}
		draft.Option = ev.Text
		draft.Payments = payments

		names := sess.MemberNames()
		if len(names) == 0 && sess.LoadMemberNames(ctx, sess.FamilyID()) {
			names = sess.MemberNames()
		}
		labels := make([]string, 0, len(payments))
		for _, p := range payments {
			labels = append(labels, ui.PaymentLabel(p, names))
		}
		prompt := ui.MsgSelectPaymentEdit
		if ev.Text == ui.BtnDeletePayments {
			prompt = ui.MsgSelectPaymentDelete
		}
		h.sender.SendKeyboard(ev.ChatID, prompt, ui.Selection(labels, ui.BtnBack))
		return stateSelectPayment, nil

	case ui.BtnBack:
		sess.ClearDraft()
		h.sender.SendMenu(ev.ChatID, ui.MsgMainMenu)
		return flow.StateEnd, nil

	default:
		h.sender.SendKeyboard(ev.ChatID, ui.MsgInvalidOption, ui.EditOptions())
		return stateOption, nil
	}
}

// selectExpense resuelve el gasto elegido por el sufijo "(ID: ...)" de
// la etiqueta; sin sufijo cae al prefijo "descripción - $monto", que no
// distingue gastos idénticos.
func (h *Handler) selectExpense(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	draft, ok := sess.EditDraft()
	if !ok {
		return flow.StateEnd, common.ErrMissingDraft
	}

	if ev.Text == ui.BtnBack {
		sess.ClearDraft()
		h.sender.SendMenu(ev.ChatID, ui.MsgMainMenu)
		return flow.StateEnd, nil
	}

	selected := findExpense(draft.Expenses, ev.Text)
	if selected == nil {
		sess.ClearDraft()
		h.sender.SendMenu(ev.ChatID, ui.MsgExpenseNotFound)
		return flow.StateEnd, nil
	}
	draft.SelectedExpense = selected

	if draft.Option == ui.BtnEditExpenses {
		h.sender.SendMarkdown(ev.ChatID,
			fmt.Sprintf(ui.MsgAskNewAmount, selected.Description, selected.Amount),
			ui.CancelOnly())
		return stateNewAmount, nil
	}

	details := ui.ExpenseDetails(selected.Description, selected.Amount,
		ui.MemberName(sess.MemberNames(), selected.PaidBy))
	h.sender.SendMarkdown(ev.ChatID, fmt.Sprintf(ui.MsgConfirmDeleteExp, details), ui.Confirmation())
	return stateConfirmDelete, nil
}

func findExpense(expenses []api.Expense, label string) *api.Expense {
	if id, ok := ui.ExtractID(label); ok {
		for i := range expenses {
			if expenses[i].ID == id {
				return &expenses[i]
			}
		}
		return nil
	}
	// Etiqueta vieja sin ID: prefijo descripción - monto.
	for i := range expenses {
		prefix := fmt.Sprintf("%s - %s", expenses[i].Description, ui.FormatAmount(expenses[i].Amount))
		if strings.HasPrefix(label, prefix) {
			return &expenses[i]
		}
	}
	return nil
}

func (h *Handler) selectPayment(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	draft, ok := sess.EditDraft()
	if !ok {
		return flow.StateEnd, common.ErrMissingDraft
	}

	if ev.Text == ui.BtnBack {
		sess.ClearDraft()
		h.sender.SendMenu(ev.ChatID, ui.MsgMainMenu)
		return flow.StateEnd, nil
	}

	selected := findPayment(draft.Payments, ev.Text, sess.MemberNames())
	if selected == nil {
		sess.ClearDraft()
		h.sender.SendMenu(ev.ChatID, ui.MsgPaymentNotFound)
		return flow.StateEnd, nil
	}
	draft.SelectedPayment = selected

	if draft.Option == ui.BtnEditPayments {
		sess.ClearDraft()
		h.sender.SendMenu(ev.ChatID, ui.MsgEditPaymentsStub)
		return flow.StateEnd, nil
	}

	names := sess.MemberNames()
	details := ui.PaymentDetails(
		ui.MemberName(names, selected.FromMember),
		ui.MemberName(names, selected.ToMember),
		selected.Amount)
	h.sender.SendMarkdown(ev.ChatID, fmt.Sprintf(ui.MsgConfirmDeletePay, details), ui.Confirmation())
	return stateConfirmDelete, nil
}

func findPayment(payments []api.Payment, label string, names session.NameDirectory) *api.Payment {
	if id, ok := ui.ExtractID(label); ok {
		for i := range payments {
			if payments[i].ID == id {
				return &payments[i]
			}
		}
		return nil
	}
	for i := range payments {
		prefix := fmt.Sprintf("%s → %s - %s",
			ui.MemberName(names, payments[i].FromMember),
			ui.MemberName(names, payments[i].ToMember),
			ui.FormatAmount(payments[i].Amount))
		if strings.HasPrefix(label, prefix) {
			return &payments[i]
		}
	}
	return nil
}

func (h *Handler) newAmount(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	draft, ok := sess.EditDraft()
	if !ok || draft.SelectedExpense == nil {
		return flow.StateEnd, common.ErrMissingDraft
	}

	amount, err := common.ParseAmount(ev.Text)
	if err != nil {
		h.sender.SendKeyboard(ev.ChatID, ui.MsgInvalidAmount, ui.CancelOnly())
		return stateNewAmount, nil
	}

	expense := draft.SelectedExpense
	res := h.client.UpdateExpenseAmount(ctx, expense.ID, amount, sess.TelegramID)
	sess.ClearDraft()
	if !res.OK() {
		log.WithFields(log.Fields{
			"status":     res.Status,
			"expense_id": expense.ID,
		}).Error("No se pudo actualizar el gasto")
		h.sender.SendMenu(ev.ChatID, fmt.Sprintf(ui.MsgExpenseUpdateErr, res.Detail()))
		return flow.StateEnd, nil
	}

	h.sender.SendMarkdown(ev.ChatID,
		fmt.Sprintf(ui.MsgExpenseUpdated, expense.Description, expense.Amount, amount),
		ui.MainMenu())
	return flow.StateEnd, nil
}

// confirmDelete ejecuta la eliminación pendiente. El borrador se limpia
// haya ido bien o mal: ningún resultado deja la selección colgada.
func (h *Handler) confirmDelete(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	draft, ok := sess.EditDraft()
	if !ok {
		return flow.StateEnd, common.ErrMissingDraft
	}

	if ev.Text != ui.BtnConfirm {
		h.sender.SendKeyboard(ev.ChatID, ui.MsgInvalidOption, ui.Confirmation())
		return stateConfirmDelete, nil
	}

	var outcome string
	switch {
	case draft.Option == ui.BtnDeleteExpenses && draft.SelectedExpense != nil:
		res := h.client.DeleteExpense(ctx, draft.SelectedExpense.ID)
		outcome = ui.MsgExpenseDeleted
		if !res.OK() {
			outcome = ui.MsgExpenseDeleteErr
		}
	case draft.Option == ui.BtnDeletePayments && draft.SelectedPayment != nil:
		res := h.client.DeletePayment(ctx, draft.SelectedPayment.ID)
		outcome = ui.MsgPaymentDeleted
		if !res.OK() {
			outcome = ui.MsgPaymentDeleteErr
		}
	default:
		sess.ClearDraft()
		return flow.StateEnd, common.ErrItemNotFound
	}

	sess.ClearDraft()
	h.sender.SendMenu(ev.ChatID, outcome)
	return flow.StateEnd, nil
}

func (h *Handler) cancel(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	sess.ClearDraft()
	h.sender.SendMenu(ev.ChatID, ui.MsgCancelled)
	return flow.StateEnd, nil
}
