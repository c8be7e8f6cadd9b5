// Package family implementa el alta de familias (crear o unirse, con
// soporte de deep link de invitación), los balances, la ficha de la
// familia y la invitación con código QR.
package family

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Alexmontesino96/FinancialBotGrok/internal/api"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/common"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/flow"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/qr"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/session"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/ui"
)

// joinPrefix es el payload del deep link: t.me/<bot>?start=join_<familia>.
const joinPrefix = "join_"

// Estados del flujo de alta.
const (
	stateChoice     flow.State = "onboarding_choice"
	stateFamilyName flow.State = "onboarding_family_name"
	stateUserName   flow.State = "onboarding_user_name"
	stateJoinCode   flow.State = "onboarding_join_code"
)

// Handler agrupa el alta y las consultas de familia.
type Handler struct {
	client      *api.Client
	sender      ui.Sender
	botUsername string
	flow        *flow.Flow
}

// NewHandler crea el handler de familia. botUsername se usa para armar
// el enlace de invitación.
func NewHandler(client *api.Client, sender ui.Sender, botUsername string) *Handler {
	h := &Handler{client: client, sender: sender, botUsername: botUsername}
	h.flow = &flow.Flow{
		Name:  "onboarding",
		Entry: h.start,
		States: map[flow.State]flow.HandlerFunc{
			stateChoice:     h.choice,
			stateFamilyName: h.familyName,
			stateUserName:   h.userName,
			stateJoinCode:   h.joinCode,
		},
		OnCancel: h.cancel,
	}
	return h
}

// Flow devuelve la máquina de estados del alta.
func (h *Handler) Flow() *flow.Flow { return h.flow }

// start atiende /start. Con payload join_<id> une directo; sin payload,
// un usuario con familia va al menú y uno nuevo al alta.
func (h *Handler) start(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	if familyID, ok := deepLinkFamily(ev.Text); ok {
		h.join(ctx, sess, ev, familyID)
		return flow.StateEnd, nil
	}

	res, member := h.client.GetMember(ctx, sess.TelegramID)
	if res.Status == 200 && member != nil && member.FamilyID != "" {
		sess.SetFamily(member.FamilyID, member.ID)
		h.sender.SendMenu(ev.ChatID, ui.MsgAlreadyInFamily+" "+ui.MsgMainMenu)
		return flow.StateEnd, nil
	}

	sess.SetDraft(&session.OnboardingDraft{})
	h.sender.SendKeyboard(ev.ChatID, ui.MsgWelcome, ui.OnboardingChoice())
	return stateChoice, nil
}

// deepLinkFamily extrae el ID de familia del payload de /start, si hay.
func deepLinkFamily(text string) (api.ID, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 || !strings.HasPrefix(fields[1], joinPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(fields[1], joinPrefix)
	if id == "" {
		return "", false
	}
	return api.ID(id), true
}

func (h *Handler) choice(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	switch ev.Text {
	case ui.BtnCreateFamily:
		h.sender.SendKeyboard(ev.ChatID, ui.MsgAskFamilyName, ui.CancelOnly())
		return stateFamilyName, nil
	case ui.BtnJoinFamily:
		h.sender.SendKeyboard(ev.ChatID, ui.MsgAskJoinCode, ui.CancelOnly())
		return stateJoinCode, nil
	default:
		h.sender.SendKeyboard(ev.ChatID, ui.MsgInvalidOption, ui.OnboardingChoice())
		return stateChoice, nil
	}
}

func (h *Handler) familyName(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	draft, ok := sess.OnboardingDraft()
	if !ok {
		return flow.StateEnd, common.ErrMissingDraft
	}

	name := strings.TrimSpace(ev.Text)
	if name == "" {
		h.sender.SendKeyboard(ev.ChatID, ui.MsgAskFamilyName, ui.CancelOnly())
		return stateFamilyName, nil
	}

	draft.FamilyName = name
	h.sender.SendMarkdown(ev.ChatID, fmt.Sprintf(ui.MsgAskUserName, name), ui.CancelOnly())
	return stateUserName, nil
}

func (h *Handler) userName(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	draft, ok := sess.OnboardingDraft()
	if !ok {
		return flow.StateEnd, common.ErrMissingDraft
	}

	userName := strings.TrimSpace(ev.Text)
	if userName == "" {
		userName = ev.Name
	}

	res, family := h.client.CreateFamily(ctx, draft.FamilyName,
		[]api.NewMember{{TelegramID: sess.TelegramID, Name: userName}}, sess.TelegramID)
	sess.ClearDraft()
	if !res.OK() || family == nil {
		log.WithFields(log.Fields{
			"status": res.Status,
			"detail": res.Detail(),
		}).Error("No se pudo crear la familia")
		h.sender.SendMenu(ev.ChatID, ui.MsgFamilyCreateErr)
		return flow.StateEnd, nil
	}

	var memberID api.ID
	for _, m := range family.Members {
		if m.TelegramID == sess.TelegramID {
			memberID = m.ID
			break
		}
	}
	sess.SetFamily(family.ID, memberID)
	sess.LoadMemberNames(ctx, family.ID)

	h.sender.SendMarkdown(ev.ChatID,
		fmt.Sprintf(ui.MsgFamilyCreated, family.Name, family.ID), ui.MainMenu())
	return flow.StateEnd, nil
}

func (h *Handler) joinCode(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	code := strings.TrimSpace(ev.Text)
	// Se acepta el payload completo pegado a mano.
	code = strings.TrimPrefix(code, joinPrefix)
	if code == "" {
		h.sender.SendKeyboard(ev.ChatID, ui.MsgAskJoinCode, ui.CancelOnly())
		return stateJoinCode, nil
	}

	sess.ClearDraft()
	h.join(ctx, sess, ev, api.ID(code))
	return flow.StateEnd, nil
}

// join añade al usuario a la familia indicada y deja la sesión lista.
func (h *Handler) join(ctx context.Context, sess *session.Session, ev flow.Event, familyID api.ID) {
	name := strings.TrimSpace(ev.Name)
	if name == "" {
		name = "Usuario " + sess.TelegramID
	}

	res, member := h.client.AddMember(ctx, familyID, sess.TelegramID, name, sess.TelegramID)
	if !res.OK() {
		log.WithFields(log.Fields{
			"status":    res.Status,
			"family_id": familyID,
		}).Warn("Fallo al unirse a la familia")
		h.sender.SendMenu(ev.ChatID, ui.MsgJoinErr)
		return
	}

	var memberID api.ID
	if member != nil {
		memberID = member.ID
	}
	sess.SetFamily(familyID, memberID)
	sess.LoadMemberNames(ctx, familyID)
	h.sender.SendMenu(ev.ChatID, ui.MsgJoinedFamily)
}

func (h *Handler) cancel(ctx context.Context, sess *session.Session, ev flow.Event) (flow.State, error) {
	sess.ClearDraft()
	// Tras cancelar no hay teclado de alta: el usuario retoma con /start.
	h.sender.Send(ev.ChatID, ui.MsgCancelled+" Usa /start cuando quieras retomar.")
	return flow.StateEnd, nil
}

// Balances muestra cuánto debe cada miembro y a quién.
func (h *Handler) Balances(ctx context.Context, sess *session.Session, ev flow.Event) {
	familyID, ok := sess.EnsureFamily(ctx)
	if !ok {
		h.sender.SendMenu(ev.ChatID, ui.MsgNotInFamily)
		return
	}

	res, balances := h.client.FamilyBalances(ctx, familyID, sess.TelegramID)
	if !res.OK() || balances == nil {
		h.sender.SendMenu(ev.ChatID, fmt.Sprintf(ui.MsgBalancesErr, res.Status))
		return
	}

	names := sess.MemberNames()
	if len(names) == 0 && sess.LoadMemberNames(ctx, familyID) {
		names = sess.MemberNames()
	}

	text := ui.MsgBalancesHeader + "\n\n" + ui.FormatBalances(balances, names)
	h.sender.SendMarkdown(ev.ChatID, text, ui.MainMenu())
}

// Info muestra la ficha de la familia con sus miembros.
func (h *Handler) Info(ctx context.Context, sess *session.Session, ev flow.Event) {
	familyID, ok := sess.EnsureFamily(ctx)
	if !ok {
		h.sender.SendMenu(ev.ChatID, ui.MsgNotInFamily)
		return
	}

	res, family := h.client.GetFamily(ctx, familyID, sess.TelegramID)
	if !res.OK() || family == nil {
		h.sender.SendMenu(ev.ChatID, ui.MsgFamilyInfoErr)
		return
	}

	h.sender.SendMarkdown(ev.ChatID, ui.FormatFamilyInfo(family), ui.MainMenu())
}

// Invite genera el deep link de invitación y su código QR. Si el QR no
// se puede generar, el enlace en texto igual sale.
func (h *Handler) Invite(ctx context.Context, sess *session.Session, ev flow.Event) {
	familyID, ok := sess.EnsureFamily(ctx)
	if !ok {
		h.sender.SendMenu(ev.ChatID, ui.MsgNotInFamily)
		return
	}

	res, family := h.client.GetFamily(ctx, familyID, sess.TelegramID)
	if !res.OK() || family == nil {
		h.sender.SendMenu(ev.ChatID, ui.MsgFamilyInfoErr)
		return
	}

	link := fmt.Sprintf("https://t.me/%s?start=%s%s", h.botUsername, joinPrefix, familyID)
	caption := fmt.Sprintf(ui.MsgInviteCaptionFmt, family.Name, link, h.botUsername, family.Name)

	png, err := qr.Generate(link)
	if err != nil {
		log.WithError(err).Warn("No se pudo generar el QR de invitación")
		h.sender.Send(ev.ChatID, caption)
	} else {
		h.sender.SendPhoto(ev.ChatID, caption, png)
	}

	h.sender.SendMenu(ev.ChatID, fmt.Sprintf(ui.MsgInviteExtra, familyID))
}
