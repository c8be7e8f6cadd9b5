// Package session administra el contexto conversacional de cada usuario:
// identidad cacheada (familia, miembro, directorio de nombres) y el
// borrador del flujo activo. Vive solo en memoria: se crea en la primera
// interacción y no sobrevive reinicios del proceso.
package session

import (
	"context"
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/Alexmontesino96/FinancialBotGrok/internal/api"
)

// Store mantiene una sesión por usuario de Telegram.
// Las sesiones de usuarios distintos son independientes entre sí.
type Store struct {
	mu       sync.Mutex
	client   *api.Client
	sessions map[int64]*Session
}

// NewStore crea el almacén de sesiones sobre el cliente del ledger.
func NewStore(client *api.Client) *Store {
	return &Store{
		client:   client,
		sessions: make(map[int64]*Session),
	}
}

// Get devuelve la sesión del usuario, creándola si es la primera vez.
func (s *Store) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{
			TelegramID: strconv.FormatInt(userID, 10),
			client:     s.client,
		}
		s.sessions[userID] = sess
	}
	return sess
}

// Count devuelve cuántas sesiones hay en memoria (para los jobs de log).
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Session es el contexto de UN usuario. El dispatcher la bloquea durante
// el procesamiento de cada mensaje, así que los métodos no toman el lock:
// dentro de un mensaje el acceso ya es serial.
type Session struct {
	sync.Mutex

	TelegramID string

	client   *api.Client
	familyID api.ID
	memberID api.ID
	names    NameDirectory
	draft    Draft
}

// EnsureFamily devuelve el ID de familia del usuario, consultando al
// backend solo la primera vez. Devuelve false si el usuario no pertenece
// a ninguna familia o el backend falla: quien llama debe avisar el error
// y terminar el flujo en curso.
func (s *Session) EnsureFamily(ctx context.Context) (api.ID, bool) {
	if s.familyID != "" {
		return s.familyID, true
	}

	res, member := s.client.GetMember(ctx, s.TelegramID)
	if res.Status != 200 || member == nil || member.FamilyID == "" {
		log.WithFields(log.Fields{
			"telegram_id": s.TelegramID,
			"status":      res.Status,
		}).Debug("Usuario sin familia según el backend")
		return "", false
	}

	s.familyID = member.FamilyID
	s.memberID = member.ID
	return s.familyID, true
}

// LoadMemberNames carga el directorio de nombres desde el backend.
// En caso de fallo devuelve false SIN tocar el directorio existente:
// un directorio viejo sigue siendo mejor que ninguno.
func (s *Session) LoadMemberNames(ctx context.Context, familyID api.ID) bool {
	res, family := s.client.GetFamily(ctx, familyID, s.TelegramID)
	if res.Status != 200 || family == nil {
		log.WithFields(log.Fields{
			"family_id": familyID,
			"status":    res.Status,
		}).Warn("No se pudieron cargar los miembros de la familia")
		return false
	}

	names := make(NameDirectory, len(family.Members)*2)
	for _, member := range family.Members {
		name := member.Name
		if name == "" {
			name = usuarioPrefix + member.ID.String()
		}
		names[CanonicalID(member.ID.String())] = name
		if member.TelegramID != "" {
			names[CanonicalID(member.TelegramID)] = name
		}
	}
	s.names = names
	return true
}

// MemberNames devuelve el directorio de nombres (vacío si no se cargó).
func (s *Session) MemberNames() NameDirectory {
	if s.names == nil {
		return NameDirectory{}
	}
	return s.names
}

// FamilyID devuelve el ID de familia cacheado, sin consultar al backend.
func (s *Session) FamilyID() api.ID { return s.familyID }

// MemberID devuelve el ID de miembro cacheado.
func (s *Session) MemberID() api.ID { return s.memberID }

// SetFamily cachea la identidad tras crear o unirse a una familia.
func (s *Session) SetFamily(familyID, memberID api.ID) {
	s.familyID = familyID
	s.memberID = memberID
}

// SetDraft instala el borrador del flujo activo, reemplazando cualquier
// borrador anterior: el slot único garantiza "como máximo un borrador".
func (s *Session) SetDraft(d Draft) { s.draft = d }

// ClearDraft descarta el borrador al completar o cancelar un flujo.
func (s *Session) ClearDraft() { s.draft = nil }

// ExpenseDraft devuelve el borrador de gasto si es el activo.
func (s *Session) ExpenseDraft() (*ExpenseDraft, bool) {
	d, ok := s.draft.(*ExpenseDraft)
	return d, ok
}

// PaymentDraft devuelve el borrador de pago si es el activo.
func (s *Session) PaymentDraft() (*PaymentDraft, bool) {
	d, ok := s.draft.(*PaymentDraft)
	return d, ok
}

// EditDraft devuelve el borrador de edición si es el activo.
func (s *Session) EditDraft() (*EditDraft, bool) {
	d, ok := s.draft.(*EditDraft)
	return d, ok
}

// OnboardingDraft devuelve el borrador de alta si es el activo.
func (s *Session) OnboardingDraft() (*OnboardingDraft, bool) {
	d, ok := s.draft.(*OnboardingDraft)
	return d, ok
}

// Reset limpia toda la sesión (identidad, nombres y borrador).
func (s *Session) Reset() {
	s.familyID = ""
	s.memberID = ""
	s.names = nil
	s.draft = nil
}
