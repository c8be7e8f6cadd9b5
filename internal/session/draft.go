// Package session — draft.go define los borradores de los flujos
// multi-paso. La sesión tiene UN solo slot de borrador: empezar un flujo
// nuevo reemplaza cualquier borrador abandonado por un flujo anterior.
package session

import "github.com/Alexmontesino96/FinancialBotGrok/internal/api"

// Draft es la unión etiquetada de los borradores posibles.
// Solo los tipos de este paquete la implementan.
type Draft interface {
	draftKind() string
}

// ExpenseDraft es el gasto en construcción del flujo de creación.
type ExpenseDraft struct {
	TelegramID  string
	MemberID    api.ID
	FamilyID    api.ID
	Description string
	Amount      float64
}

func (*ExpenseDraft) draftKind() string { return "expense" }

// Creditor es un acreedor candidato del flujo de pagos: alguien a quien
// el usuario le debe dinero, con el máximo pagable cacheado.
type Creditor struct {
	ID     api.ID
	Name   string
	Amount float64
}

// PaymentDraft es el pago en construcción del flujo de registro.
type PaymentDraft struct {
	FromMember   api.ID
	Creditors    []Creditor
	ToMember     api.ID
	ToMemberName string
	MaxAmount    float64
	Amount       float64
}

func (*PaymentDraft) draftKind() string { return "payment" }

// EditDraft guarda la opción elegida y los candidatos del flujo de
// edición/eliminación.
type EditDraft struct {
	Option          string
	Expenses        []api.Expense
	Payments        []api.Payment
	SelectedExpense *api.Expense
	SelectedPayment *api.Payment
}

func (*EditDraft) draftKind() string { return "edit" }

// OnboardingDraft guarda el nombre de familia entre los pasos del alta.
type OnboardingDraft struct {
	FamilyName string
}

func (*OnboardingDraft) draftKind() string { return "onboarding" }
