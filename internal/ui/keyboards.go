// Package ui — keyboards.go define los teclados de respuesta como
// grillas de etiquetas. El transporte concreto (Telegram) las convierte
// en ReplyKeyboardMarkup; este paquete no conoce la API de Telegram.
package ui

// Etiquetas del menú principal. El dispatcher las compara de forma
// EXACTA, emoji incluido.
const (
	BtnCreateExpense = "💸 Crear Gasto"
	BtnListExpenses  = "📋 Ver Gastos"
	BtnBalances      = "💰 Ver Balances"
	BtnRegisterPay   = "💳 Registrar Pago"
	BtnFamilyInfo    = "ℹ️ Info Familia"
	BtnShareInvite   = "🔗 Compartir Invitación"
	BtnEditDelete    = "✏️ Editar/Eliminar"
)

// Tokens de control reconocidos dentro de todo flujo multi-paso.
const (
	BtnConfirm = "✅ Confirmar"
	BtnCancel  = "❌ Cancelar"
	BtnBack    = "↩️ Volver al Menú"
)

// Opciones del submenú de edición.
const (
	BtnEditExpenses   = "📝 Editar Gastos"
	BtnDeleteExpenses = "🗑️ Eliminar Gastos"
	BtnEditPayments   = "📝 Editar Pagos"
	BtnDeletePayments = "🗑️ Eliminar Pagos"
)

// Opciones del alta de familia.
const (
	BtnCreateFamily = "🏠 Crear Familia"
	BtnJoinFamily   = "🔗 Unirse a Familia"
)

// Keyboard es una grilla de etiquetas: una fila por slice interno.
type Keyboard [][]string

// MainMenu es el teclado del menú principal.
func MainMenu() Keyboard {
	return Keyboard{
		{BtnCreateExpense, BtnListExpenses},
		{BtnBalances, BtnRegisterPay},
		{BtnFamilyInfo, BtnShareInvite},
		{BtnEditDelete},
	}
}

// Confirmation es el teclado confirmar/cancelar.
func Confirmation() Keyboard {
	return Keyboard{{BtnConfirm, BtnCancel}}
}

// CancelOnly es el teclado con solo la opción de cancelar.
func CancelOnly() Keyboard {
	return Keyboard{{BtnCancel}}
}

// EditOptions es el submenú de edición/eliminación.
func EditOptions() Keyboard {
	return Keyboard{
		{BtnEditExpenses, BtnDeleteExpenses},
		{BtnEditPayments, BtnDeletePayments},
		{BtnBack},
	}
}

// OnboardingChoice es el teclado inicial para usuarios sin familia.
func OnboardingChoice() Keyboard {
	return Keyboard{{BtnCreateFamily}, {BtnJoinFamily}}
}

// Selection arma un teclado de una etiqueta por fila más la fila final
// indicada (cancelar o volver al menú).
func Selection(labels []string, tail string) Keyboard {
	kb := make(Keyboard, 0, len(labels)+1)
	for _, label := range labels {
		kb = append(kb, []string{label})
	}
	kb = append(kb, []string{tail})
	return kb
}
