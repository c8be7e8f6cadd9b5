// Package ui — formatters.go: funciones puras de presentación.
// Transforman datos del dominio en texto; no llaman al backend ni
// mutan la sesión.
package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Alexmontesino96/FinancialBotGrok/internal/api"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/session"
)

// idSuffix extrae el identificador embebido en las etiquetas de
// selección: "... (ID: abc)".
var idSuffix = regexp.MustCompile(`\(ID: ([^)]+)\)`)

// FormatAmount formatea un monto con exactamente dos decimales.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// MemberName resuelve un ID de miembro a su nombre visible. Si el
// directorio no lo conoce devuelve la etiqueta sintética "Usuario {id}":
// el directorio es best-effort y ese fallback debe conservarse.
func MemberName(names session.NameDirectory, id api.ID) string {
	if name, ok := names.Resolve(id.String()); ok {
		return name
	}
	return "Usuario " + id.String()
}

// ExpenseLabel arma la etiqueta de selección de un gasto. El sufijo
// "(ID: ...)" hace la selección parseable aunque dos gastos tengan
// descripción y monto idénticos.
func ExpenseLabel(e api.Expense) string {
	description := e.Description
	if description == "" {
		description = "Sin descripción"
	}
	return fmt.Sprintf("%s - %s (ID: %s)", description, FormatAmount(e.Amount), e.ID)
}

// PaymentLabel arma la etiqueta de selección de un pago.
func PaymentLabel(p api.Payment, names session.NameDirectory) string {
	from := MemberName(names, p.FromMember)
	to := MemberName(names, p.ToMember)
	return fmt.Sprintf("%s → %s - %s (ID: %s)", from, to, FormatAmount(p.Amount), p.ID)
}

// CreditorLabel arma la etiqueta de un acreedor en el flujo de pagos.
func CreditorLabel(c session.Creditor) string {
	return fmt.Sprintf("%s (%s)", c.Name, FormatAmount(c.Amount))
}

// ExtractID recupera el identificador embebido en una etiqueta de
// selección. Devuelve false si la etiqueta no trae sufijo de ID.
func ExtractID(label string) (api.ID, bool) {
	match := idSuffix.FindStringSubmatch(label)
	if match == nil {
		return "", false
	}
	return api.ID(match[1]), true
}

// FormatExpenses arma la lista de gastos con el pagador resuelto.
func FormatExpenses(expenses []api.Expense, names session.NameDirectory) string {
	var sb strings.Builder
	for i, e := range expenses {
		description := e.Description
		if description == "" {
			description = "Sin descripción"
		}
		fmt.Fprintf(&sb, "%d. *%s* — %s\n   Pagado por: %s\n",
			i+1, description, FormatAmount(e.Amount), MemberName(names, e.PaidBy))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatBalances arma el resumen de deudas por miembro.
func FormatBalances(balances []api.MemberBalance, names session.NameDirectory) string {
	var sb strings.Builder
	for _, b := range balances {
		fmt.Fprintf(&sb, "*%s*\n", MemberName(names, b.MemberID))
		if len(b.Debts) == 0 {
			sb.WriteString("  ✔ Sin deudas\n")
			continue
		}
		for _, d := range b.Debts {
			fmt.Fprintf(&sb, "  → Debe %s a %s\n", FormatAmount(d.Amount), d.To)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatFamilyInfo arma la ficha de la familia con su lista de miembros.
func FormatFamilyInfo(family *api.Family) string {
	var members strings.Builder
	for _, m := range family.Members {
		name := m.Name
		if name == "" {
			name = "Usuario " + m.ID.String()
		}
		crown := ""
		if m.IsAdmin {
			crown = " 👑"
		}
		fmt.Fprintf(&members, "- %s%s\n", name, crown)
	}
	return fmt.Sprintf(
		"👪 *Información de la Familia*\n\n*Nombre:* %s\n*ID:* `%s`\n\n*Miembros (%d):*\n%s",
		family.Name, family.ID, len(family.Members), strings.TrimRight(members.String(), "\n"))
}

// ExpenseDetails arma el detalle de un gasto para confirmaciones.
func ExpenseDetails(description string, amount float64, paidBy string) string {
	return fmt.Sprintf("*Descripción:* %s\n*Monto:* %s\n*Pagado por:* %s",
		description, FormatAmount(amount), paidBy)
}

// PaymentDetails arma el detalle de un pago para confirmaciones.
func PaymentDetails(from, to string, amount float64) string {
	return fmt.Sprintf("*De:* %s\n*Para:* %s\n*Monto:* %s", from, to, FormatAmount(amount))
}
