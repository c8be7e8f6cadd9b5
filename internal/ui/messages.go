// Package ui — messages.go concentra todos los textos que ve el usuario.
package ui

// Menú y navegación
const (
	MsgMainMenu    = "¿Qué quieres hacer?"
	MsgUnknownText = "No entiendo ese comando. Aquí tienes el menú principal:"
	MsgCancelled   = "Operación cancelada."
	MsgGenericErr  = "❌ Error: "
)

// Errores compartidos
const (
	MsgNotInFamily    = "❌ No perteneces a ninguna familia. Usa /start para crear una o unirte."
	MsgInvalidAmount  = "❌ El monto no es válido. Ingresa un número positivo (por ejemplo 12.50):"
	MsgInvalidOption  = "❌ Opción no válida. Usa los botones del teclado:"
	MsgMemberNotFound = "❌ No se encontró tu registro de miembro. Intenta de nuevo con /start."
)

// Flujo de gastos
const (
	MsgExpenseIntro      = "💸 *Nuevo Gasto*\n\nEscribe la descripción del gasto:"
	MsgExpenseAskAmount  = "Descripción: *%s*\n\nAhora escribe el monto:"
	MsgConfirmExpense    = "¿Confirmas este gasto?\n\n%s"
	MsgExpenseCreated    = "✅ *Gasto Creado Exitosamente*\n\n*Descripción:* %s\n*Monto:* $%.2f\n*Pagado por:* Tú\n*ID del Gasto:* `%s`"
	MsgExpenseCreateErr  = "❌ No se pudo crear el gasto. Inténtalo de nuevo más tarde."
	MsgExpenseListEmpty  = "📋 No hay gastos registrados en esta familia."
	MsgExpenseListHeader = "📋 *Gastos de la Familia*"
	MsgExpenseListErr    = "❌ Error al obtener los gastos. Código de error: %d"
)

// Flujo de pagos
const (
	MsgPaymentIntro       = "💳 *Registrar Pago*\n\nSelecciona a quién le quieres pagar:"
	MsgPaymentNoDebts     = "🎉 No tienes deudas pendientes. ¡No hay nada que pagar!"
	MsgPaymentAskAmount   = "Escribe el monto a pagar:"
	MsgPaymentOverMax     = "❌ El monto máximo que puedes pagar es $%.2f. Ingresa un monto menor o igual:"
	MsgPaymentInvalidPick = "❌ Miembro no válido. Selecciona un miembro de la lista:"
	MsgConfirmPayment     = "¿Confirmas este pago?\n\n%s"
	MsgPaymentConfirmAsk  = "❌ Por favor, confirma o cancela el pago:"
	MsgPaymentCancelled   = "Pago cancelado."
	MsgPaymentCreated     = "✅ Pago registrado exitosamente."
	MsgPaymentCreateErr   = "❌ Error al registrar el pago. Código de error: %d"
	MsgBalancesErr        = "❌ Error al obtener los balances. Código de error: %d"
)

// Flujo de edición/eliminación
const (
	MsgEditOptions         = "✏️ ¿Qué quieres hacer?"
	MsgSelectExpenseEdit   = "📝 Selecciona el gasto que quieres editar:"
	MsgSelectExpenseDelete = "🗑️ Selecciona el gasto que quieres eliminar:"
	MsgSelectPaymentEdit   = "📝 Selecciona el pago que quieres editar:"
	MsgSelectPaymentDelete = "🗑️ Selecciona el pago que quieres eliminar:"
	MsgNoExpenses          = "📋 No hay gastos para editar o eliminar."
	MsgNoPayments          = "📋 No hay pagos para editar o eliminar."
	MsgExpenseNotFound     = "❌ No se encontró el gasto seleccionado."
	MsgPaymentNotFound     = "❌ No se encontró el pago seleccionado."
	MsgEditPaymentsStub    = "La edición de pagos aún no está implementada."
	MsgAskNewAmount        = "Vas a editar el gasto: *%s*\nMonto actual: *$%.2f*\n\nPor favor, ingresa el nuevo monto:"
	MsgExpenseUpdated      = "✅ Gasto actualizado con éxito:\n\n*Descripción:* %s\n*Monto anterior:* $%.2f\n*Nuevo monto:* $%.2f"
	MsgExpenseUpdateErr    = "❌ Error al actualizar el gasto: %s"
	MsgConfirmDeleteExp    = "🗑️ ¿Seguro que quieres eliminar este gasto?\n\n%s"
	MsgConfirmDeletePay    = "🗑️ ¿Seguro que quieres eliminar este pago?\n\n%s"
	MsgExpenseDeleted      = "✅ Gasto eliminado exitosamente."
	MsgPaymentDeleted      = "✅ Pago eliminado exitosamente."
	MsgExpenseDeleteErr    = "❌ No se pudo eliminar el gasto."
	MsgPaymentDeleteErr    = "❌ No se pudo eliminar el pago."
)

// Alta de familia
const (
	MsgWelcome          = "👋 ¡Bienvenido! Para empezar, crea una familia o únete a una existente:"
	MsgAskFamilyName    = "🏠 Escribe el nombre de tu familia:"
	MsgAskUserName      = "Nombre de la familia: *%s*\n\n¿Y cómo te llamas tú?"
	MsgAskJoinCode      = "🔗 Escribe el ID de la familia a la que quieres unirte:"
	MsgFamilyCreated    = "✅ Familia *%s* creada exitosamente.\nID: `%s`"
	MsgFamilyCreateErr  = "❌ No se pudo crear la familia. Inténtalo de nuevo."
	MsgJoinedFamily     = "✅ Te uniste a la familia exitosamente."
	MsgJoinErr          = "❌ No se pudo completar la unión a la familia. Verifica el ID."
	MsgFamilyInfoErr    = "❌ Error al obtener la información de la familia."
	MsgBalancesHeader   = "📊 *Balances de la Familia*"
	MsgAlreadyInFamily  = "Ya perteneces a una familia."
	MsgInviteExtra      = "📝 ID de la familia: %s\n\nSi el enlace o el código QR no funcionan, puedes compartir este ID. El invitado deberá seleccionar la opción '🔗 Unirse a Familia' e introducir este ID."
	MsgInviteCaptionFmt = "🔗 Invitación a la Familia %s\n\nComparte este código QR o el siguiente enlace para invitar a alguien a unirse a tu familia:\n\n%s\n\nInstrucciones para el invitado:\n1. Haz clic en el enlace o escanea el código QR\n2. Se abrirá el bot @%s\n3. Presiona el botón 'INICIAR' o envía /start\n4. Serás añadido automáticamente a la familia %s"
)
