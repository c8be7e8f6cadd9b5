// Package qr genera códigos QR en PNG para las invitaciones.
package qr

import qrcode "github.com/skip2/go-qrcode"

// Generate devuelve un PNG con el contenido codificado.
func Generate(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, 256)
}
