// Package api — client.go contiene el cliente HTTP base contra la API
// del ledger. Toda llamada devuelve un Result con el status code y el
// cuerpo JSON; el cliente NUNCA propaga errores de transporte como
// errores de Go: los convierte en status codes sintéticos para que los
// handlers usen un único canal de decisión (Status >= 400).
//
//	fallo de conexión  -> 503
//	timeout            -> 504
//	error inesperado   -> 500
//	cuerpo no-JSON     -> payload {"error": ..., "content": ...}
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Result es el par (status, payload) de toda llamada al backend.
type Result struct {
	Status int
	Body   json.RawMessage
}

// OK indica si la llamada terminó sin error de aplicación ni de transporte.
func (r Result) OK() bool {
	return r.Status < 400
}

// Decode deserializa el payload en v.
func (r Result) Decode(v any) error {
	if len(r.Body) == 0 {
		return errors.New("respuesta vacía")
	}
	return json.Unmarshal(r.Body, v)
}

// Detail extrae el mensaje de error del payload: "detail" si viene del
// backend, "error" si es sintético. Si no hay ninguno devuelve un
// mensaje genérico.
func (r Result) Detail() string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "Error desconocido"
}

// Client es el cliente compartido contra la API del ledger.
// Es seguro para uso concurrente; el timeout lo fija la configuración.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient crea el cliente del ledger. baseURL sin barra final.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Health sondea la raíz del backend. Cualquier respuesta HTTP cuenta
// como "vivo"; solo los estados sintéticos 503/504 indican caída.
func (c *Client) Health(ctx context.Context) Result {
	return c.request(ctx, http.MethodGet, "/", nil, "")
}

// request ejecuta una llamada HTTP contra el backend.
//   - body, si no es nil, se serializa como JSON.
//   - identity, si no está vacío, viaja como query param telegram_id;
//     es el ID de plataforma del usuario, no un token criptográfico.
func (c *Client) request(ctx context.Context, method, endpoint string, body any, identity string) Result {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	requestID := uuid.NewString()
	logger := log.WithFields(log.Fields{
		"request_id": requestID,
		"method":     method,
		"endpoint":   endpoint,
	})

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			logger.WithError(err).Error("No se pudo serializar el cuerpo de la solicitud")
			return syntheticResult(http.StatusInternalServerError, fmt.Sprintf("Error inesperado: %v", err))
		}
		reader = bytes.NewReader(encoded)
	}

	fullURL := c.baseURL + endpoint
	if identity != "" {
		query := url.Values{"telegram_id": {identity}}
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		logger.WithError(err).Error("No se pudo construir la solicitud")
		return syntheticResult(http.StatusInternalServerError, fmt.Sprintf("Error inesperado: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return transportResult(logger, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WithError(err).Error("No se pudo leer la respuesta")
		return syntheticResult(http.StatusInternalServerError, fmt.Sprintf("Error inesperado: %v", err))
	}

	logger.WithField("status", resp.StatusCode).Debug("Respuesta del backend")

	if len(raw) == 0 {
		return Result{Status: resp.StatusCode, Body: json.RawMessage(`{}`)}
	}
	if !json.Valid(raw) {
		logger.WithField("content", truncate(string(raw), 200)).Warn("Respuesta no es JSON válido")
		encoded, _ := json.Marshal(map[string]string{
			"error":   "Respuesta no es JSON válido",
			"content": string(raw),
		})
		return Result{Status: resp.StatusCode, Body: encoded}
	}

	return Result{Status: resp.StatusCode, Body: json.RawMessage(raw)}
}

// transportResult clasifica un error de transporte en un status sintético.
func transportResult(logger *log.Entry, err error) Result {
	var urlErr *url.Error
	timedOut := errors.Is(err, context.DeadlineExceeded)
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		timedOut = true
	}

	if timedOut {
		logger.WithError(err).Warn("Timeout en la solicitud al backend")
		return syntheticResult(http.StatusGatewayTimeout, fmt.Sprintf("Timeout en la solicitud: %v", err))
	}

	logger.WithError(err).Warn("Error de conexión con el backend")
	return syntheticResult(http.StatusServiceUnavailable, fmt.Sprintf("Error de conexión: %v", err))
}

func syntheticResult(status int, message string) Result {
	encoded, _ := json.Marshal(map[string]string{"error": message})
	return Result{Status: status, Body: encoded}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
