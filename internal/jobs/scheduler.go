// Package jobs maneja las tareas de fondo (cron). Hoy hay una sola:
// el sondeo de disponibilidad del backend del ledger.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/Alexmontesino96/FinancialBotGrok/internal/api"
	"github.com/Alexmontesino96/FinancialBotGrok/internal/session"
)

// Scheduler administra las tareas de fondo.
type Scheduler struct {
	cron     *cron.Cron
	client   *api.Client
	sessions *session.Store
	schedule string
}

// NewScheduler crea el planificador. schedule acepta expresiones cron
// estándar o descriptores como "@every 5m".
func NewScheduler(client *api.Client, sessions *session.Store, schedule string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		client:   client,
		sessions: sessions,
		schedule: schedule,
	}
}

// Start registra y arranca las tareas.
func (s *Scheduler) Start(ctx context.Context) {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.probe(ctx) }); err != nil {
		log.WithError(err).WithField("schedule", s.schedule).
			Error("[CRON] Expresión de sondeo inválida, tarea no registrada")
		return
	}

	s.cron.Start()
	log.WithField("schedule", s.schedule).Info("Planificador de tareas en marcha")
}

// probe verifica que el backend responda. Un backend caído no detiene
// al bot: los flujos ya traducen 503/504 en mensajes al usuario, esto
// solo deja rastro en los logs para el operador.
func (s *Scheduler) probe(ctx context.Context) {
	res := s.client.Health(ctx)

	fields := log.Fields{
		"status":   res.Status,
		"sessions": s.sessions.Count(),
	}
	switch res.Status {
	case 503, 504:
		log.WithFields(fields).Warn("[CRON] Backend del ledger inalcanzable")
	default:
		log.WithFields(fields).Debug("[CRON] Backend del ledger disponible")
	}
}

// Stop detiene el planificador y espera a que terminen las tareas en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("Planificador de tareas detenido")
}
