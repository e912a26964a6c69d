package telegram

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"novenapp_alert_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const handlerTimeout = 5 * time.Minute

// RegisterAdminHandlers registers the administrative command surface:
// compliance KPIs, manual dispatch trigger and config updates. Commands are
// restricted to the configured admin chat ID.
func RegisterAdminHandlers(
	b *telebot.Bot,
	dispatcher *app.Dispatcher,
	complianceSvc *app.ComplianceService,
	ledger *app.Ledger,
	adminChatID int64,
	baseLogger *logrus.Entry,
) {
	authorized := func(c telebot.Context) bool {
		return c.Sender() != nil && c.Sender().ID == adminChatID
	}

	b.Handle("/estado", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/estado",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if !authorized(c) {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("Error: No tiene permisos para ejecutar este comando.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		stats, err := complianceSvc.Stats(ctx)
		if err != nil {
			handlerLogger.WithError(err).Error("Failed to compute compliance stats")
			return c.Send(fmt.Sprintf("Error al calcular cumplimiento: %s", err.Error()))
		}

		now := time.Now()
		used := ledger.MonthlyCount(ctx, now)
		limit := ledger.MonthlyLimit(ctx)
		window := ledger.AlertDays(ctx)

		msg := fmt.Sprintf(
			"📋 <b>Estado de Cumplimiento</b>\n"+
				"Vigentes: %d\nPor Vencer: %d\nVencidos: %d\n"+
				"Documentos por atender: %d\n"+
				"Subcontratistas activos: %d | bloqueados: %d\n\n"+
				"📨 Notificaciones del mes: %d/%d\n"+
				"⏱ Umbral de alerta: %d días",
			stats.Vigente, stats.PorVencer, stats.Vencido,
			stats.PendingAlerts,
			stats.ActiveSubs, stats.BlockedSubs,
			used, limit, window,
		)
		return c.Send(msg, &telebot.SendOptions{ParseMode: telebot.ModeHTML})
	})

	b.Handle("/chequear", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/chequear",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if !authorized(c) {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("Error: No tiene permisos para ejecutar este comando.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		// Manual re-trigger bypasses the daily gate on purpose; the ledger
		// still prevents duplicate sends.
		summary, err := dispatcher.CheckAndNotifyDeadlines(ctx)
		if err != nil {
			handlerLogger.WithError(err).Error("Manual dispatch failed")
			return c.Send(fmt.Sprintf("Error: %s", err.Error()))
		}
		handlerLogger.WithField("sent", summary.Sent).Info("Manual dispatch finished")
		return c.Send(summary.String())
	})

	b.Handle("/umbral", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/umbral",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if !authorized(c) {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("Error: No tiene permisos para ejecutar este comando.")
		}

		args := c.Args()
		if len(args) != 1 {
			return c.Send("Formato: /umbral <días>")
		}
		days, err := strconv.Atoi(args[0])
		if err != nil || days < 0 {
			return c.Send("Error: el umbral debe ser un número de días no negativo.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		if err := ledger.SetAlertDays(ctx, days); err != nil {
			handlerLogger.WithError(err).Error("Failed to update alert window")
			return c.Send(fmt.Sprintf("Error al guardar el umbral: %s", err.Error()))
		}
		handlerLogger.WithField("alert_days", days).Info("Alert window updated")
		return c.Send(fmt.Sprintf("Umbral de alerta actualizado a %d días.", days))
	})

	b.Handle("/limite", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/limite",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if !authorized(c) {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("Error: No tiene permisos para ejecutar este comando.")
		}

		args := c.Args()
		if len(args) != 1 {
			return c.Send("Formato: /limite <cantidad>")
		}
		limit, err := strconv.Atoi(args[0])
		if err != nil || limit < 0 {
			return c.Send("Error: el límite debe ser un número no negativo.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		if err := ledger.SetMonthlyLimit(ctx, limit); err != nil {
			handlerLogger.WithError(err).Error("Failed to update monthly limit")
			return c.Send(fmt.Sprintf("Error al guardar el límite: %s", err.Error()))
		}
		handlerLogger.WithField("monthly_limit", limit).Info("Monthly limit updated")
		return c.Send(fmt.Sprintf("Límite mensual de notificaciones actualizado a %d.", limit))
	})
}
