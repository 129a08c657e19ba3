// Package metrics defines and registers all custom Prometheus metrics for the
// booking API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// ── Order and quote metrics ───────────────────────────────────────────────────

// OrdersCreatedTotal counts booking orders submitted through the public form.
// Label:
//   - service: the service category booked (e.g. "domicile", "conteneurs")
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of booking orders created, by service category.",
	},
	[]string{"service"},
)

// QuotesCreatedTotal counts documents issued by the administrator.
// Label:
//   - type: "devis" (quote) or "facture" (invoice)
var QuotesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_created_total",
		Help:      "Total number of quotes and invoices created, by document type.",
	},
	[]string{"type"},
)

// QuotesSignedTotal counts successful electronic signatures.
var QuotesSignedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_signed_total",
		Help:      "Total number of quotes electronically signed by clients.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - role: "admin" or "client"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// MailsSentTotal counts emails delivered to the SMTP relay.
var MailsSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mails_sent_total",
		Help:      "Total number of emails successfully handed to the SMTP relay.",
	},
)

// MailsFailedTotal counts emails that could not be delivered.
var MailsFailedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mails_failed_total",
		Help:      "Total number of emails that failed to send after processing.",
	},
)

// MailQueueDepth tracks the number of messages waiting in each mail worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of emails pending in each mail worker channel.",
	},
	[]string{"worker_id"},
)

// ── Websocket metrics ─────────────────────────────────────────────────────────

// WebsocketSessions tracks currently connected live-update subscribers.
var WebsocketSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_sessions",
		Help:      "Number of websocket clients currently subscribed to live updates.",
	},
)
