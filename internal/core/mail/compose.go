// Package mail builds the notification email bodies. Transport lives in
// internal/infrastructure/mail; this package only produces messages.
package mail

import (
	"fmt"
	"strings"

	"github.com/luminett/booking-api/internal/core/domain"
	"github.com/luminett/booking-api/internal/core/ports"
)

// Composer builds notification messages for the two recipients the system
// writes to: the business owner (AdminEmail) and the client on a document.
type Composer struct {
	AdminEmail string
	SiteURL    string
}

// NewOrderMessages returns the admin alert and the client confirmation sent
// when a new order is submitted.
func (c Composer) NewOrderMessages(o *domain.Order) []ports.MailMessage {
	label := serviceLabel(o.Service)

	var details strings.Builder
	details.WriteString(`<table style="width:100%;border-collapse:collapse;font-size:14px">`)
	row(&details, "Service", label)
	row(&details, "Client", o.ClientName)
	row(&details, "Email", o.ClientEmail)
	row(&details, "Téléphone", o.ClientPhone)
	row(&details, "Adresse", o.Address)
	row(&details, "Date", o.Date)
	row(&details, "Créneau", o.TimeSlot)
	if o.SurfaceArea != "" {
		row(&details, "Surface", o.SurfaceArea)
	}
	if o.Notes != "" {
		row(&details, "Notes", o.Notes)
	}
	details.WriteString(`</table>`)

	admin := ports.MailMessage{
		To:      c.AdminEmail,
		Subject: fmt.Sprintf("Nouvelle commande #%d — %s", o.ID, label),
		HTML: wrap(fmt.Sprintf(
			`<h2 style="color:#1d4ed8;margin-top:0">Commande #%d</h2>
			<p style="color:#475569">Nouvelle demande reçue.</p>%s
			<div style="margin-top:24px;text-align:center">
			<a href="%s/admin" style="background:#1d4ed8;color:#fff;padding:12px 28px;border-radius:8px;text-decoration:none;font-weight:600;display:inline-block">Voir le tableau de bord →</a>
			</div>`,
			o.ID, details.String(), c.SiteURL)),
	}

	client := ports.MailMessage{
		To:      o.ClientEmail,
		Subject: fmt.Sprintf("Demande reçue — LumiNett #%d", o.ID),
		HTML: wrap(fmt.Sprintf(
			`<p>Bonjour <strong>%s</strong>,</p>
			<p style="color:#475569">Nous avons bien reçu votre demande de <strong>%s</strong>. Notre équipe vous contactera sous <strong>48h</strong>.</p>
			<div style="background:#eff6ff;border-left:4px solid #1d4ed8;padding:16px 20px;margin:20px 0;border-radius:0 8px 8px 0">
			<p style="margin:0 0 8px;color:#1e40af;font-weight:700">Récapitulatif</p>
			<p style="margin:4px 0;color:#334155">Date : <strong>%s</strong></p>
			<p style="margin:4px 0;color:#334155">Créneau : <strong>%s</strong></p>
			<p style="margin:4px 0;color:#334155">Adresse : <strong>%s</strong></p>
			</div>
			<p style="color:#475569">Cordialement,<br><strong>L'équipe LumiNett</strong></p>`,
			o.ClientName, label, o.Date, o.TimeSlot, o.Address)),
	}

	return []ports.MailMessage{admin, client}
}

// NewQuoteMessage returns the client notification sent when a quote or
// invoice is issued.
func (c Composer) NewQuoteMessage(q *domain.Quote) ports.MailMessage {
	typeLabel := "devis"
	action := " et le signer"
	if q.Type == domain.TypeInvoice {
		typeLabel = "facture"
		action = ""
	}

	validity := ""
	if q.ValidUntil != "" {
		validity = fmt.Sprintf(`<p style="margin:4px 0 0;color:#64748b;font-size:13px">Valide jusqu'au : %s</p>`, q.ValidUntil)
	}

	return ports.MailMessage{
		To:      q.ClientEmail,
		Subject: fmt.Sprintf("Nouveau %s disponible — LumiNett (%s)", typeLabel, q.Reference),
		HTML: wrap(fmt.Sprintf(
			`<p>Bonjour <strong>%s</strong>,</p>
			<p style="color:#475569">Vous avez reçu un nouveau <strong>%s</strong> de LumiNett.</p>
			<div style="background:#eff6ff;border-left:4px solid #1d4ed8;padding:16px 20px;margin:20px 0;border-radius:0 8px 8px 0">
			<p style="margin:0 0 4px;color:#1e40af;font-weight:700">Référence : %s</p>
			<p style="margin:0;color:#334155">Montant total TTC : <strong>%.2f €</strong></p>%s
			</div>
			<p style="color:#475569">Connectez-vous à votre espace client pour le consulter%s :</p>
			<div style="text-align:center;margin-top:24px">
			<a href="%s/mon-espace" style="background:#1d4ed8;color:#fff;padding:12px 28px;border-radius:8px;text-decoration:none;font-weight:600;display:inline-block">Accéder à mon espace →</a>
			</div>
			<p style="color:#475569;margin-top:24px">Cordialement,<br><strong>L'équipe LumiNett</strong></p>`,
			q.ClientName, typeLabel, q.Reference, q.Total, validity, action, c.SiteURL)),
	}
}

// SignatureMessage returns the admin notification sent when a quote is signed.
func (c Composer) SignatureMessage(q *domain.Quote) ports.MailMessage {
	signedAt := ""
	if q.SignedAt != nil {
		signedAt = q.SignedAt.Format("02/01/2006 15:04")
	}

	return ports.MailMessage{
		To:      c.AdminEmail,
		Subject: fmt.Sprintf("Devis %s signé par %s", q.Reference, q.ClientName),
		HTML: wrap(fmt.Sprintf(
			`<h2 style="color:#059669;margin-top:0">Devis accepté et signé</h2>
			<p style="color:#475569">Le devis <strong>%s</strong> a été signé électroniquement par <strong>%s</strong> (%s).</p>
			<p style="color:#475569">Montant : <strong>%.2f €</strong></p>
			<p style="color:#64748b;font-size:13px">Signé le : %s</p>`,
			q.Reference, q.ClientName, q.ClientEmail, q.Total, signedAt)),
	}
}

func serviceLabel(service string) string {
	if label, ok := domain.ServiceLabels[service]; ok {
		return label
	}
	return service
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<tr><td style="padding:10px 14px;color:#64748b;font-weight:600;white-space:nowrap">%s</td><td style="padding:10px 14px">%s</td></tr>`, label, value)
}

// wrap applies the shared branded layout around a message body.
func wrap(content string) string {
	return fmt.Sprintf(
		`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;background:#f1f5f9">
		<div style="background:linear-gradient(135deg,#1d4ed8,#0ea5e9);padding:28px 24px;border-radius:12px 12px 0 0;text-align:center">
		<h1 style="margin:8px 0 4px;color:#fff;font-size:24px">LumiNett</h1>
		<p style="margin:0;color:#bfdbfe;font-size:14px">Service professionnel de nettoyage</p>
		</div>
		<div style="background:#fff;padding:28px 24px;border-radius:0 0 12px 12px;border:1px solid #e2e8f0">%s</div>
		</div>`, content)
}
