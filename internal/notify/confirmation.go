// Package notify tells trip owners about their new trip. Composition is pure
// (ComposeConfirmation); delivery goes through a Notifier that either sends
// inline or queues the message for the worker.
package notify

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/url"

	"github.com/google/uuid"

	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/locale"
	"github.com/pkordes/planner/internal/mail"
)

// ProductName is shown in the heading and sign-off of every email.
const ProductName = "Plann.er"

// Options are the process-wide settings for confirmation emails.
type Options struct {
	From    mail.Address
	BaseURL string // public address of the API, e.g. http://localhost:3333
	Locale  locale.Locale
}

//go:embed confirmation.html
var confirmationHTML string

var confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationHTML))

// copyText holds the translated sentences of the confirmation email.
// Verbs take the destination, date, owner name or product name as noted.
type copyText struct {
	subject    string // destination, start date
	greeting   string // owner name
	scheduled  string // destination
	start      string
	end        string
	callToAct  string
	button     string
	thanks     string // product name
	disclaimer string
}

var texts = map[string]copyText{
	"pt-BR": {
		subject:    "Confirme sua viagem para %s em %s",
		greeting:   "Faaaala %s, tudo bem?",
		scheduled:  "Você acabou de agendar uma viagem com destino a %s",
		start:      "Início",
		end:        "Término",
		callToAct:  "Para confirmar sua viagem, clique no botão abaixo",
		button:     "Confirmar viagem",
		thanks:     "Obrigado por escolher o %s 💗",
		disclaimer: "Caso você não tenha agendado uma viagem, apenas ignore esse e-mail",
	},
	"en-US": {
		subject:    "Confirm your trip to %s on %s",
		greeting:   "Hi %s, how are you?",
		scheduled:  "You just scheduled a trip to %s",
		start:      "Start",
		end:        "End",
		callToAct:  "To confirm your trip, click the button below",
		button:     "Confirm trip",
		thanks:     "Thanks for choosing %s 💗",
		disclaimer: "If you did not schedule a trip, just ignore this email",
	},
	"es-ES": {
		subject:    "Confirma tu viaje a %s el %s",
		greeting:   "¡Hola %s! ¿Qué tal?",
		scheduled:  "Acabas de programar un viaje con destino a %s",
		start:      "Inicio",
		end:        "Fin",
		callToAct:  "Para confirmar tu viaje, haz clic en el botón de abajo",
		button:     "Confirmar viaje",
		thanks:     "Gracias por elegir %s 💗",
		disclaimer: "Si no programaste ningún viaje, simplemente ignora este correo",
	},
}

type confirmationView struct {
	Product    string
	Greeting   string
	Scheduled  string
	StartLabel string
	StartsAt   string
	EndLabel   string
	EndsAt     string
	CallToAct  string
	Link       string
	Button     string
	Thanks     string
	Disclaimer string
}

// ConfirmationLink returns the URL the owner follows to confirm tripID.
func ConfirmationLink(baseURL string, tripID uuid.UUID) (string, error) {
	link, err := url.JoinPath(baseURL, "trips", tripID.String(), "confirm")
	if err != nil {
		return "", fmt.Errorf("notify.ConfirmationLink: %w", err)
	}
	return link, nil
}

// ComposeConfirmation renders the email asking owner to confirm trip.
func ComposeConfirmation(trip domain.Trip, owner domain.Participant, opts Options) (mail.Message, error) {
	link, err := ConfirmationLink(opts.BaseURL, trip.ID)
	if err != nil {
		return mail.Message{}, err
	}

	loc := opts.Locale
	txt, ok := texts[loc.String()]
	if !ok {
		loc = locale.Default()
		txt = texts[loc.String()]
	}

	var ownerName string
	if owner.Name != nil {
		ownerName = *owner.Name
	}
	startsAt := loc.FormatLongDate(trip.StartsAt)
	endsAt := loc.FormatLongDate(trip.EndsAt)

	var body bytes.Buffer
	err = confirmationTmpl.Execute(&body, confirmationView{
		Product:    ProductName,
		Greeting:   fmt.Sprintf(txt.greeting, ownerName),
		Scheduled:  fmt.Sprintf(txt.scheduled, trip.Destination),
		StartLabel: txt.start,
		StartsAt:   startsAt,
		EndLabel:   txt.end,
		EndsAt:     endsAt,
		CallToAct:  txt.callToAct,
		Link:       link,
		Button:     txt.button,
		Thanks:     fmt.Sprintf(txt.thanks, ProductName),
		Disclaimer: txt.disclaimer,
	})
	if err != nil {
		return mail.Message{}, fmt.Errorf("notify.ComposeConfirmation: %w", err)
	}

	return mail.Message{
		From:    opts.From,
		To:      mail.Address{Name: ownerName, Address: owner.Email},
		Subject: fmt.Sprintf(txt.subject, trip.Destination, startsAt),
		HTML:    body.String(),
	}, nil
}
