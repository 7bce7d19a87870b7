package mailer

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type ConfirmationData struct {
	CustomerName string
	ShopName     string
	ServiceTitle string
	Date         string
	Time         string
	Location     string
	Price        string
	PaymentLabel string
	CancelURL    string
}

type CancellationData struct {
	CustomerName string
	ShopName     string
	ServiceTitle string
	Date         string
	Time         string
	BookAgainURL string
}

type SlotAvailableData struct {
	ShopName   string
	Date       string
	BookingURL string
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func Confirmation(to string, d ConfirmationData) (Message, error) {
	html, err := render("confirmation.html", d)
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Agendamento confirmado - " + d.ShopName, HTML: html}, nil
}

func Cancellation(to string, d CancellationData) (Message, error) {
	html, err := render("cancellation.html", d)
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Agendamento cancelado - " + d.ShopName, HTML: html}, nil
}

func SlotAvailable(to string, d SlotAvailableData) (Message, error) {
	html, err := render("slot_available.html", d)
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Horário disponível - " + d.ShopName, HTML: html}, nil
}
