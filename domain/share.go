package domain

import (
	"fmt"
	"net/url"
)

// Share channels for manual invitation sending.
const (
	ShareWhatsApp = "whatsapp"
	ShareEmail    = "email"
)

// ShareMessage is one queued share-link dispatch.
type ShareMessage struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body"`
	Link      string `json:"link"`
}

// ShareLinks holds the pre-built manual share URLs for an invitation.
type ShareLinks struct {
	URL      string `json:"url"`
	WhatsApp string `json:"whatsapp"`
	Mailto   string `json:"mailto"`
}

// BuildShareLinks renders the public RSVP URL for the invitation code
// plus WhatsApp and mailto deep links carrying it.
func BuildShareLinks(baseURL string, ev Event, code string) ShareLinks {
	link := fmt.Sprintf("%s/rsvp/%s", baseURL, code)
	text := fmt.Sprintf("You're invited to %s! RSVP here: %s", ev.Name, link)
	subject := fmt.Sprintf("Invitation: %s", ev.Name)
	return ShareLinks{
		URL:      link,
		WhatsApp: "https://wa.me/?text=" + url.QueryEscape(text),
		Mailto:   "mailto:?subject=" + url.QueryEscape(subject) + "&body=" + url.QueryEscape(text),
	}
}
