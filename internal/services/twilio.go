package services

import (
	"fmt"
	"log"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioService sends WhatsApp messages via the Twilio API. When credentials
// are not configured it degrades to logging the message instead of failing,
// so local development works without a Twilio account.
type TwilioService struct {
	client  *twilio.RestClient
	from    string // Format: "whatsapp:+14155238886"
	enabled bool
}

// NewTwilioService creates a new Twilio service from environment variables
func NewTwilioService() *TwilioService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_WHATSAPP_FROM")

	if accountSid == "" || authToken == "" || from == "" {
		log.Println("⚠️  Twilio credentials not found - WhatsApp messages will be logged only")
		return &TwilioService{enabled: false}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &TwilioService{
		client:  client,
		from:    from,
		enabled: true,
	}
}

// Enabled reports whether a real Twilio client is configured
func (t *TwilioService) Enabled() bool {
	return t.enabled
}

// SendWhatsAppMessage sends a WhatsApp message via Twilio
func (t *TwilioService) SendWhatsAppMessage(to string, message string) error {
	if !t.enabled {
		log.Printf("📱 [whatsapp disabled] to=%s message=%q", to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(fmt.Sprintf("whatsapp:+%s", to))
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Failed to send WhatsApp message to %s: %v", to, err)
		return err
	}

	log.Printf("✅ WhatsApp message sent! SID: %s", *resp.Sid)
	return nil
}
