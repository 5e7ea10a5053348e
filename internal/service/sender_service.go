package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"smartparking/internal/config"
	"smartparking/internal/db"
	"smartparking/internal/entities"
)

// SenderService delivers booking confirmations over email and SMS. Both
// channels are best-effort: missing configuration or provider errors are
// logged and otherwise ignored.
type SenderService struct {
	cfg *config.Config
}

func NewSenderService(cfg *config.Config) *SenderService {
	return &SenderService{cfg: cfg}
}

// SendBookingConfirmation notifies the user on whichever channels their
// profile supports.
func (s *SenderService) SendBookingConfirmation(profile *db.Profile, booking entities.BookingResponse) {
	if profile == nil {
		return
	}

	subject := fmt.Sprintf("Your parking booking is %s", booking.Status)
	body := bookingMessageBody(profile, booking)

	if profile.Email != "" && !strings.HasSuffix(profile.Email, "@app.local") {
		if err := s.sendEmail(profile.Email, profile.FullName.String, subject, body); err != nil {
			log.Printf("Booking %s: email notification failed: %v", booking.ID, err)
		}
	}
	if profile.Phone.Valid && profile.Phone.String != "" {
		if err := s.sendSMS(profile.Phone.String, body); err != nil {
			log.Printf("Booking %s: SMS notification failed: %v", booking.ID, err)
		}
	}
}

func bookingMessageBody(profile *db.Profile, booking entities.BookingResponse) string {
	name := profile.FullName.String
	if name == "" {
		name = "there"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYour parking booking is %s.\n\n", name, booking.Status)
	if booking.ParkingName != "" {
		fmt.Fprintf(&b, "Location: %s\n", booking.ParkingName)
	}
	if booking.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", booking.Address)
	}
	fmt.Fprintf(&b, "Check-in: %s\nCheck-out: %s\n",
		booking.CheckInTime.Format("02 Jan 2006 15:04 MST"),
		booking.CheckOutTime.Format("02 Jan 2006 15:04 MST"))
	if booking.VehicleNumber != "" {
		fmt.Fprintf(&b, "Vehicle: %s\n", booking.VehicleNumber)
	}
	if booking.EstimatedPrice != nil {
		fmt.Fprintf(&b, "Estimated price: $%.2f\n", *booking.EstimatedPrice)
	}
	b.WriteString("\nThanks for using Smart Parking.")
	return b.String()
}

func (s *SenderService) sendEmail(toEmail, toName, subject, plainTextContent string) error {
	if s.cfg.SendgridAPIKey == "" || s.cfg.SendgridFromEmail == "" {
		return fmt.Errorf("SendGrid is not configured")
	}

	from := mail.NewEmail(s.cfg.SendgridFromName, s.cfg.SendgridFromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, "")

	client := sendgrid.NewSendClient(s.cfg.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("SendGrid send failed: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	log.Printf("Booking confirmation email sent to %s", toEmail)
	return nil
}

func (s *SenderService) sendSMS(toNumber, messageBody string) error {
	if s.cfg.TwilioAccountSID == "" || s.cfg.TwilioAuthToken == "" || s.cfg.TwilioFromNumber == "" {
		return fmt.Errorf("Twilio is not configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("Destination number %q is not E.164, SMS may fail", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   s.cfg.TwilioAccountSID,
		Password:   s.cfg.TwilioAuthToken,
		AccountSid: s.cfg.TwilioAccountSID,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.cfg.TwilioFromNumber)
	params.SetBody(messageBody)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("Twilio send failed: %w", err)
	}
	log.Printf("Booking confirmation SMS sent to %s", toNumber)
	return nil
}
