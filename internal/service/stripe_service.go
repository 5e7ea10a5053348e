package service

import (
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// StripeService creates checkout links for a booking's estimated price.
// Payment is optional: bookings stand on their own whether or not the user
// follows the link.
type StripeService struct{}

func NewStripeService(secretKey string) *StripeService {
	if secretKey == "" {
		return nil
	}
	stripe.Key = secretKey
	return &StripeService{}
}

func (s *StripeService) CreateCheckoutLink(amount float64, currency, description, bookingID string) (string, error) {
	unitAmount := int64(math.Round(amount * 100))
	if unitAmount <= 0 {
		return "", fmt.Errorf("amount must be positive, got %f", amount)
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
					UnitAmount: stripe.Int64(unitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(bookingID),
		SuccessURL:        stripe.String("smartparking://booking/" + bookingID + "?payment=success"),
		CancelURL:         stripe.String("smartparking://booking/" + bookingID + "?payment=cancelled"),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}
