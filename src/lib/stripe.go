package lib

import (
	"context"
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// CreateBookingPaymentLink creates a one-off payment link for a booking total.
// The booking id rides along as metadata so the webhook can resolve it.
func CreateBookingPaymentLink(bookingID uint, description string, amount float64, currency string) (string, error) {
	sc := GetStripeClient()
	price, err := sc.V1Prices.Create(context.Background(), &stripe.PriceCreateParams{
		Currency:    stripe.String(currency),
		UnitAmount:  stripe.Int64(int64(amount * 100)),
		ProductData: &stripe.PriceCreateProductDataParams{Name: stripe.String(description)},
	})
	if err != nil {
		return "", err
	}
	params := stripe.PaymentLinkCreateParams{
		LineItems: []*stripe.PaymentLinkCreateLineItemParams{
			{
				Price:    stripe.String(price.ID),
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"booking_id": fmt.Sprintf("%d", bookingID),
		},
	}
	paymentLink, err := sc.V1PaymentLinks.Create(context.Background(), &params)
	if err != nil {
		return "", err
	}
	return paymentLink.URL, nil
}
