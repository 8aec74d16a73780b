package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"hbs/src/lib"
	"hbs/src/types"
	"hbs/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// paymentHandlers exposes the payment axis of a booking. Paying has no effect
// on the lifecycle status: a Paid booking still needs admin confirmation.
func paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings/:id/pay", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			c, cancel := requestContext(ctx)
			defer cancel()
			booking, err := utils.GetBooking(c, params.ID, userId, role)
			if err != nil {
				ctx.JSON(utils.HTTPStatus(err), gin.H{"success": false, "message": utils.ErrorMessage(err)})
				return
			}
			if booking.Status.Terminal() {
				ctx.JSON(http.StatusConflict, gin.H{"success": false, "message": "Booking is no longer payable"})
				return
			}
			if booking.PaymentStatus == types.PAYMENT_PAID {
				ctx.JSON(http.StatusConflict, gin.H{"success": false, "message": "Booking is already paid"})
				return
			}
			description := "Booking"
			if booking.Room != nil {
				description = booking.Room.Name
			}
			url, err := lib.CreateBookingPaymentLink(booking.ID, description, booking.TotalPrice, "usd")
			if err != nil {
				log.Printf("Error creating payment link for Booking [%d]: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "url": url})
		})
	return g
}

// stripeWebhookRoute consumes checkout completion events and flips the
// booking's payment status. Payloads must carry a valid Stripe-Signature;
// verified but unexpected events are acknowledged with 200 so Stripe does not
// retry forever.
func stripeWebhookRoute(g *gin.Engine) {
	g.POST("/api/v1/payments/webhook", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.Status(http.StatusBadRequest)
			return
		}
		log.Printf("[StripeEvent] %s\n", event.Type)

		var status types.PaymentStatus
		var ref string
		var md map[string]string
		switch event.Type {
		case "checkout.session.completed", "checkout.session.expired":
			var cs stripe.CheckoutSession
			if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
				log.Printf("[Stripe] Error parsing CheckoutSession: %s\n", err.Error())
				ctx.Status(http.StatusOK)
				return
			}
			ref = cs.ID
			md = cs.Metadata
			status = types.PAYMENT_PAID
			if event.Type == "checkout.session.expired" {
				status = types.PAYMENT_FAILED
			}
		case "payment_intent.payment_failed":
			var pi stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
				log.Printf("[Stripe] Error parsing PaymentIntent: %s\n", err.Error())
				ctx.Status(http.StatusOK)
				return
			}
			ref = pi.ID
			md = pi.Metadata
			status = types.PAYMENT_FAILED
		default:
			ctx.Status(http.StatusOK)
			return
		}

		atoi, err := strconv.Atoi(md["booking_id"])
		if err != nil {
			log.Printf("[webhook] missing booking_id metadata in %s event\n", event.Type)
			ctx.Status(http.StatusOK)
			return
		}
		c, cancel := requestContext(ctx)
		defer cancel()
		if err := utils.MarkBookingPayment(c, uint(atoi), status, &ref); err != nil {
			log.Printf("[webhook] error updating payment for Booking [%d]: %s\n", atoi, err.Error())
			ctx.Status(http.StatusOK)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"received": true})
	})
}
