package main

import (
	"booktrack/src/common"
	"booktrack/src/config"
	"booktrack/src/types"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// stripeWebhookRoute receives processor events. The endpoint acknowledges
// everything it cannot act on (irrelevant event types, sessions it has no
// transaction for) so the processor does not retry-storm; duplicate
// deliveries of the same completed session are no-ops past the first.
func stripeWebhookRoute(g *gin.RouterGroup, cfg *config.Config, rec *common.Reconciler) *gin.RouterGroup {
	g.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		if cfg.StripeWebhookSecret == "" {
			// No secret configured: accept and drop. Operational escape
			// hatch, not a posture to run with in production.
			ctx.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), cfg.StripeWebhookSecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			abortWithError(ctx, fmt.Errorf("webhook verification failed: %w", types.ErrUpstream))
			return
		}
		log.Printf("[StripeEvent] %s\n", event.Type)
		if event.Type != "checkout.session.completed" {
			ctx.JSON(http.StatusOK, gin.H{"status": "success"})
			return
		}

		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil || cs.ID == "" {
			log.Printf("[Stripe] Error parsing CheckoutSession: %v\n", err)
			abortWithError(ctx, fmt.Errorf("malformed event payload: %w", types.ErrUpstream))
			return
		}
		if _, err := rec.MarkSessionPaid(ctx.Request.Context(), cs.ID); err != nil {
			abortWithError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "success"})
	})
	return g
}
