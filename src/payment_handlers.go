package main

import (
	"booktrack/src/common"
	"net/http"

	"github.com/gin-gonic/gin"
)

func paymentHandlers(g *gin.RouterGroup, rec *common.Reconciler) *gin.RouterGroup {
	g.
		POST("/payments/create-checkout", func(ctx *gin.Context) {
			bookingID := ctx.Query("booking_id")
			originURL := ctx.Query("origin_url")
			if bookingID == "" || originURL == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "booking_id and origin_url are required"})
				return
			}
			result, err := rec.InitiateCheckout(ctx.Request.Context(), currentUser(ctx), bookingID, originURL)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, result)
		}).
		GET("/payments/checkout-status/:id", func(ctx *gin.Context) {
			var params idRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			status, err := rec.PollStatus(ctx.Request.Context(), currentUser(ctx), params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, status)
		})
	return g
}
