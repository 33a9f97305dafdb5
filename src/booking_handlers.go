package main

import (
	"booktrack/src/common"
	"booktrack/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup, bookings *common.Bookings) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := bookings.Create(currentUser(ctx), &body)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, booking)
		}).
		GET("/bookings/user/my-bookings", func(ctx *gin.Context) {
			list, err := bookings.ListForCustomer(currentUser(ctx))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, list)
		}).
		GET("/bookings/provider/requests", func(ctx *gin.Context) {
			list, err := bookings.ListForProvider(currentUser(ctx))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, list)
		}).
		PUT("/bookings/:id/status", func(ctx *gin.Context) {
			var params idRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateBookingStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := bookings.UpdateStatus(currentUser(ctx), params.ID, body.Status)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, booking)
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params idRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			booking, err := bookings.Get(currentUser(ctx), params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, booking)
		})
	return g
}
