package main

import (
	"booktrack/src/common"
	"booktrack/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func reviewPublicHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.GET("/reviews/service/:id", func(ctx *gin.Context) {
		var params idRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.Status(http.StatusBadRequest)
			return
		}
		reviews, err := common.ServiceReviews(params.ID)
		if err != nil {
			abortWithError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, reviews)
	})
	return g
}

func reviewHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.POST("/reviews", func(ctx *gin.Context) {
		var body types.CreateReviewRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		review, err := common.CreateReview(currentUser(ctx), &body)
		if err != nil {
			abortWithError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, review)
	})
	return g
}
