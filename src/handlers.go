package main

import (
	"booktrack/src/models"
	"booktrack/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// currentUser rebuilds the identity the auth middleware resolved.
func currentUser(ctx *gin.Context) *models.User {
	return &models.User{
		ID:    ctx.GetString("id"),
		Name:  ctx.GetString("name"),
		Email: ctx.GetString("email"),
		Role:  types.Role(ctx.GetString("role")),
	}
}

func abortWithError(ctx *gin.Context, err error) {
	status := types.ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("Could not complete request: %s\n", err.Error())
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

type idRequestParams struct {
	ID string `uri:"id" binding:"required"`
}
