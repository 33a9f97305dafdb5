package main

import (
	"booktrack/src/config"
	"booktrack/src/db"
	"booktrack/src/models"
	"booktrack/src/types"
	"booktrack/src/utils"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func authHandlers(g *gin.RouterGroup, cfg *config.Config) *gin.RouterGroup {
	g.
		POST("/auth/register", func(ctx *gin.Context) {
			var body types.RegisterRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var count int64
			if err := db.
				Model(&models.User{}).
				Where(&models.User{Email: body.Email}).
				Count(&count).
				Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			if count > 0 {
				abortWithError(ctx, fmt.Errorf("email already registered: %w", types.ErrConflict))
				return
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			user := models.NewUser(body.Email, body.Name, body.Role, body.Phone, string(hashed))
			if err := db.Create(user).Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			token, err := utils.GenerateJWT(cfg.JWTSecret, user, cfg.TokenTTL)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"token": token, "user": user})
		}).
		POST("/auth/login", func(ctx *gin.Context) {
			var body types.LoginRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var user models.User
			if err := db.
				Where(&models.User{Email: body.Email}).
				First(&user).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					abortWithError(ctx, fmt.Errorf("invalid credentials: %w", types.ErrUnauthorized))
					return
				}
				abortWithError(ctx, err)
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
				abortWithError(ctx, fmt.Errorf("invalid credentials: %w", types.ErrUnauthorized))
				return
			}
			if user.Blocked {
				abortWithError(ctx, fmt.Errorf("account blocked: %w", types.ErrForbidden))
				return
			}
			token, err := utils.GenerateJWT(cfg.JWTSecret, &user, cfg.TokenTTL)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			log.Printf("User %s logged in\n", user.ID)
			ctx.JSON(http.StatusOK, gin.H{"token": token, "user": user})
		})
	return g
}

func meHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.GET("/auth/me", func(ctx *gin.Context) {
		db := db.GetDb()
		var user models.User
		if err := db.
			Where(&models.User{ID: ctx.GetString("id")}).
			First(&user).
			Error; err != nil {
			abortWithError(ctx, fmt.Errorf("user: %w", types.ErrNotFound))
			return
		}
		ctx.JSON(http.StatusOK, user)
	})
	return g
}
