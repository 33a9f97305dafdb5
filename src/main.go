package main

import (
	"booktrack/src/boot"
	"booktrack/src/common"
	"booktrack/src/config"
	"booktrack/src/db"
	"booktrack/src/lib"
	"booktrack/src/middlewares"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
)

var bookingDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

var bookingTimeValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookingdate", bookingDateValidatorFunc)
		v.RegisterValidation("bookingtime", bookingTimeValidatorFunc)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "Stripe-Signature"},
	}))
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "BookTrack API"})
	})
	return router
}

func apiGroup(g *gin.Engine) *gin.RouterGroup {
	return g.Group("/api")
}

// buildRouter wires every route against the constructed components. Tests
// call it with fake collaborators.
func buildRouter(cfg *config.Config, bookings *common.Bookings, rec *common.Reconciler) *gin.Engine {
	registerValidators()
	router := setupRouter()
	api := apiGroup(router)

	authHandlers(api, cfg)
	servicePublicHandlers(api)
	reviewPublicHandlers(api)
	stripeWebhookRoute(api, cfg, rec)

	authed := api.Group("")
	authed.Use(middlewares.Auth(cfg.JWTSecret))
	meHandlers(authed)
	serviceProviderHandlers(authed)
	bookingHandlers(authed, bookings)
	reviewHandlers(authed)
	paymentHandlers(authed, rec)
	adminHandlers(authed)

	return router
}

func main() {
	cfg := config.Load()

	db.Connect(cfg.DatabaseDSN)
	boot.InitDb()

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache = lib.ConnectRedis(cfg.RedisURL)
	}
	gateway := lib.NewStripeGateway(cfg.StripeSecretKey)
	notifier := lib.NewPusherBroadcaster(cfg.PusherAppID, cfg.PusherKey, cfg.PusherSecret, cfg.PusherCluster)
	mailer := lib.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)

	bookings := common.NewBookings(notifier)
	rec := common.NewReconciler(gateway, cache, mailer, cfg.Currency)

	router := buildRouter(cfg, bookings, rec)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %s\n", err.Error())
	}
}
