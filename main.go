package main

import (
	"log"
	"time"

	"checkout-service/config"
	"checkout-service/controllers"
	"checkout-service/ledger"
	"checkout-service/logger"
	"checkout-service/routes"
	"checkout-service/sender"
	"checkout-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// processedEventTTL bounds the dedup ledger; Stripe stops redelivering an
// event well before this.
const processedEventTTL = 72 * time.Hour

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("[CheckoutService] Failed to load config: ", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("[CheckoutService] Failed to initialize logger: ", err)
	}
	defer zlog.Sync()

	// Stripe client is configured once at startup and reused across requests.
	stripeSvc := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	emailSender := sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	notifier := services.NewNotificationService(emailSender, cfg.NotifyEmail, zlog)
	eventLedger := ledger.NewMemoryLedger(processedEventTTL)

	checkoutSvc := services.NewCheckoutService(stripeSvc, cfg.PriceID, cfg.BaseURL, zlog)
	orderSvc := services.NewOrderService(stripeSvc, notifier, eventLedger, zlog)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(zlog))

	cc := controllers.NewCheckoutController(checkoutSvc, zlog)
	oc := controllers.NewOrderController(orderSvc, zlog)
	routes.RegisterRoutes(r, cc, oc)

	zlog.Info("Checkout service running", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("Server failed", zap.Error(err))
	}
}
