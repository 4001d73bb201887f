package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/spoonful/spoonful-backend/pkg/config"
	"github.com/spoonful/spoonful-backend/pkg/database"
	"github.com/spoonful/spoonful-backend/pkg/events"
	"github.com/spoonful/spoonful-backend/pkg/handlers"
	"github.com/spoonful/spoonful-backend/pkg/payment"
	"github.com/spoonful/spoonful-backend/pkg/pricing"
	"github.com/spoonful/spoonful-backend/pkg/repository"
	"github.com/spoonful/spoonful-backend/pkg/service"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	db, err := database.Connect(ctx, cfg.MongoURI, cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close(ctx, db)

	counters := repository.NewCounterRepository(db)
	users := repository.NewUserRepository(db)
	products := repository.NewProductRepository(db, counters)
	coupons := repository.NewCouponRepository(db)
	orders := repository.NewOrderRepository(db)
	carts := repository.NewCartRepository(db)
	addresses := repository.NewAddressRepository(db)
	contacts := repository.NewContactRepository(db)
	cashback := repository.NewCashbackRepository(db)

	publisher := events.NewPublisher(cfg.KafkaBrokers)
	defer publisher.Close()

	engine := pricing.NewEngine(products, coupons)
	gateway := payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	rewards := service.NewRewardService(coupons, users, cashback)
	orderSvc := service.NewOrderService(orders, engine, gateway, rewards, carts, publisher,
		pricing.Options{CODFee: cfg.CODFee, CODFeeAfterDiscount: cfg.CODFeeAfterDiscount},
		cfg.RazorpayKeySecret)

	router := gin.Default()
	handlers.Register(router, handlers.Handlers{
		Orders:    handlers.NewOrderHandler(orderSvc),
		Rewards:   handlers.NewRewardHandler(rewards),
		Products:  handlers.NewProductHandler(products),
		Carts:     handlers.NewCartHandler(carts),
		Addresses: handlers.NewAddressHandler(addresses),
		Contacts:  handlers.NewContactHandler(contacts),
	}, cfg.JWTSecret)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logrus.Infof("Starting service on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start service: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Service forced to shutdown: %v", err)
	}

	logrus.Info("Service exited")
}
