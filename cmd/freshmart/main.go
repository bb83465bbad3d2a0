package main

import (
	"context"
	"fmt"

	"github.com/freshmart/backend/internal/adapter/auth"
	"github.com/freshmart/backend/internal/adapter/config"
	"github.com/freshmart/backend/internal/adapter/events"
	"github.com/freshmart/backend/internal/adapter/gateway"
	"github.com/freshmart/backend/internal/adapter/handler/http"
	"github.com/freshmart/backend/internal/adapter/logger"
	"github.com/freshmart/backend/internal/adapter/storage"
	"github.com/freshmart/backend/internal/adapter/storage/repository"
	"github.com/freshmart/backend/internal/core/port"
	"github.com/freshmart/backend/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	paymentGateway, err := gateway.NewSimulatedGateway(conf.Gateway, log.Named("Gateway"))
	if err != nil {
		log.Error("payment gateway creating error", zap.Error(err))
		return
	}

	var publisher port.EventPublisher
	if conf.AMQP.URL != "" {
		rabbit, err := events.NewRabbitPublisher(conf.AMQP, log.Named("Events"))
		if err != nil {
			log.Error("event publisher creating error", zap.Error(err))
			return
		}
		defer rabbit.Close()
		publisher = rabbit
	}

	notificationSvc, err := service.NewNotificationService(repo, conf.Notify.Buffer, log.Named("Notifications"))
	if err != nil {
		log.Error("notification service creating error", zap.Error(err))
		return
	}
	paymentSvc, err := service.NewPaymentService(repo, paymentGateway, notificationSvc, log.Named("Payments"))
	if err != nil {
		log.Error("payment service creating error", zap.Error(err))
		return
	}
	orderSvc, err := service.NewOrderService(repo, notificationSvc, publisher, log.Named("Orders"))
	if err != nil {
		log.Error("order service creating error", zap.Error(err))
		return
	}
	checkoutSvc, err := service.NewCheckoutService(repo, paymentSvc, notificationSvc, publisher, log.Named("Checkout"))
	if err != nil {
		log.Error("checkout service creating error", zap.Error(err))
		return
	}
	userSvc, err := service.NewUserService(repo, tokenService, log.Named("Users"))
	if err != nil {
		log.Error("user service creating error", zap.Error(err))
		return
	}

	userHandler, err := http.NewUserHandler(userSvc, log.Named("User handler"))
	if err != nil {
		log.Error("user handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(orderSvc, checkoutSvc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	paymentHandler, err := http.NewPaymentHandler(paymentSvc, log.Named("Payment handler"))
	if err != nil {
		log.Error("payment handler creating error", zap.Error(err))
		return
	}
	notificationHandler, err := http.NewNotificationHandler(notificationSvc, log.Named("Notification handler"))
	if err != nil {
		log.Error("notification handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService,
		userHandler, orderHandler, paymentHandler, notificationHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
