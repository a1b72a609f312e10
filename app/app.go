package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookhive/borrow-service/config"
	"github.com/bookhive/borrow-service/internal/handler"
	"github.com/bookhive/borrow-service/internal/repository"
	"github.com/bookhive/borrow-service/internal/server"
	"github.com/bookhive/borrow-service/internal/service"
	"github.com/bookhive/borrow-service/migrations"
	"github.com/bookhive/borrow-service/pkg/kafka"
	"github.com/bookhive/borrow-service/pkg/logger"
	"github.com/bookhive/borrow-service/pkg/mailer"
	"github.com/bookhive/borrow-service/pkg/postgres"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "borrow")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, cfg.Database.LockTimeout, log)
	if err != nil {
		return fmt.Errorf("repo %v", err)
	}

	var queue service.Enqueuer
	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		// events are best effort; the borrow flow works without them
		log.Warn("kafka producer unavailable", zap.Error(err))
	} else {
		queue = service.NewEnqueuer(producer)
	}

	svc := service.NewService(repo,
		service.NewBcryptHasher(),
		mailer.New(cfg.Mail, log),
		queue,
		cfg.Service,
		log,
	)
	h := handler.New(svc, cfg.Auth, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("producer.Close", zap.Error(err))
		}
	}
	db.Close()
	log.Info("Graceful shutdown finished")
	return nil
}
