package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/bookstore-service/bookstore/config"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/handler"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/metrics"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/model"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/server"
	cb "github.com/Astemirdum/bookstore-service/pkg/circuit_breaker"
	"github.com/Astemirdum/bookstore-service/pkg/kafka"
	"github.com/Astemirdum/bookstore-service/pkg/logger"
)

const (
	breakerWindow   = 10
	breakerTimeout  = 30 * time.Second
	breakerFailures = 0.5
	breakerRecovery = 3
)

func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "bookstore")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := OpenStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("storage init", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer storage.Close()

	svc, err := NewService(ctx, storage, log)
	if err != nil {
		log.Fatal("service init", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, func() model.Stats { return svc.Stats(context.Background()) })
	opts := []handler.Option{handler.WithMetrics(m)}

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		defer closeProducer(producer, log)
		breaker := cb.New(cb.Settings{
			Window:           breakerWindow,
			Timeout:          breakerTimeout,
			FailureRatio:     breakerFailures,
			RecoveryRequests: breakerRecovery,
			OnStateChange: func(from, to cb.Status) {
				log.Warn("event producer breaker", zap.Stringer("from", from), zap.Stringer("to", to))
			},
		})
		opts = append(opts, handler.WithEnqueuer(handler.NewEnqueuer(producer, breaker)))

		consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.BookstoreConsumerGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
		g.Go(func() error {
			return kafka.Consume(gCtx, consumer, handler.NewConsumer(svc.UpdateBookStatus, log), kafka.BookStatusTopic)
		})
	} else {
		log.Info("kafka disabled: KAFKA_ADDRS is empty")
	}

	h := handler.New(svc, log, opts...)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	g.Go(srv.Run)
	g.Go(func() error {
		<-gCtx.Done()
		log.Debug("Graceful shutdown")

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("bookstore stopped", zap.Error(err))
		return
	}
	log.Info("Graceful shutdown finished")
}

func closeProducer(producer sarama.SyncProducer, log *zap.Logger) {
	if err := producer.Close(); err != nil {
		log.Warn("producer.Close", zap.Error(err))
	}
}
