package handler

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/bookstore/internal/errs"
	"github.com/Astemirdum/bookstore-service/bookstore/internal/model"
)

type updateBookStatus func(ctx context.Context, payload model.UpdateBookStatusPayload) (model.Book, error)

// Consumer applies status changes published by other services.
type Consumer struct {
	updateBookStatusHandler updateBookStatus
	validate                *validator.Validate
	log                     *zap.Logger
	ready                   chan bool
}

func NewConsumer(updateBookStatus updateBookStatus, log *zap.Logger) *Consumer {
	return &Consumer{
		updateBookStatusHandler: updateBookStatus,
		validate:                validator.New(),
		log:                     log.Named("consumer"),
		ready:                   make(chan bool),
	}
}

// Ready is closed once the first session is set up.
func (consumer *Consumer) Ready() <-chan bool { return consumer.ready }

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	select {
	case <-consumer.ready:
	default:
		close(consumer.ready)
	}
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var req model.UpdateBookStatusPayload
			if err := jsoniter.Unmarshal(message.Value, &req); err != nil {
				consumer.log.Error("unmarshal", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}
			if err := consumer.validate.Struct(req); err != nil {
				consumer.log.Error("validate", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if _, err := consumer.updateBookStatusHandler(session.Context(), req); err != nil {
				var msg *errs.Message
				if !errors.As(err, &msg) {
					// nothing at or after a storage fault may be marked
					consumer.log.Error("consumer.updateBookStatusHandler", zap.Int64("offset", message.Offset), zap.Error(err))
					return errors.Wrapf(err, "book %d status at offset %d", req.ID, message.Offset)
				}
				consumer.log.Warn("book status rejected", zap.Uint64("id", req.ID), zap.Error(err))
			}

			consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
