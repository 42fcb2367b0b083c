package handler

import (
	"strconv"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/Astemirdum/bookstore-service/bookstore/internal/model"
	cb "github.com/Astemirdum/bookstore-service/pkg/circuit_breaker"
)

const eventIDHeader = "event-id"

type Enqueuer interface {
	Enqueue(topic string, ev model.BookEvent) error
}

// NewEnqueuer sends every event through breaker; an open breaker fails the
// send with circuit_breaker.ErrOpenCB without touching the producer.
func NewEnqueuer(producer sarama.SyncProducer, breaker cb.CircuitBreaker) Enqueuer {
	return &enqueuerImpl{
		producer: producer,
		breaker:  breaker,
	}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
	breaker  cb.CircuitBreaker
}

func (q *enqueuerImpl) Enqueue(topic string, ev model.BookEvent) error {
	data, err := jsoniter.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(ev.EntityID, 10)),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte(eventIDHeader), Value: []byte(uuid.NewString())},
		},
	}
	return q.breaker.Call(func() error {
		_, _, err := q.producer.SendMessage(msg)
		return err
	})
}

type nopEnqueuer struct{}

func (nopEnqueuer) Enqueue(string, model.BookEvent) error { return nil }
