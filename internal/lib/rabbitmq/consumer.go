package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/adaso/internal/lib/sl"
)

// ErrPermanent помечает ошибку обработки, после которой повторная доставка бессмысленна.
// Такое сообщение отклоняется без возврата в очередь.
var ErrPermanent = errors.New("permanent message failure")

// RequeueDelay: пауза перед возвратом сообщения в очередь после временной ошибки.
var RequeueDelay = 2 * time.Second

// ConsumerMessage запускает потребителя очереди queueName.
//
// Каждое сообщение обрабатывается в отдельной горутине, одновременно не более prefetchCount.
// Успешно обработанные сообщения подтверждаются. Ошибка, обернутая в ErrPermanent,
// отклоняет сообщение без повторной доставки, любая другая возвращает его в очередь
// через RequeueDelay.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, log *slog.Logger, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log = log.With(slog.String("op", op), slog.String("queue", queueName))
	sem := make(chan struct{}, prefetchCount)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					settle(ctx, d, handler(d.Body), log)
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func settle(ctx context.Context, d amqp.Delivery, err error, log *slog.Logger) {
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error("failed to ack message", sl.Err(ackErr))
		}
	case errors.Is(err, ErrPermanent):
		log.Error("dropping message", sl.Err(err))
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error("failed to reject message", sl.Err(nackErr))
		}
	default:
		log.Warn("failed to handle message, requeueing", sl.Err(err), slog.Bool("redelivered", d.Redelivered))
		timer := time.NewTimer(RequeueDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
	}
}
