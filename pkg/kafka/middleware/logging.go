package middleware

import (
	"context"
	"time"

	"medreg/pkg/kafka"
	"medreg/pkg/logger"
)

// ConsumerLogging logs every consumed message with handling duration
func ConsumerLogging(log *logger.Logger) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()

		err := next(ctx, msg)

		duration := time.Since(start)
		if err != nil {
			log.Error("Message handling failed",
				"topic", msg.Topic,
				"key", msg.Key,
				"offset", msg.Offset,
				"event_type", msg.Headers[kafka.HeaderEventType],
				"duration_ms", duration.Milliseconds(),
				"error", err,
			)
			return err
		}

		log.Info("Message handled",
			"topic", msg.Topic,
			"key", msg.Key,
			"offset", msg.Offset,
			"event_type", msg.Headers[kafka.HeaderEventType],
			"duration_ms", duration.Milliseconds(),
		)
		return nil
	}
}

// ProducerLogging logs every published message
func ProducerLogging(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		duration := time.Since(start)
		if err != nil {
			log.Error("Message publish failed",
				"key", msg.Key,
				"event_type", msg.Headers[kafka.HeaderEventType],
				"duration_ms", duration.Milliseconds(),
				"error", err,
			)
			return err
		}

		log.Debug("Message published",
			"key", msg.Key,
			"event_type", msg.Headers[kafka.HeaderEventType],
			"duration_ms", duration.Milliseconds(),
		)
		return nil
	}
}
