package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medreg/internal/notifier"
	"medreg/pkg/config"
	"medreg/pkg/kafka"
	kafka_config "medreg/pkg/kafka/config"
	kafkamw "medreg/pkg/kafka/middleware"
)

const ServiceName = "notifier"

const (
	EnvGroupID    = "NOTIFIER_GROUP_ID"
	EnvWebhookURL = "NOTIFIER_WEBHOOK_URL"

	DefaultGroupID        = "medreg-notifier"
	DefaultWebhookTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Notifier service")

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	sinks := []notifier.Sink{notifier.NewLogSink(cfg.Log)}
	if url := os.Getenv(EnvWebhookURL); url != "" {
		sinks = append(sinks, notifier.NewWebhookSink(url, DefaultWebhookTimeout))
		cfg.Log.Info("Webhook sink enabled", "url", url)
	}

	dispatcher := notifier.NewDispatcher(cfg.Log, sinks...)

	groupID := os.Getenv(EnvGroupID)
	if groupID == "" {
		groupID = DefaultGroupID
	}

	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.EventsTopic, groupID, cfg.EventsDLQTopic, dispatcher.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafkamw.ConsumerLogging(cfg.Log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Consuming events",
		"topic", cfg.EventsTopic,
		"group_id", groupID,
		"dlq_topic", cfg.EventsDLQTopic)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped gracefully")
}
