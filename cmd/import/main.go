package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"medreg/internal/importer"
	"medreg/internal/patients/repository"
	"medreg/pkg/config"
	"medreg/pkg/kafka"
	kafka_config "medreg/pkg/kafka/config"
	kafkamw "medreg/pkg/kafka/middleware"
	"medreg/pkg/model"
	"medreg/pkg/notify"
)

const JobName = "workbook-import"

func main() {
	var (
		file   = flag.String("file", "", "path to the Excel workbook to import")
		dryRun = flag.Bool("dry-run", false, "validate the workbook without writing anything")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: import -file <workbook.xlsx> [-dry-run]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting workbook import", "file", *file, "dry_run", *dryRun)

	store := repository.NewMongoPatientRepository(cfg)
	im := importer.New(store, cfg.Log)

	run := im.Run
	if *dryRun {
		run = im.Validate
	}
	result := run(ctx, *file)

	fmt.Printf("Total:    %d\n", result.Total)
	fmt.Printf("Imported: %d\n", result.Imported)
	fmt.Printf("Skipped:  %d\n", result.Skipped)
	fmt.Printf("Errors:   %d\n", result.Errors)
	for _, msg := range result.Messages {
		fmt.Printf("  - %s\n", msg)
	}

	if !*dryRun {
		publishOutcome(ctx, cfg, *file, result)
	}

	if result.Errors > 0 {
		os.Exit(1)
	}
}

func publishOutcome(ctx context.Context, cfg *config.Config, file string, result model.ImportOutcome) {
	if !cfg.EventsEnabled {
		return
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Error("Invalid Kafka configuration, skipping import event", "error", err)
		return
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic, cfg.EventsDLQTopic)
	if err != nil {
		cfg.Log.Error("Failed to create Kafka producer, skipping import event", "error", err)
		return
	}
	producer.Use(kafkamw.ProducerLogging(cfg.Log))

	events := notify.NewPublisher(producer, JobName, cfg.Log)
	defer events.Close()

	events.Publish(ctx, notify.EventImportCompleted, file, result)
}
