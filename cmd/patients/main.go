package main

import (
	"medreg/internal/patients/handler"
	"medreg/internal/patients/repository"
	"medreg/internal/patients/service"
	"medreg/internal/patients/validator"
	"medreg/pkg/app"
	"medreg/pkg/config"
	"medreg/pkg/kafka"
	kafka_config "medreg/pkg/kafka/config"
	kafkamw "medreg/pkg/kafka/middleware"
	"medreg/pkg/notify"
)

const ServiceName = "patients"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Patients service")

	events := initEvents(cfg)
	if events != nil {
		defer events.Close()
	}

	patientService := initServices(cfg, events)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewPatientHandler(patientService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config, events *notify.Publisher) service.PatientService {
	patientValidator := validator.NewPatientValidator(cfg.Log)
	patientRepo := repository.NewMongoPatientRepository(cfg)
	patientService := service.NewPatientService(
		patientRepo,
		patientValidator,
		events,
		cfg,
	)

	cfg.Log.Info("Patient service initialized", "database", cfg.MongoDatabaseName)
	return patientService
}

func initEvents(cfg *config.Config) *notify.Publisher {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Event publishing disabled")
		return nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic, cfg.EventsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafkamw.ProducerLogging(cfg.Log))

	return notify.NewPublisher(producer, ServiceName, cfg.Log)
}
