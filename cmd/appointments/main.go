package main

import (
	"medreg/internal/appointments/handler"
	"medreg/internal/appointments/repository"
	"medreg/internal/appointments/service"
	"medreg/internal/appointments/validator"
	"medreg/pkg/app"
	"medreg/pkg/config"
	"medreg/pkg/kafka"
	kafka_config "medreg/pkg/kafka/config"
	kafkamw "medreg/pkg/kafka/middleware"
	"medreg/pkg/notify"
)

const ServiceName = "appointments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Appointments service")

	events := initEvents(cfg)
	if events != nil {
		defer events.Close()
	}

	appointmentService := initServices(cfg, events)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewAppointmentHandler(appointmentService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config, events *notify.Publisher) service.AppointmentService {
	appointmentValidator := validator.NewAppointmentValidator(cfg.Log)
	appointmentRepo := repository.NewMongoAppointmentRepository(cfg)
	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		appointmentValidator,
		events,
		cfg,
	)

	cfg.Log.Info("Appointment service initialized", "database", cfg.MongoDatabaseName)
	return appointmentService
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
