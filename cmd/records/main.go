package main

import (
	"medreg/internal/records/handler"
	"medreg/internal/records/repository"
	"medreg/internal/records/service"
	"medreg/internal/records/validator"
	"medreg/pkg/app"
	"medreg/pkg/config"
)

const ServiceName = "records"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Records service")

	recordService := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewRecordHandler(recordService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.RecordService {
	recordValidator := validator.NewRecordValidator(cfg.Log)
	treatmentRepo := repository.NewMongoTreatmentRepository(cfg)
	investigationRepo := repository.NewMongoInvestigationRepository(cfg)
	recordService := service.NewRecordService(
		treatmentRepo,
		investigationRepo,
		recordValidator,
		cfg,
	)

	cfg.Log.Info("Record service initialized", "database", cfg.MongoDatabaseName)
	return recordService
}
