// @title Medtrack API
// @description Medicine reminder, dose scheduling and adherence tracking service
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"
	"time"

	"github.com/limbo/medtrack/internal/api"
	"github.com/limbo/medtrack/internal/repository"
	"github.com/limbo/medtrack/internal/service"
	"github.com/limbo/medtrack/internal/sweeper"
	"github.com/limbo/medtrack/pkg/cleanup"
	"github.com/limbo/medtrack/pkg/config"
	jwtservice "github.com/limbo/medtrack/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	medsRepo := repository.NewMedicinesRepo(&dbCfg)
	doseRepo := repository.NewDoseLogsRepo(&dbCfg)
	wellRepo := repository.NewWellnessRepo(&dbCfg)

	wellnessService := service.NewWellnessService(wellRepo, doseRepo)
	medicinesService := service.NewMedicinesService(medsRepo, doseRepo)
	doseService := service.NewDoseService(doseRepo, medsRepo, wellnessService)

	sweep := sweeper.New(doseRepo, time.Hour)
	if err := sweep.Start(cfg.GetStringDefault("SWEEP_SCHEDULE", "@every 5m")); err != nil {
		log.Fatal("starting staleness sweeper error: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "stopping staleness sweeper",
		F: func() error {
			sweep.Stop()
			return nil
		},
	})
	defer cleanup.CleanUp()

	serv := api.New(&api.ServicesList{
		MedicinesService: medicinesService,
		DoseService:      doseService,
		WellnessService:  wellnessService,
		JwtService:       jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetStringDefault("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
