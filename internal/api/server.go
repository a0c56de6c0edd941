package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/medtrack/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	mx               *chi.Mux
	medicinesService service.MedicinesServiceI
	doseService      service.DoseServiceI
	wellnessService  service.WellnessServiceI
	jwtService       JWTServiceI
}

type ServicesList struct {
	MedicinesService service.MedicinesServiceI
	DoseService      service.DoseServiceI
	WellnessService  service.WellnessServiceI
	JwtService       JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:               chi.NewMux(),
		medicinesService: servicesOptions.MedicinesService,
		doseService:      servicesOptions.DoseService,
		wellnessService:  servicesOptions.WellnessService,
		jwtService:       servicesOptions.JwtService,
	}
}

func (s *Server) Handler() http.Handler {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware, MetricsMiddleware)
	s.mx.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	s.mx.Handle("/metrics", promhttp.Handler())
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Post("/medicines", s.CreateMedicine)
			r.Get("/medicines", s.GetMedicines)
			r.Get("/medicines/{id}", s.GetMedicine)
			r.Put("/medicines/{id}", s.UpdateMedicine)
			r.Delete("/medicines/{id}", s.DeleteMedicine)
			r.Post("/medicines/backfill-timezones", s.BackfillTimezones)
			r.Get("/doses/by-date", s.GetDosesByDate)
			r.Post("/doses/update", s.UpdateDoseStatus)
			r.Get("/doses/summary", s.GetDoseSummary)
			r.Get("/doses/history", s.GetDoseHistory)
			r.Post("/wellness/update", s.UpdateWellness)
			r.Get("/wellness/today", s.GetWellnessToday)
			r.Get("/wellness/history", s.GetWellnessHistory)
		})
	})
	return s.mx
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}
