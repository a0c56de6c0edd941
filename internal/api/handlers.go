package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/medtrack/internal/error_values"
	"github.com/limbo/medtrack/internal/service"
	"github.com/limbo/medtrack/pkg/entity"
	"github.com/limbo/medtrack/pkg/httputil"
	"github.com/limbo/medtrack/pkg/schedule"
)

type MedicineRequest struct {
	Name      string   `json:"name"`
	Dosage    string   `json:"dosage"`
	Frequency string   `json:"frequency"`
	Times     []string `json:"times"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date,omitempty"`
	Timezone  string   `json:"timezone,omitempty"`
}

type BackfillTimezonesRequest struct {
	Timezone string `json:"timezone,omitempty"`
	Recreate bool   `json:"recreate,omitempty"`
}

type GetMedicinesResponse struct {
	UserID    string             `json:"uid"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
	Medicines []*entity.Medicine `json:"medicines"`
}

// handleServiceError maps service errors onto the response taxonomy:
// 400 validation, 403 early-take, 404 unknown resource, 409 decided
// dose, 500 everything else. The 403 message is part of the client
// contract and must keep the "Too early to mark" wording.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrValidation),
		errors.Is(err, errorvalues.ErrInvalidTimezone),
		errors.Is(err, errorvalues.ErrInvalidTimeOfDay),
		errors.Is(err, errorvalues.ErrInvalidStatus):
		logger.Error(action+" error: invalid input", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, errorvalues.ErrTooEarly):
		logger.Error(action + " error: early-take guard rejected")
		httputil.WriteErrorResponse(w, http.StatusForbidden, "Too early to mark this dose as taken", nil)
	case errors.Is(err, errorvalues.ErrMedicineNotFound),
		errors.Is(err, errorvalues.ErrDoseNotFound),
		errors.Is(err, errorvalues.ErrWrongOwner):
		logger.Error(action + " error: resource not found")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "medicine or dose doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrDoseAlreadyDecided):
		logger.Error(action + " error: dose already decided")
		httputil.WriteErrorResponse(w, http.StatusConflict, "dose already has a final status", nil)
	default:
		logger.Error(action+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func zoneFromRequest(r *http.Request) (schedule.Zone, error) {
	name := r.URL.Query().Get("tz")
	if name == "" {
		return schedule.Zone{Location: time.UTC}, nil
	}
	return schedule.ResolveZone(name)
}

func medicineRequestToService(req *MedicineRequest) (*service.CreateMedicineRequest, error) {
	zone, err := schedule.ResolveZone(req.Timezone)
	if err != nil {
		return nil, err
	}
	start, err := schedule.ParseDate(req.StartDate, zone)
	if err != nil {
		return nil, errorvalues.ErrValidation
	}
	out := &service.CreateMedicineRequest{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Times:     req.Times,
		StartDate: start,
		Timezone:  req.Timezone,
	}
	if req.EndDate != "" {
		end, err := schedule.ParseDate(req.EndDate, zone)
		if err != nil {
			return nil, errorvalues.ErrValidation
		}
		out.EndDate = &end
	}
	return out, nil
}

func (s *Server) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create medicine error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req MedicineRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create medicine error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	servReq, err := medicineRequestToService(&req)
	if err != nil {
		logger.Error("create medicine error: invalid dates or timezone")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid dates or timezone", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	med, err := s.medicinesService.CreateMedicine(ctx, uid, servReq)
	if err != nil {
		handleServiceError(w, logger, "create medicine", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, med)
	logger.Info("medicine created", slog.String("medicine_id", med.ID.String()))
}

func (s *Server) GetMedicines(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get medicines error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	meds, err := s.medicinesService.GetUserMedicines(ctx, uid, service.PaginationOpts{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleServiceError(w, logger, "get medicines", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetMedicinesResponse{
		UserID:    uid.String(),
		Page:      page,
		Limit:     limit,
		Medicines: meds,
	})
	logger.Info("medicines provided")
}

func (s *Server) GetMedicine(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get medicine error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get medicine error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid medicine id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	med, err := s.medicinesService.GetMedicine(ctx, id, uid)
	if err != nil {
		handleServiceError(w, logger, "get medicine", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, med)
}

func (s *Server) UpdateMedicine(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update medicine error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update medicine error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid medicine id in path value", nil)
		return
	}
	var req MedicineRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update medicine error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	servReq, err := medicineRequestToService(&req)
	if err != nil {
		logger.Error("update medicine error: invalid dates or timezone")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid dates or timezone", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	med, err := s.medicinesService.UpdateMedicine(ctx, id, uid, &service.UpdateMedicineRequest{
		Name:      servReq.Name,
		Dosage:    servReq.Dosage,
		Frequency: servReq.Frequency,
		Times:     servReq.Times,
		StartDate: servReq.StartDate,
		EndDate:   servReq.EndDate,
		Timezone:  servReq.Timezone,
	})
	if err != nil {
		handleServiceError(w, logger, "update medicine", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, med)
	logger.Info("medicine updated", slog.String("medicine_id", med.ID.String()))
}

func (s *Server) DeleteMedicine(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("medicine deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("medicine deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid medicine id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.medicinesService.DeleteMedicine(ctx, id, uid)
	if err != nil {
		handleServiceError(w, logger, "medicine deletion", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("medicine deleted")
}

func (s *Server) BackfillTimezones(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("backfill error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req BackfillTimezonesRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("backfill error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	result, err := s.medicinesService.BackfillTimezones(ctx, uid, req.Timezone, req.Recreate)
	if err != nil {
		handleServiceError(w, logger, "backfill", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, result)
	logger.Info("timezones backfilled", slog.Int("updated", result.Updated))
}
