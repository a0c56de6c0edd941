package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/limbo/medtrack/internal/service"
	"github.com/limbo/medtrack/pkg/httputil"
)

// UpdateDoseStatusRequest uses the wire names the dashboard sends.
// Either doseId or the (medicineId, scheduledTime) pair identifies the
// dose; scheduledTime is RFC3339.
type UpdateDoseStatusRequest struct {
	DoseID        string `json:"doseId,omitempty"`
	MedicineID    string `json:"medicineId,omitempty"`
	ScheduledTime string `json:"scheduledTime,omitempty"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
}

func (s *Server) UpdateDoseStatus(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("dose update error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req UpdateDoseStatusRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("dose update error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	servReq := &service.UpdateDoseRequest{
		Status: req.Status,
		Notes:  req.Notes,
	}
	if req.DoseID != "" {
		doseID, err := uuid.Parse(req.DoseID)
		if err != nil {
			logger.Error("dose update error: invalid doseId")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid doseId", nil)
			return
		}
		servReq.DoseID = &doseID
	} else {
		medicineID, err := uuid.Parse(req.MedicineID)
		if err != nil {
			logger.Error("dose update error: invalid medicineId")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid medicineId", nil)
			return
		}
		scheduled, err := time.Parse(time.RFC3339, req.ScheduledTime)
		if err != nil {
			logger.Error("dose update error: invalid scheduledTime")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid scheduledTime, expected RFC3339", nil)
			return
		}
		servReq.MedicineID = &medicineID
		servReq.ScheduledTime = &scheduled
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	doseLog, err := s.doseService.UpdateStatus(ctx, uid, servReq)
	if err != nil {
		handleServiceError(w, logger, "dose update", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, doseLog)
	logger.Info("dose status updated",
		slog.String("dose_id", doseLog.ID.String()),
		slog.String("status", string(doseLog.Status)))
}

func (s *Server) GetDosesByDate(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get doses error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		logger.Error("get doses error: missing date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "date query param is required", nil)
		return
	}
	zone, err := zoneFromRequest(r)
	if err != nil {
		logger.Error("get doses error: invalid tz")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid tz query param", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	logs, err := s.doseService.GetDosesByDate(ctx, uid, date, zone)
	if err != nil {
		handleServiceError(w, logger, "get doses", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"date":  date,
		"doses": logs,
	})
	logger.Info("doses provided", slog.Int("count", len(logs)))
}

func (s *Server) GetDoseSummary(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("dose summary error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		logger.Error("dose summary error: missing date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "date query param is required", nil)
		return
	}
	zone, err := zoneFromRequest(r)
	if err != nil {
		logger.Error("dose summary error: invalid tz")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid tz query param", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	summary, err := s.doseService.GetSummary(ctx, uid, date, zone)
	if err != nil {
		handleServiceError(w, logger, "dose summary", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"date":    date,
		"summary": summary,
	})
}

func (s *Server) GetDoseHistory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("dose history error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		days = 7
	}
	zone, err := zoneFromRequest(r)
	if err != nil {
		logger.Error("dose history error: invalid tz")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid tz query param", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	history, err := s.doseService.GetHistory(ctx, uid, days, zone)
	if err != nil {
		handleServiceError(w, logger, "dose history", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"days":    len(history),
		"history": history,
	})
}
