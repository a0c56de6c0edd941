package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/limbo/medtrack/internal/service"
	"github.com/limbo/medtrack/pkg/entity"
	"github.com/limbo/medtrack/pkg/httputil"
)

type UpdateWellnessRequest struct {
	Metrics  entity.WellnessMetrics `json:"metrics"`
	Notes    string                 `json:"notes,omitempty"`
	Timezone string                 `json:"timezone,omitempty"`
}

func (s *Server) UpdateWellness(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("wellness update error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req UpdateWellnessRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("wellness update error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	score, err := s.wellnessService.UpdateWellness(ctx, uid, &service.UpdateWellnessRequest{
		Metrics:  req.Metrics,
		Notes:    req.Notes,
		Timezone: req.Timezone,
	})
	if err != nil {
		handleServiceError(w, logger, "wellness update", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, score)
	logger.Info("wellness score upserted")
}

func (s *Server) GetWellnessToday(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("wellness today error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	zone, err := zoneFromRequest(r)
	if err != nil {
		logger.Error("wellness today error: invalid tz")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid tz query param", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	score, err := s.wellnessService.GetToday(ctx, uid, zone)
	if err != nil {
		handleServiceError(w, logger, "wellness today", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, score)
}

func (s *Server) GetWellnessHistory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("wellness history error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		days = 7
	}
	zone, err := zoneFromRequest(r)
	if err != nil {
		logger.Error("wellness history error: invalid tz")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid tz query param", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	scores, err := s.wellnessService.GetHistory(ctx, uid, days, zone)
	if err != nil {
		handleServiceError(w, logger, "wellness history", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"days":   len(scores),
		"scores": scores,
	})
}
