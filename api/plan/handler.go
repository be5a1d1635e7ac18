package plan

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gridops/powerplan/core/logger"
	coremetrics "github.com/gridops/powerplan/core/metrics"
	"github.com/gridops/powerplan/core/model"
	coreplan "github.com/gridops/powerplan/core/plan"
)

// maxBodyBytes caps the request payload size.
const maxBodyBytes = 1 << 20

// Publisher pushes computed plans to downstream consumers. Implemented by
// infra/mqtt.PlanPublisher.
type Publisher interface {
	PublishPlan(requestID string, loadMW float64, plan model.ProductionPlan) error
}

// Request is the production-plan payload. Field names follow the classic
// productionplan API, including the fuel aliases.
type Request struct {
	Load        float64      `json:"load"`
	Fuels       model.Fuels  `json:"fuels"`
	Powerplants []model.Unit `json:"powerplants"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves POST /productionplan.
type Handler struct {
	planner coreplan.Planner
	sink    coremetrics.PlanSink
	pub     Publisher
	log     logger.Logger
}

// NewHandler builds a Handler. sink may be nil to disable metrics and pub may
// be nil to disable plan publishing.
func NewHandler(planner coreplan.Planner, sink coremetrics.PlanSink, pub Publisher, log logger.Logger) *Handler {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Handler{planner: planner, sink: sink, pub: pub, log: log}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	requestID := uuid.NewString()

	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		h.log.Warnf("request %s: bad payload: %v", requestID, err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed payload: " + err.Error()})
		return
	}

	start := time.Now()
	result, err := h.planner.Compute(req.Powerplants, req.Fuels, req.Load)
	rec := coremetrics.PlanRecord{
		RequestID:  requestID,
		LoadMW:     req.Load,
		UnitsTotal: len(req.Powerplants),
		Duration:   time.Since(start),
		Time:       start.UTC(),
	}
	if err != nil {
		rec.Status = statusForError(err)
		h.record(rec)
		h.log.Warnf("request %s: %v", requestID, err)
		code := http.StatusBadRequest
		if rec.Status == coremetrics.StatusInvalid && !errors.Is(err, coreplan.ErrInvalidInput) {
			code = http.StatusInternalServerError
		}
		writeJSON(w, code, errorResponse{Error: err.Error()})
		return
	}

	rec.Status = coremetrics.StatusOK
	rec.TotalMW = result.Total()
	for _, e := range result {
		if e.Power > 0 {
			rec.UnitsActive++
		}
	}
	if cost, cerr := coreplan.TotalCost(result, req.Powerplants, req.Fuels); cerr == nil {
		rec.TotalCost = cost
	}
	h.record(rec)

	if h.pub != nil {
		if perr := h.pub.PublishPlan(requestID, req.Load, result); perr != nil {
			h.log.Errorf("request %s: publish plan: %v", requestID, perr)
		}
	}

	h.log.Debugw("plan computed", map[string]any{
		"request_id": requestID,
		"load_mw":    req.Load,
		"total_mw":   rec.TotalMW,
		"cost":       rec.TotalCost,
	})
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) record(rec coremetrics.PlanRecord) {
	if err := h.sink.RecordPlan(rec); err != nil {
		h.log.Errorf("request %s: record plan: %v", rec.RequestID, err)
	}
}

func statusForError(err error) string {
	switch {
	case errors.Is(err, coreplan.ErrUnderSupply):
		return coremetrics.StatusUnderSupply
	case errors.Is(err, coreplan.ErrPminLocked):
		return coremetrics.StatusPminLocked
	default:
		return coremetrics.StatusInvalid
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// NewInfoHandler returns the service description served on GET /.
func NewInfoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"service":  "powerplan",
			"endpoint": "POST /productionplan",
		})
	})
}
