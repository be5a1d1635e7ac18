package plan

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/gridops/powerplan/core/metrics"
	"github.com/gridops/powerplan/core/model"
	coreplan "github.com/gridops/powerplan/core/plan"
	"github.com/gridops/powerplan/infra/logger"
)

const challengePayload = `{
  "load": 480,
  "fuels": {
    "gas(euro/MWh)": 13.4,
    "kerosine(euro/MWh)": 50.8,
    "co2(euro/ton)": 20,
    "wind(%)": 60
  },
  "powerplants": [
    {"name": "gasfiredbig1", "type": "gasfired", "efficiency": 0.53, "pmin": 100, "pmax": 460},
    {"name": "tj1", "type": "turbojet", "efficiency": 0.3, "pmin": 0, "pmax": 16},
    {"name": "windpark1", "type": "windturbine", "efficiency": 1, "pmin": 0, "pmax": 150}
  ]
}`

type capturingSink struct {
	records []coremetrics.PlanRecord
}

func (s *capturingSink) RecordPlan(rec coremetrics.PlanRecord) error {
	s.records = append(s.records, rec)
	return nil
}

type capturingPublisher struct {
	ids   []string
	plans []model.ProductionPlan
}

func (p *capturingPublisher) PublishPlan(id string, load float64, plan model.ProductionPlan) error {
	p.ids = append(p.ids, id)
	p.plans = append(p.plans, plan)
	return nil
}

func newTestHandler(sink coremetrics.PlanSink, pub Publisher) *Handler {
	return NewHandler(coreplan.New(), sink, pub, logger.NopLogger{})
}

func TestHandler_ComputesPlan(t *testing.T) {
	sink := &capturingSink{}
	pub := &capturingPublisher{}
	h := newTestHandler(sink, pub)

	req := httptest.NewRequest(http.MethodPost, "/productionplan", bytes.NewBufferString(challengePayload))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var plan model.ProductionPlan
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &plan))
	require.Len(t, plan, 3)
	assert.Equal(t, "gasfiredbig1", plan[0].Name)
	assert.InDelta(t, 480, plan.Total(), coreplan.Tolerance)
	assert.InDelta(t, 90, plan[2].Power, 1e-9) // windpark1 at 60% of 150

	require.Len(t, sink.records, 1)
	assert.Equal(t, coremetrics.StatusOK, sink.records[0].Status)
	assert.Equal(t, 3, sink.records[0].UnitsTotal)
	assert.NotEmpty(t, sink.records[0].RequestID)

	require.Len(t, pub.plans, 1)
	assert.Equal(t, sink.records[0].RequestID, pub.ids[0])
}

func TestHandler_UnderSupply(t *testing.T) {
	sink := &capturingSink{}
	h := newTestHandler(sink, nil)

	payload := `{"load": 5000, "fuels": {"gas(euro/MWh)": 13.4, "kerosine(euro/MWh)": 50.8, "co2(euro/ton)": 20, "wind(%)": 60},
		"powerplants": [{"name": "g1", "type": "gasfired", "efficiency": 0.5, "pmin": 0, "pmax": 100}]}`
	req := httptest.NewRequest(http.MethodPost, "/productionplan", bytes.NewBufferString(payload))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "capacity")
	require.Len(t, sink.records, 1)
	assert.Equal(t, coremetrics.StatusUnderSupply, sink.records[0].Status)
}

func TestHandler_InvalidUnit(t *testing.T) {
	h := newTestHandler(nil, nil)

	payload := `{"load": 10, "fuels": {"gas(euro/MWh)": 13.4, "kerosine(euro/MWh)": 50.8, "co2(euro/ton)": 20, "wind(%)": 60},
		"powerplants": [{"name": "g1", "type": "gasfired", "efficiency": 0, "pmin": 0, "pmax": 100}]}`
	req := httptest.NewRequest(http.MethodPost, "/productionplan", bytes.NewBufferString(payload))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "efficiency")
}

func TestHandler_MalformedPayload(t *testing.T) {
	h := newTestHandler(nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/productionplan", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_UnknownUnitKind(t *testing.T) {
	h := newTestHandler(nil, nil)
	payload := `{"load": 10, "fuels": {"gas(euro/MWh)": 1, "kerosine(euro/MWh)": 1, "co2(euro/ton)": 1, "wind(%)": 0},
		"powerplants": [{"name": "x", "type": "fusion", "efficiency": 0.5, "pmin": 0, "pmax": 100}]}`
	req := httptest.NewRequest(http.MethodPost, "/productionplan", bytes.NewBufferString(payload))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "fusion")
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/productionplan", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestInfoHandler(t *testing.T) {
	h := NewInfoHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "productionplan")
}
