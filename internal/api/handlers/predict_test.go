package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pondmetrics/capcast/internal/frame"
	"github.com/pondmetrics/capcast/internal/predict"
	"github.com/pondmetrics/capcast/pkg/logger"
)

type stubPredictor struct {
	out      *frame.Dataset
	err      error
	gotModel string
	gotCols  []string
}

func (s *stubPredictor) Predict(input *frame.Dataset, modelName string) (*frame.Dataset, error) {
	s.gotModel = modelName
	s.gotCols = input.Columns()
	if s.err != nil {
		return nil, s.err
	}
	return s.out, nil
}

func predictionResult(capHit, capPct float64) *frame.Dataset {
	d := frame.New("predicted_cap_hit", "predicted_cap_pct")
	d.Append(frame.Row{"predicted_cap_hit": capHit, "predicted_cap_pct": capPct})
	return d
}

func doPredict(t *testing.T, p ContractPredictor, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewPredictHandler(p, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/ml/predict", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Predict(rec, req)
	return rec
}

func TestPredictSuccess(t *testing.T) {
	stub := &stubPredictor{out: predictionResult(5_000_000, 0.05)}
	rec := doPredict(t, stub, `{"position":"forward","icetime":60000,"i_f_goals":50}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "forward_model", stub.gotModel)
	assert.ElementsMatch(t, []string{"icetime", "i_f_goals"}, stub.gotCols)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5_000_000.0, resp["predicted_cap_hit"])
	assert.Equal(t, 0.05, resp["predicted_cap_pct"])
	assert.Equal(t, "forward_model", resp["model_name"])
}

func TestPredictModelSelection(t *testing.T) {
	cases := map[string]string{
		"forward":    "forward_model",
		"Defenseman": "defenseman_model",
		"goalie":     "goalie_model",
		"centre":     "forward_model",
	}
	for position, want := range cases {
		stub := &stubPredictor{out: predictionResult(1, 0.01)}
		rec := doPredict(t, stub, `{"position":"`+position+`","icetime":60000}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, stub.gotModel, position)
	}
}

func TestPredictMissingPosition(t *testing.T) {
	rec := doPredict(t, &stubPredictor{}, `{"icetime":60000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictNonNumericStat(t *testing.T) {
	rec := doPredict(t, &stubPredictor{}, `{"position":"forward","team":"EDM"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictInvalidJSON(t *testing.T) {
	rec := doPredict(t, &stubPredictor{}, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictModelNotFound(t *testing.T) {
	stub := &stubPredictor{err: predict.ErrModelNotFound}
	rec := doPredict(t, stub, `{"position":"goalie","icetime":60000}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Model not found")
}

func TestPredictFeatureMismatch(t *testing.T) {
	stub := &stubPredictor{err: &predict.FeatureMismatchError{
		Model:   "forward_model",
		Missing: []string{"goals_per_60"},
	}}
	rec := doPredict(t, stub, `{"position":"forward","icetime":60000}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "goals_per_60")
}

func TestPredictFilteredInputRejected(t *testing.T) {
	// Transform dropped the row (below the ice-time threshold).
	stub := &stubPredictor{out: frame.New("predicted_cap_hit")}
	rec := doPredict(t, stub, `{"position":"forward","icetime":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
