package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pondmetrics/capcast/internal/domain"
	"github.com/pondmetrics/capcast/internal/frame"
	"github.com/pondmetrics/capcast/internal/predict"
	"github.com/pondmetrics/capcast/pkg/logger"
)

// ContractPredictor scores a raw stat line against a named model;
// *predict.Predictor satisfies it.
type ContractPredictor interface {
	Predict(input *frame.Dataset, modelName string) (*frame.Dataset, error)
}

// PredictHandler handles contract value predictions
type PredictHandler struct {
	predictor ContractPredictor
	logger    *logger.Logger
}

// NewPredictHandler creates a new prediction handler
func NewPredictHandler(predictor ContractPredictor, log *logger.Logger) *PredictHandler {
	return &PredictHandler{predictor: predictor, logger: log}
}

type predictResponse struct {
	PredictedCapHit float64 `json:"predicted_cap_hit"`
	PredictedCapPct float64 `json:"predicted_cap_pct"`
	ModelName       string  `json:"model_name"`
}

// Predict predicts a contract cap hit from a stat line
// POST /api/ml/predict
//
// The body is a flat JSON object: a "position" string plus the raw
// season stat columns as numbers. The position picks the model.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	position, _ := body["position"].(string)
	if position == "" {
		respondError(w, http.StatusBadRequest, "position is required")
		return
	}
	modelName := domain.ModelNameForPosition(position)

	row := make(frame.Row)
	var cols []string
	for key, value := range body {
		if key == "position" {
			continue
		}
		num, ok := value.(float64)
		if !ok {
			respondError(w, http.StatusBadRequest, "stat "+key+" must be a number")
			return
		}
		row[key] = num
		cols = append(cols, key)
	}
	input := frame.New(cols...)
	input.Append(row)

	result, err := h.predictor.Predict(input, modelName)
	if err != nil {
		h.respondPredictError(w, modelName, err)
		return
	}
	if result.Len() == 0 {
		respondError(w, http.StatusBadRequest, "stat line below minimum ice time")
		return
	}

	respondJSON(w, http.StatusOK, predictResponse{
		PredictedCapHit: result.Value(0, "predicted_cap_hit"),
		PredictedCapPct: result.Value(0, "predicted_cap_pct"),
		ModelName:       modelName,
	})
}

func (h *PredictHandler) respondPredictError(w http.ResponseWriter, modelName string, err error) {
	var mismatch *predict.FeatureMismatchError
	switch {
	case errors.Is(err, predict.ErrModelNotFound):
		h.logger.WithError(err).WithField("model", modelName).Error("Model not found")
		respondError(w, http.StatusInternalServerError, "Model not found: "+err.Error())
	case errors.As(err, &mismatch):
		respondError(w, http.StatusBadRequest, "Invalid input: "+err.Error())
	default:
		h.logger.WithError(err).WithField("model", modelName).Error("Prediction failed")
		respondError(w, http.StatusInternalServerError, "Prediction error")
	}
}
