package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/pkg/storage/filestore"
)

var ErrUnknownModel = errors.New("unknown prediction model")

// The forecast blobs are produced by the offline modelling pipeline and
// served untouched.
var modelFiles = map[string]string{
	"arima":    filestore.ArimaPredictionsFile,
	"rf":       filestore.RFPredictionsFile,
	"ensemble": filestore.EnsemblePredictionsFile,
}

type PredictionService struct {
	Store *filestore.Store
}

func NewPredictionService(store *filestore.Store) *PredictionService {
	return &PredictionService{Store: store}
}

// Predictions returns the raw forecast document for one of the known models
// (arima, rf, ensemble).
func (s *PredictionService) Predictions(model string) (json.RawMessage, error) {
	file, ok := modelFiles[model]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	return s.Store.ReadJSON(file)
}

// Seasonality returns the raw seasonality analysis document.
func (s *PredictionService) Seasonality() (json.RawMessage, error) {
	return s.Store.ReadJSON(filestore.SeasonalityFile)
}

// Models lists the prediction models that can be requested.
func (s *PredictionService) Models() []string {
	return []string{"arima", "ensemble", "rf"}
}
