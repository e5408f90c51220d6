package accounting

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fin-tools/finsight/pkg/adapters"
	"github.com/fin-tools/finsight/pkg/models/api"
	"github.com/fin-tools/finsight/pkg/models/domain"
)

// LoadDatasetFile reads a monthly-report envelope from disk. Used by the
// terminal runtime to work offline on an exported payload.
func LoadDatasetFile(path string) (domain.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var envelope api.Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to decode dataset file: %w", err)
	}
	return adapters.MapEnvelopeToDomainDataset(envelope), nil
}

// FileProvider adapts a dataset file to the dashboard provider contract.
type FileProvider struct {
	dataset domain.Dataset
}

func NewFileProvider(path string) (*FileProvider, error) {
	ds, err := LoadDatasetFile(path)
	if err != nil {
		return nil, err
	}
	return &FileProvider{dataset: ds}, nil
}

func (p *FileProvider) GetDataset(_ context.Context, _ string) (domain.Dataset, error) {
	return p.dataset, nil
}
