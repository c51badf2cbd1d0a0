package cache

import (
	"delivery-itinerary-service/internal/domain"
	"encoding/json"
	"fmt"
)

type matricesPayload struct {
	Distance [][]float64 `json:"distance"`
	Time     [][]float64 `json:"time"`
}

func encodeMatrices(m domain.Matrices) ([]byte, error) {
	b, err := json.Marshal(matricesPayload{Distance: m.Distance.Rows(), Time: m.Time.Rows()})
	if err != nil {
		return nil, fmt.Errorf("encode matrices: %w", err)
	}
	return b, nil
}

func decodeMatrices(b []byte) (domain.Matrices, error) {
	var p matricesPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return domain.Matrices{}, fmt.Errorf("decode matrices: %w", err)
	}

	d, err := domain.MatrixFromRows(p.Distance)
	if err != nil {
		return domain.Matrices{}, fmt.Errorf("decode matrices: distance: %w", err)
	}
	t, err := domain.MatrixFromRows(p.Time)
	if err != nil {
		return domain.Matrices{}, fmt.Errorf("decode matrices: time: %w", err)
	}

	return domain.Matrices{Distance: d, Time: t}, nil
}
