package service_test

import (
	"errors"
	"testing"

	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/service"
)

func TestParseMeasureKindAliases(t *testing.T) {
	t.Parallel()
	cases := map[string]model.MeasureKind{
		"g":      model.MeasureMass,
		"Grams":  model.MeasureMass,
		" ml ":   model.MeasureVolume,
		"unit":   model.MeasurePiece,
		"pcs":    model.MeasurePiece,
		"piece":  model.MeasurePiece,
		"volume": model.MeasureVolume,
	}
	for raw, want := range cases {
		got, err := service.ParseMeasureKind(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %s, got %s", raw, want, got)
		}
	}
	if _, err := service.ParseMeasureKind("cup"); !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected invalid input for cup, got %v", err)
	}
}
