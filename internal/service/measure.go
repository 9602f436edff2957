package service

import (
	"fmt"
	"strings"

	"github.com/macroprep/macroprep-cli/internal/model"
)

var measureAliases = map[string]model.MeasureKind{
	"mass":   model.MeasureMass,
	"g":      model.MeasureMass,
	"gram":   model.MeasureMass,
	"grams":  model.MeasureMass,
	"volume": model.MeasureVolume,
	"ml":     model.MeasureVolume,
	"piece":  model.MeasurePiece,
	"pieces": model.MeasurePiece,
	"pc":     model.MeasurePiece,
	"pcs":    model.MeasurePiece,
	"unit":   model.MeasurePiece,
}

func ParseMeasureKind(raw string) (model.MeasureKind, error) {
	kind, ok := measureAliases[strings.TrimSpace(strings.ToLower(raw))]
	if !ok {
		return "", fmt.Errorf("%w: unsupported measure %q (use g, ml, or piece)", ErrInvalidInput, raw)
	}
	return kind, nil
}

// MeasureUnit is the display suffix for a quantity of the given kind.
func MeasureUnit(kind model.MeasureKind) string {
	switch kind {
	case model.MeasureVolume:
		return "ml"
	case model.MeasurePiece:
		return "pc"
	default:
		return "g"
	}
}
