package translate

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/eventpy/eventpy/internal/translate"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
