package pipeline

import (
	"go.uber.org/zap"

	"github.com/lexflow/aljr2lex/internal/extract"
)

// zapObserver adapts the extraction core's progress callbacks onto the
// run's structured logger. Field-level events are debug noise in normal
// runs.
type zapObserver struct {
	log *zap.Logger
}

// NewObserver wraps a logger as an extraction observer.
func NewObserver(log *zap.Logger) extract.Observer {
	return zapObserver{log: log}
}

func (o zapObserver) DocumentStart(language extract.Language, textLen int) {
	o.log.Debug("extract.document.start",
		zap.String("language", string(language)),
		zap.Int("text_len", textLen),
	)
}

func (o zapObserver) FieldResolved(key extract.FieldKey, rawMatches int) {
	o.log.Debug("extract.field.resolved",
		zap.String("field", string(key)),
		zap.Int("raw_matches", rawMatches),
	)
}
