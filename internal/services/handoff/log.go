package handoff

import (
	"context"

	"github.com/KirkDiggler/contested/internal/models"
	"github.com/sirupsen/logrus"
)

type logPublisher struct {
	logger logrus.FieldLogger
}

// NewLog creates a publisher that only records resolutions in the log,
// for hosts without a damage pipeline
func NewLog(logger logrus.FieldLogger) *logPublisher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &logPublisher{logger: logger}
}

// Publish logs the resolution
func (p *logPublisher) Publish(ctx context.Context, resolution *models.Resolution) error {
	if resolution == nil {
		return nil
	}

	fields := logrus.Fields{
		"contest_id": resolution.ContestID,
		"mode":       resolution.Mode,
		"winner":     resolution.Winner,
		"reason":     resolution.Outcome.Reason,
		"degree":     resolution.WinnerDegree,
	}
	if resolution.HitLocation != nil {
		fields["hit_location"] = *resolution.HitLocation
	}
	if resolution.AttackerDamageFormula != "" {
		fields["damage_formula"] = resolution.AttackerDamageFormula
	}

	p.logger.WithFields(fields).Info("contest resolved")
	return nil
}
