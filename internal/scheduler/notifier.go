package scheduler

import (
	"context"

	"github.com/example/sozluk/pkg/models"
	"github.com/sirupsen/logrus"
)

// LogNotifier writes the daily word to the log. It stands in when no
// messaging channel is configured.
type LogNotifier struct{}

func (LogNotifier) SendDailyWord(_ context.Context, w models.Word) error {
	logrus.WithFields(logrus.Fields{
		"id":      w.ID,
		"word":    w.Word,
		"book":    w.Book,
		"meaning": w.Meaning,
	}).Info("Word of the day")
	return nil
}
