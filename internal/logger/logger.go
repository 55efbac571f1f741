package logger

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type ctxKey string

// RequestIDKey is the context key under which the request id is stored.
const RequestIDKey ctxKey = "requestId"

// New builds a logger for the given level and format ("text" or "json").
// Unknown levels fall back to info.
func New(level, format string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	if out != nil {
		log.SetOutput(out)
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}
	return log
}

// For returns an entry tagged with the request id found in ctx, if any.
func For(ctx context.Context, log *logrus.Logger) *logrus.Entry {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok || id == "" {
		return logrus.NewEntry(log)
	}
	return log.WithField("request_id", id)
}

func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func IDFrom(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
