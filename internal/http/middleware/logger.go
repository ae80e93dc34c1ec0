package middleware

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// LoggerLocalKey stores the request-scoped log entry in Fiber's context locals.
const LoggerLocalKey = "logger"

// Logger is a middleware that logs each HTTP request through log.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
func Logger(log logrus.FieldLogger) fiber.Handler {
	return logger(log, time.Local)
}

// LoggerWithWriter logs one JSON object per request to w, stamping "ts" in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap:        logrus.FieldMap{logrus.FieldKeyTime: "ts"},
	})
	return logger(l, loc)
}

// NewJSONLogger builds the process logger used by the server and the CLI.
func NewJSONLogger(level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap:        logrus.FieldMap{logrus.FieldKeyTime: "ts"},
	})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
	return l
}

func logger(log logrus.FieldLogger, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.Local
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		entry := log.WithField("request_id", rid)
		c.Locals(LoggerLocalKey, entry)

		err := c.Next()

		// Run the error handler now so the logged status is the one the client sees.
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		status := c.Response().StatusCode()
		fields := logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  status,
			"latency": float64(time.Since(start).Microseconds()) / 1000,
		}

		e := entry.WithFields(fields).WithTime(time.Now().In(loc))
		switch {
		case status >= fiber.StatusInternalServerError:
			e.Error("request")
		case status >= fiber.StatusBadRequest:
			e.Warn("request")
		default:
			e.Info("request")
		}

		return err
	}
}

// LogEntry returns the request-scoped entry stored by Logger, or the standard logger.
func LogEntry(c *fiber.Ctx) logrus.FieldLogger {
	if e, ok := c.Locals(LoggerLocalKey).(*logrus.Entry); ok {
		return e
	}
	rid, _ := c.Locals(RequestIDLocalKey).(string)
	return logrus.StandardLogger().WithField("request_id", rid)
}
