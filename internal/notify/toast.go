// Package notify delivers user-facing toasts. Sinks are fire-and-forget:
// Notify never blocks the caller and never reports failure back.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type Toast struct {
	ID          string
	Title       string
	Description string
	Severity    Severity
	At          time.Time
}

func Info(title, description string) Toast {
	return Toast{Title: title, Description: description, Severity: SeverityInfo}
}

func Success(title, description string) Toast {
	return Toast{Title: title, Description: description, Severity: SeveritySuccess}
}

func Failure(title, description string) Toast {
	return Toast{Title: title, Description: description, Severity: SeverityError}
}

// stamp fills in the identifier and timestamp if the caller left them empty.
func (t Toast) stamp(now time.Time) Toast {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.At.IsZero() {
		t.At = now
	}
	if t.Severity == "" {
		t.Severity = SeverityInfo
	}
	return t
}

type Sink interface {
	Notify(Toast)
}

type SinkFunc func(Toast)

func (f SinkFunc) Notify(t Toast) { f(t) }

type Discard struct{}

func (Discard) Notify(Toast) {}

// Fanout forwards each toast to every non-nil sink in order.
type Fanout []Sink

func (f Fanout) Notify(t Toast) {
	t = t.stamp(time.Now().UTC())
	for _, s := range f {
		if s != nil {
			s.Notify(t)
		}
	}
}

type LogSink struct {
	Logger *zap.Logger
}

func (s LogSink) Notify(t Toast) {
	if s.Logger == nil {
		return
	}
	fields := []zap.Field{
		zap.String("toast_id", t.ID),
		zap.String("title", t.Title),
		zap.String("severity", string(t.Severity)),
	}
	if t.Severity == SeverityError {
		s.Logger.Warn("toast", fields...)
		return
	}
	s.Logger.Info("toast", fields...)
}

// Runner executes an external command; DesktopSink uses it to reach the
// platform notifier.
type Runner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

type DesktopSink struct {
	GOOS   string
	Run    Runner
	Logger *zap.Logger
}

func NewDesktopSink(logger *zap.Logger) DesktopSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return DesktopSink{GOOS: runtime.GOOS, Run: execRunner, Logger: logger}
}

func (s DesktopSink) Notify(t Toast) {
	run := s.Run
	if run == nil {
		run = execRunner
	}
	var err error
	switch s.GOOS {
	case "linux":
		err = run("notify-send", t.Title, t.Description)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(t.Description), escapeAppleScript(t.Title))
		err = run("osascript", "-e", script)
	default:
		return
	}
	if err != nil && s.Logger != nil {
		s.Logger.Debug("desktop notification failed", zap.Error(err))
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
