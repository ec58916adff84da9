// Package notify delivers desktop notifications and plays short sounds by
// shelling out to the platform tools.
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

type Notification struct {
	Title string
	Body  string
	At    time.Time
}

type DesktopNotifier interface {
	Send(ctx context.Context, n Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(context.Context, Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(ctx context.Context, n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.CommandContext(ctx, "notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.CommandContext(ctx, "osascript", "-e", script).Run()
	default:
		return nil
	}
}

// RecordingNotifier keeps every notification in memory. Tests use it.
type RecordingNotifier struct {
	Sent []Notification
}

func (r *RecordingNotifier) Send(_ context.Context, n Notification) error {
	r.Sent = append(r.Sent, n)
	return nil
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
