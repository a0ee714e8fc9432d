package logger

import (
	"context"
	"errors"
	"testing"

	logrus "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestTimeLogsOperation(t *testing.T) {
	hook := test.NewGlobal()
	logrus.SetLevel(logrus.DebugLevel)
	defer hook.Reset()

	ctx := WithRequestID(context.Background(), "req-1")

	var err error
	Time(ctx, "dispatch.day")(&err)

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a log entry")
	}
	if entry.Level != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", entry.Level)
	}
	if entry.Data["op"] != "dispatch.day" || entry.Data["req_id"] != "req-1" {
		t.Errorf("fields = %v", entry.Data)
	}

	err = errors.New("boom")
	Time(ctx, "dispatch.range")(&err)

	entry = hook.LastEntry()
	if entry.Level != logrus.WarnLevel {
		t.Errorf("level = %v, want warning", entry.Level)
	}
	if entry.Data[logrus.ErrorKey] != err {
		t.Errorf("error field = %v, want %v", entry.Data[logrus.ErrorKey], err)
	}
}

func TestRequestIDMissing(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("RequestID() = %q, want empty", got)
	}
}
