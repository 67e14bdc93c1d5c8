package bus

import (
	"io"
	"log/slog"
	"testing"
)

func newTestBus() *Bus {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	b := newTestBus()

	var got []int
	b.Subscribe("t", func(any) { got = append(got, 1) })
	b.Subscribe("t", func(any) { got = append(got, 2) })
	b.Subscribe("t", func(any) { got = append(got, 3) })

	b.Publish("t", nil)

	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", got)
	}
}

func TestPublishIsSynchronous(t *testing.T) {
	b := newTestBus()

	delivered := false
	b.Subscribe("t", func(event any) {
		if event != "payload" {
			t.Errorf("expected payload, got %v", event)
		}
		delivered = true
	})

	b.Publish("t", "payload")

	if !delivered {
		t.Fatal("handler not invoked before Publish returned")
	}
}

func TestPublishUnknownTopicIsNoop(t *testing.T) {
	b := newTestBus()
	b.Publish("nobody-listens", 42)
}

func TestPanickingHandlerDoesNotStopDispatch(t *testing.T) {
	b := newTestBus()

	second := false
	b.Subscribe("t", func(any) { panic("boom") })
	b.Subscribe("t", func(any) { second = true })

	b.Publish("t", nil)

	if !second {
		t.Error("second handler should still run after a panic in the first")
	}
}

func TestNilHandlerIgnored(t *testing.T) {
	b := newTestBus()
	b.Subscribe("t", nil)
	b.Publish("t", nil)
}
