package cereal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/capitan"
	capitantesting "github.com/zoobzio/capitan/testing"
)

func TestEmitSerializerCreated(_ *testing.T) {
	// Should not panic
	emitSerializerCreated(context.Background(), "Book", 4)
}

func TestEmitAsDict(_ *testing.T) {
	emitAsDictStart(context.Background(), "Book", 4)
	emitAsDictComplete(context.Background(), "Book", "", 10*time.Millisecond, nil)
	emitAsDictComplete(context.Background(), "Book", "title", 10*time.Millisecond, errors.New("test error"))
}

func TestEmitEncode(_ *testing.T) {
	emitEncodeStart(context.Background(), "Book", "application/json")
	emitEncodeComplete(context.Background(), "Book", "application/json", 512, 10*time.Millisecond, nil)
	emitEncodeComplete(context.Background(), "Book", "application/json", 0, 10*time.Millisecond, errors.New("test error"))
}

func TestEmitIteratorExhausted(_ *testing.T) {
	emitIteratorExhausted(context.Background(), "row")
}

func TestIteratorField_EmitsExhausted(t *testing.T) {
	capture := capitantesting.NewEventCapture()
	listener := capitan.Hook(SignalIteratorExhausted, capture.Handler())
	defer listener.Close()

	f := IterateSlice([]int{1})
	for range 3 {
		_, _ = f.Value(nil, "exhausted-row")
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		for _, e := range capture.Events() {
			if KeyKey.ExtractFromFields(e.Fields) == "exhausted-row" {
				return
			}
		}
		time.Sleep(time.Millisecond)
	}
	t.Error("exhaustion signal with key exhausted-row not observed")
}
