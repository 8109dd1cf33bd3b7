package cereal

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for serializer events.
var (
	SignalSerializerCreated = capitan.NewSignal("cereal.serializer.created", "Serializer inferred from a struct type")
	SignalAsDictStart       = capitan.NewSignal("cereal.asdict.start", "AsDict operation beginning")
	SignalAsDictComplete    = capitan.NewSignal("cereal.asdict.complete", "AsDict operation finished")
	SignalEncodeStart       = capitan.NewSignal("cereal.encode.start", "Encode operation beginning")
	SignalEncodeComplete    = capitan.NewSignal("cereal.encode.complete", "Encode operation finished")
	SignalIteratorExhausted = capitan.NewSignal("cereal.iterator.exhausted", "Iterator field reached the end of its sequence")
)

// Keys for typed event data.
var (
	KeySerializer  = capitan.NewStringKey("serializer")
	KeyContentType = capitan.NewStringKey("content_type")
	KeyKey         = capitan.NewStringKey("key")
	KeyFieldCount  = capitan.NewIntKey("field_count")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

func emitSerializerCreated(ctx context.Context, name string, fields int) {
	capitan.Emit(ctx, SignalSerializerCreated,
		KeySerializer.Field(name),
		KeyFieldCount.Field(fields),
	)
}

func emitAsDictStart(ctx context.Context, name string, fields int) {
	capitan.Emit(ctx, SignalAsDictStart,
		KeySerializer.Field(name),
		KeyFieldCount.Field(fields),
	)
}

// emitAsDictComplete reports the outcome of AsDict. key is the key that
// failed, empty on success.
func emitAsDictComplete(ctx context.Context, name, key string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeySerializer.Field(name),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyKey.Field(key), KeyError.Field(err))
		capitan.Error(ctx, SignalAsDictComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalAsDictComplete, fields...)
	}
}

func emitEncodeStart(ctx context.Context, name, contentType string) {
	capitan.Emit(ctx, SignalEncodeStart,
		KeySerializer.Field(name),
		KeyContentType.Field(contentType),
	)
}

func emitEncodeComplete(ctx context.Context, name, contentType string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeySerializer.Field(name),
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

func emitIteratorExhausted(ctx context.Context, key string) {
	capitan.Emit(ctx, SignalIteratorExhausted, KeyKey.Field(key))
}
