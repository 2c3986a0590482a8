package provisioning

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// LogrObserver implements Observer on top of a logr.Logger.
type LogrObserver struct {
	logger logr.Logger
	fields map[string]string
}

// NewLogrObserver creates an observer that logs through logger.
func NewLogrObserver(logger logr.Logger) *LogrObserver {
	return &LogrObserver{
		logger: logger,
		fields: make(map[string]string),
	}
}

// NewJSONObserver creates an observer writing one JSON object per line to w.
func NewJSONObserver(w io.Writer) *LogrObserver {
	logger := funcr.NewJSON(func(obj string) {
		fmt.Fprintln(w, obj)
	}, funcr.Options{LogTimestamp: true})
	return NewLogrObserver(logger.WithName("volplan"))
}

// Printf implements Observer.
func (o *LogrObserver) Printf(format string, v ...interface{}) {
	o.logger.Info(fmt.Sprintf(format, v...), o.keysAndValues(nil)...)
}

// Event implements Observer.
func (o *LogrObserver) Event(event Event) {
	kv := []any{"event", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	kv = append(kv, o.keysAndValues(event.Fields)...)

	switch event.Type.Level() {
	case LevelFatal:
		o.logger.Error(nil, event.Message, append(kv, "fatal", true)...)
	case LevelError:
		o.logger.Error(nil, event.Message, kv...)
	default:
		o.logger.Info(event.Message, kv...)
	}
}

// Progress implements Observer.
func (o *LogrObserver) Progress(phase string, current, total int) {
	o.logger.V(1).Info("progress", append([]any{"phase", phase, "current", current, "total", total}, o.keysAndValues(nil)...)...)
}

// WithFields implements Observer.
func (o *LogrObserver) WithFields(fields map[string]string) Observer {
	return &LogrObserver{
		logger: o.logger,
		fields: joinFields(o.fields, fields),
	}
}

func (o *LogrObserver) keysAndValues(fields map[string]string) []any {
	merged := joinFields(o.fields, fields)
	kv := make([]any, 0, 2*len(merged))
	for _, k := range sortedKeys(merged) {
		kv = append(kv, k, merged[k])
	}
	return kv
}
