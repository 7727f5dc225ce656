package events

import "context"

// Emit is the process-wide event hook. The default is a no-op so library code
// can emit unconditionally; the embedding application installs a real emitter
// at startup.
var Emit = func(ctx context.Context, name string, evt Event) {}

// EnableLogEmitter routes events to the standard logger. Used by the terminal
// driver and by anything without its own event transport.
func EnableLogEmitter() {
	Emit = func(ctx context.Context, name string, evt Event) {
		if evt.SessionKey == "" {
			if session := SessionFromContext(ctx); session != "" {
				evt.SessionKey = session
			}
		}
		logEvent(name, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt Event)) {
	if f == nil {
		Emit = func(context.Context, string, Event) {}
		return
	}
	Emit = func(ctx context.Context, name string, evt Event) {
		if evt.SessionKey == "" {
			if session := SessionFromContext(ctx); session != "" {
				evt.SessionKey = session
			}
		}
		f(ctx, name, evt)
	}
}
