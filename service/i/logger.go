package i

// Logger is the leveled logger handed to every component.
type Logger interface {
	Info(msg string)
	Error(msg string)
	Debug(msg string)
	WithField(key string, value any) Logger
}
