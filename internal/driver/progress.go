package driver

// Status captures per-file progress state during a directory operation.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being parsed.
	StatusWorking Status = "working"
	// StatusDone indicates the file parsed (hits counted for searches).
	StatusDone Status = "done"
	// StatusSkipped indicates the file is not a usable dump
	// (no marker, empty, unsupported model).
	StatusSkipped Status = "skipped"
	// StatusError indicates the file failed outright (I/O).
	StatusError Status = "error"
)

// Event reports progress for one file of a directory operation.
type Event struct {
	Path   string
	Status Status
	Hits   int // только для поиска, у Done
	Err    error
}

// ProgressSink consumes progress events. Реализация обязана быть готова к
// вызовам из воркеров: события приходят из нескольких горутин.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// emit срабатывает только при ненулевом sink — обход без UI ничего не шлёт.
func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
