package driver

// Stage identifies a pipeline stage for progress reporting.
type Stage uint8

const (
	StageLoad Stage = iota
	StageIndent
	StageFormat
	StageImports
	StageRefactor
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageIndent:
		return "indent"
	case StageFormat:
		return "format"
	case StageImports:
		return "imports"
	case StageRefactor:
		return "refactor"
	}
	return "unknown"
}

// EventStatus is the progress state of a file within a stage.
type EventStatus uint8

const (
	StatusQueued EventStatus = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is one progress notification. File is empty for run-level events.
type Event struct {
	File   string
	Stage  Stage
	Status EventStatus
}

// emit отправляет событие в сток, если он подключён. Отправка никогда не
// блокирует: события — подсказка для прогресса, и если потребитель ушёл
// (TUI закрыт раньше времени), лишние просто теряются.
func emit(sink chan<- Event, file string, stage Stage, status EventStatus) {
	if sink == nil {
		return
	}
	select {
	case sink <- Event{File: file, Stage: stage, Status: status}:
	default:
	}
}
