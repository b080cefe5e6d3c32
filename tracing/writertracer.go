package tracing

import (
	"sync"

	"github.com/sarchlab/gatepipe/sim"
)

// TraceWriter stores completed tasks.
type TraceWriter interface {
	Init()
	Write(task Task)
	Flush()
}

// WriterTracer stamps tasks and their steps with the current time and hands
// every completed task to a TraceWriter.
type WriterTracer struct {
	timeTeller    sim.TimeTeller
	filter        TaskFilter
	writer        TraceWriter
	lock          sync.Mutex
	inflightTasks map[string]*Task
}

// NewWriterTracer creates a WriterTracer. The writer must be initialized.
func NewWriterTracer(
	timeTeller sim.TimeTeller,
	filter TaskFilter,
	writer TraceWriter,
) *WriterTracer {
	return &WriterTracer{
		timeTeller:    timeTeller,
		filter:        filter,
		writer:        writer,
		inflightTasks: make(map[string]*Task),
	}
}

// StartTask records the task start time.
func (t *WriterTracer) StartTask(task Task) {
	if !t.filter(task) {
		return
	}

	task.StartTime = t.timeTeller.CurrentTime()

	t.lock.Lock()
	t.inflightTasks[task.ID] = &task
	t.lock.Unlock()
}

// StepTask records the time of the step.
func (t *WriterTracer) StepTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	original, ok := t.inflightTasks[task.ID]
	if !ok {
		return
	}

	step := task.Steps[0]
	step.Time = t.timeTeller.CurrentTime()
	original.Steps = append(original.Steps, step)
}

// EndTask writes the completed task.
func (t *WriterTracer) EndTask(task Task) {
	t.lock.Lock()
	original, ok := t.inflightTasks[task.ID]
	delete(t.inflightTasks, task.ID)
	t.lock.Unlock()

	if !ok {
		return
	}

	original.EndTime = t.timeTeller.CurrentTime()
	t.writer.Write(*original)
}

// InflightTasks returns the number of started tasks that have not ended.
func (t *WriterTracer) InflightTasks() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return len(t.inflightTasks)
}
