package tracing

import (
	"github.com/sarchlab/gatepipe/datarecording"
)

type taskTableEntry struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Location  string
	StartTime float64
	EndTime   float64
}

type stepTableEntry struct {
	TaskID string
	Seq    int
	What   string
	Time   float64
}

// DBTraceWriter writes tasks and their steps into two tables of a data
// recorder.
type DBTraceWriter struct {
	recorder datarecording.DataRecorder

	taskTable string
	stepTable string
}

// NewDBTraceWriter creates a DBTraceWriter. Tables are named after prefix.
func NewDBTraceWriter(
	recorder datarecording.DataRecorder,
	prefix string,
) *DBTraceWriter {
	return &DBTraceWriter{
		recorder:  recorder,
		taskTable: prefix + "_tasks",
		stepTable: prefix + "_steps",
	}
}

// Init creates the tables.
func (w *DBTraceWriter) Init() {
	w.recorder.CreateTable(w.taskTable, taskTableEntry{})
	w.recorder.CreateTable(w.stepTable, stepTableEntry{})
}

// Write inserts a task and its steps.
func (w *DBTraceWriter) Write(task Task) {
	w.recorder.InsertData(w.taskTable, taskTableEntry{
		ID:        task.ID,
		ParentID:  task.ParentID,
		Kind:      task.Kind,
		What:      task.What,
		Location:  task.Where,
		StartTime: float64(task.StartTime),
		EndTime:   float64(task.EndTime),
	})

	for i, s := range task.Steps {
		w.recorder.InsertData(w.stepTable, stepTableEntry{
			TaskID: task.ID,
			Seq:    i,
			What:   s.What,
			Time:   float64(s.Time),
		})
	}
}

// Flush flushes the data recorder.
func (w *DBTraceWriter) Flush() {
	w.recorder.Flush()
}
