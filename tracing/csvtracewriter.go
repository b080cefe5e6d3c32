package tracing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// CSVTraceWriter writes tasks into a CSV file, one row per task. The steps of
// a task are joined as "what@time" pairs.
type CSVTraceWriter struct {
	path   string
	file   io.WriteCloser
	writer *csv.Writer

	tasks      []Task
	bufferSize int
}

// NewCSVTraceWriter creates a CSVTraceWriter. An empty path picks a unique
// file name.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// NewCSVTraceWriterTo creates a CSVTraceWriter on an open writer.
func NewCSVTraceWriterTo(w io.WriteCloser) *CSVTraceWriter {
	return &CSVTraceWriter{
		file:       w,
		bufferSize: 1000,
	}
}

// Path returns the file name of the trace.
func (t *CSVTraceWriter) Path() string {
	return t.path
}

// Init creates the trace file and writes the header. It panics if the file
// already exists.
func (t *CSVTraceWriter) Init() {
	if t.file == nil {
		t.createFile()
	}

	t.writer = csv.NewWriter(t.file)
	t.mustWrite([]string{
		"ID", "ParentID", "Kind", "What", "Where", "Start", "End", "Steps",
	})

	atexit.Register(func() {
		t.Flush()
		if err := t.file.Close(); err != nil {
			panic(err)
		}
	})
}

func (t *CSVTraceWriter) createFile() {
	if t.path == "" {
		t.path = "gatepipe_trace_" + xid.New().String() + ".csv"
	}

	if _, err := os.Stat(t.path); err == nil {
		panic(fmt.Errorf("file %s already exists", t.path))
	}

	file, err := os.Create(t.path)
	if err != nil {
		panic(err)
	}

	t.file = file
}

// Write buffers a task.
func (t *CSVTraceWriter) Write(task Task) {
	t.tasks = append(t.tasks, task)
	if len(t.tasks) >= t.bufferSize {
		t.Flush()
	}
}

// Flush writes the buffered tasks.
func (t *CSVTraceWriter) Flush() {
	for _, task := range t.tasks {
		t.mustWrite([]string{
			task.ID,
			task.ParentID,
			task.Kind,
			task.What,
			task.Where,
			fmt.Sprintf("%.10f", task.StartTime),
			fmt.Sprintf("%.10f", task.EndTime),
			formatSteps(task.Steps),
		})
	}

	t.tasks = nil
	t.writer.Flush()

	if err := t.writer.Error(); err != nil {
		panic(err)
	}
}

func (t *CSVTraceWriter) mustWrite(record []string) {
	if err := t.writer.Write(record); err != nil {
		panic(err)
	}
}

func formatSteps(steps []TaskStep) string {
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		parts = append(parts, fmt.Sprintf("%s@%.10f", s.What, s.Time))
	}

	return strings.Join(parts, " ")
}
