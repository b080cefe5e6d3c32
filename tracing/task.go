package tracing

import "github.com/sarchlab/gatepipe/sim"

// A TaskStep is a milestone in the processing of a task.
type TaskStep struct {
	Time sim.VTimeInSec `json:"time"`
	What string         `json:"what"`
}

// A Task is a unit of work followed by the tracers. For the pipeline, a task
// is one fetched instruction.
type Task struct {
	ID        string         `json:"id"`
	ParentID  string         `json:"parent_id"`
	Kind      string         `json:"kind"`
	What      string         `json:"what"`
	Where     string         `json:"where"`
	StartTime sim.VTimeInSec `json:"start_time"`
	EndTime   sim.VTimeInSec `json:"end_time"`
	Steps     []TaskStep     `json:"steps"`
	Detail    interface{}    `json:"-"`
}

// HasStep tells if the task has reached a step with the given name.
func (t Task) HasStep(what string) bool {
	for _, s := range t.Steps {
		if s.What == what {
			return true
		}
	}

	return false
}

// TaskFilter selects the tasks a tracer is interested in.
type TaskFilter func(t Task) bool

// KindFilter selects the tasks of one kind.
func KindFilter(kind string) TaskFilter {
	return func(t Task) bool {
		return t.Kind == kind
	}
}

// AllTasks selects every task.
func AllTasks(Task) bool {
	return true
}
