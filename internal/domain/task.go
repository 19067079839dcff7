package domain

// TaskKind identifies which planner screen a task item belongs to.
// All kinds share the same shape and the same parent/subtask model.
type TaskKind string

const (
	// TaskKindTodo is the general to-do list.
	TaskKindTodo TaskKind = "todo"
	// TaskKindWork is the work priorities list.
	TaskKindWork TaskKind = "work"
	// TaskKindSelfDev is the self-development priorities list.
	TaskKindSelfDev TaskKind = "selfdev"
	// TaskKindLeisure is the leisure activities list.
	TaskKindLeisure TaskKind = "leisure"
	// TaskKindFitness is the fitness activities list. Fitness items are the
	// only kind that participates in the peer-sharing overlay.
	TaskKindFitness TaskKind = "fitness"
)

// Valid checks if the kind is one of the known task kinds.
func (k TaskKind) Valid() bool {
	switch k {
	case TaskKindTodo, TaskKindWork, TaskKindSelfDev, TaskKindLeisure, TaskKindFitness:
		return true
	default:
		return false
	}
}

// ParseTaskKind converts a string to a TaskKind.
func ParseTaskKind(s string) (TaskKind, bool) {
	k := TaskKind(s)
	return k, k.Valid()
}

// TaskItem is a self-referential task record. A nil ParentID means the item
// is top-level; otherwise it is a subtask of another item of the same kind
// and owner. Subtasks normally carry no due date of their own - they inherit
// the parent's date contextually.
type TaskItem struct {
	Record
	OwnerID   string   `json:"owner_id"`
	Kind      TaskKind `json:"kind"`
	Label     string   `json:"label"`
	DueDate   string   `json:"due_date,omitempty"` // YYYY-MM-DD
	DueTime   string   `json:"due_time,omitempty"` // HH:MM
	Completed bool     `json:"completed"`
	ParentID  *string  `json:"parent_id,omitempty"`
}

// IsTopLevel returns true if the item has no parent.
func (t *TaskItem) IsTopLevel() bool {
	return t.ParentID == nil
}

// ToggleCompleted flips the completion flag. Completion never cascades
// between parents and subtasks in either direction.
func (t *TaskItem) ToggleCompleted() {
	t.Completed = !t.Completed
	t.Touch()
}
