package domain

// QuickAddButton is pure UI configuration: a shortcut that pre-fills a task
// creation form for one of the task kinds. Sort order uniqueness is advisory,
// not enforced.
type QuickAddButton struct {
	Record
	OwnerID   string   `json:"owner_id"`
	Name      string   `json:"name"`
	Category  TaskKind `json:"category"`
	Icon      string   `json:"icon,omitempty"`
	Color     string   `json:"color,omitempty"`
	Priority  int      `json:"priority"`
	SortOrder int      `json:"sort_order"`
	IsActive  bool     `json:"is_active"`
}
