package domain

// Appointment is a plain calendar appointment.
type Appointment struct {
	Record
	OwnerID   string `json:"owner_id"`
	Title     string `json:"title"`
	Date      string `json:"date"`           // YYYY-MM-DD
	Time      string `json:"time,omitempty"` // HH:MM
	Location  string `json:"location,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Completed bool   `json:"completed"`
}

// PregnancyAppointment is an appointment on the pregnancy planner, carrying
// the doctor and practice location.
type PregnancyAppointment struct {
	Record
	OwnerID   string `json:"owner_id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time,omitempty"`
	Doctor    string `json:"doctor,omitempty"`
	Location  string `json:"location,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Completed bool   `json:"completed"`
}

// WeddingTaskPriority ranks wedding tasks.
type WeddingTaskPriority string

const (
	WeddingTaskPriorityLow    WeddingTaskPriority = "low"
	WeddingTaskPriorityMedium WeddingTaskPriority = "medium"
	WeddingTaskPriorityHigh   WeddingTaskPriority = "high"
)

// Valid checks if the priority is a known value.
func (p WeddingTaskPriority) Valid() bool {
	switch p {
	case WeddingTaskPriorityLow, WeddingTaskPriorityMedium, WeddingTaskPriorityHigh:
		return true
	default:
		return false
	}
}

// WeddingTask is a dated task on the wedding planner, optionally tied to a
// vendor.
type WeddingTask struct {
	Record
	OwnerID   string              `json:"owner_id"`
	Title     string              `json:"title"`
	Date      string              `json:"date"`
	Time      string              `json:"time,omitempty"`
	Vendor    string              `json:"vendor,omitempty"`
	Priority  WeddingTaskPriority `json:"priority,omitempty"`
	Notes     string              `json:"notes,omitempty"`
	Completed bool                `json:"completed"`
}
