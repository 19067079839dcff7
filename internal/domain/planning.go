package domain

// WeddingInfo is the singleton wedding-planning record for an owner.
// "Creating" it again overwrites the existing record (upsert semantics).
type WeddingInfo struct {
	Record
	OwnerID     string  `json:"owner_id"`
	PartnerName string  `json:"partner_name,omitempty"`
	WeddingDate string  `json:"wedding_date,omitempty"` // YYYY-MM-DD
	Venue       string  `json:"venue,omitempty"`
	Budget      float64 `json:"budget,omitempty"`
	GuestCount  int     `json:"guest_count,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// PregnancyInfo is the singleton pregnancy-planning record for an owner.
type PregnancyInfo struct {
	Record
	OwnerID        string `json:"owner_id"`
	DueDate        string `json:"due_date"` // YYYY-MM-DD
	ConceptionDate string `json:"conception_date,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// BabyShowerInfo is the singleton baby-shower-planning record for an owner.
type BabyShowerInfo struct {
	Record
	OwnerID    string  `json:"owner_id"`
	ShowerDate string  `json:"shower_date,omitempty"` // YYYY-MM-DD
	Venue      string  `json:"venue,omitempty"`
	Theme      string  `json:"theme,omitempty"`
	Budget     float64 `json:"budget,omitempty"`
	GuestCount int     `json:"guest_count,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// GuestEvent identifies which planner a guest belongs to.
type GuestEvent string

const (
	GuestEventWedding    GuestEvent = "wedding"
	GuestEventBabyShower GuestEvent = "babyshower"
)

// Valid checks if the event is a known value.
func (e GuestEvent) Valid() bool {
	return e == GuestEventWedding || e == GuestEventBabyShower
}
