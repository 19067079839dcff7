package domain

// RSVPStatus tracks a guest's reply.
type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "pending"
	RSVPConfirmed RSVPStatus = "confirmed"
	RSVPDeclined  RSVPStatus = "declined"
)

// Valid checks if the status is a known value.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPPending, RSVPConfirmed, RSVPDeclined:
		return true
	default:
		return false
	}
}

// Guest is an invitee on the wedding or baby-shower planner.
type Guest struct {
	Record
	OwnerID string     `json:"owner_id"`
	Event   GuestEvent `json:"event"`
	Name    string     `json:"name"`
	Email   string     `json:"email,omitempty"`
	Phone   string     `json:"phone,omitempty"`
	Status  RSVPStatus `json:"status"`
	Notes   string     `json:"notes,omitempty"`
}

// VendorStatus tracks progress with a wedding vendor.
type VendorStatus string

const (
	VendorContacted VendorStatus = "contacted"
	VendorQuoted    VendorStatus = "quoted"
	VendorBooked    VendorStatus = "booked"
	VendorPaid      VendorStatus = "paid"
)

// Valid checks if the status is a known value.
func (s VendorStatus) Valid() bool {
	switch s {
	case VendorContacted, VendorQuoted, VendorBooked, VendorPaid:
		return true
	default:
		return false
	}
}

// Vendor is a service provider on the wedding planner.
type Vendor struct {
	Record
	OwnerID  string       `json:"owner_id"`
	Name     string       `json:"name"`
	Category string       `json:"category,omitempty"` // caterer, florist, photographer...
	Email    string       `json:"email,omitempty"`
	Phone    string       `json:"phone,omitempty"`
	Status   VendorStatus `json:"status"`
	Quote    float64      `json:"quote,omitempty"`
	Notes    string       `json:"notes,omitempty"`
}
