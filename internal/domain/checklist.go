package domain

// ChecklistCategory groups checklist items. A category becomes publicly
// readable when a share token is attached; the token is the entire
// authorization mechanism for the public path.
type ChecklistCategory struct {
	Record
	OwnerID    string  `json:"owner_id"`
	Name       string  `json:"name"`
	ShareToken *string `json:"share_token,omitempty"`
	IsShared   bool    `json:"is_shared"`
}

// HasShareToken returns true if a token has already been issued.
func (c *ChecklistCategory) HasShareToken() bool {
	return c.ShareToken != nil && *c.ShareToken != ""
}

// ChecklistItem is one line of a checklist category.
type ChecklistItem struct {
	Record
	CategoryID string `json:"category_id"`
	Text       string `json:"text"`
	Completed  bool   `json:"completed"`
	SortOrder  int    `json:"sort_order"`
}

// SharedChecklist is the public projection of a shared category. It must
// never expose the owning user's identity or any other category.
type SharedChecklist struct {
	CategoryName string          `json:"category_name"`
	Items        []ChecklistItem `json:"items"`
}
