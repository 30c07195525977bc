package model

// Activity is a logged interaction against a deal and/or contact.
type Activity struct {
	ID          int64   `json:"id"`
	DealID      *int64  `json:"deal_id"`
	ContactID   *int64  `json:"contact_id"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	NextSteps   *string `json:"next_steps"`
	DueDate     *string `json:"due_date"`
	CreatedAt   string  `json:"created_at"`
}

// Task is an activity with a due date, enriched with the linked deal and
// contact names for the weekly task list.
type Task struct {
	Activity
	DealTitle   *string `json:"deal_title"`
	ContactName *string `json:"contact_name"`
}

// Setting is one key/value configuration row.
type Setting struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
