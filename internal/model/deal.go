package model

// Deal statuses recognized by the revenue partition. Anything else is
// excluded from both totals.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Stages is the pipeline stage order used by analytics.
var Stages = []string{"qualification", "needs_analysis", "proposal", "negotiation"}

// Deal is a sales opportunity linked to a Contact.
type Deal struct {
	ID                int64    `json:"id"`
	ContactID         *int64   `json:"contact_id"`
	Title             string   `json:"title"`
	Value             *float64 `json:"value"`
	Probability       *int64   `json:"probability"`
	Stage             *string  `json:"stage"`
	Status            string   `json:"status"`
	LeadSource        *string  `json:"lead_source"`
	Budget            *string  `json:"budget"`
	Authority         *string  `json:"authority"`
	Need              *string  `json:"need"`
	Timeline          *string  `json:"timeline"`
	ExpectedCloseDate *string  `json:"expected_close_date"`
	ClosedRevenue     float64  `json:"closed_revenue"`
	CreatedAt         string   `json:"created_at"`

	// Joined from contacts on reads; null when the contact is gone.
	ContactName *string `json:"contact_name"`

	// Linked SKU catalog entries.
	SKUs []SKU `json:"skus"`
}

// DealUpdate carries a partial deal mutation. Nil fields are left unchanged.
// SKUIDs, when present, replaces the deal's SKU links wholesale.
type DealUpdate struct {
	ContactID         *int64   `json:"contact_id"`
	Title             *string  `json:"title"`
	Value             *float64 `json:"value"`
	Probability       *int64   `json:"probability"`
	Stage             *string  `json:"stage"`
	Status            *string  `json:"status"`
	LeadSource        *string  `json:"lead_source"`
	Budget            *string  `json:"budget"`
	Authority         *string  `json:"authority"`
	Need              *string  `json:"need"`
	Timeline          *string  `json:"timeline"`
	ExpectedCloseDate *string  `json:"expected_close_date"`
	ClosedRevenue     *float64 `json:"closed_revenue"`
	SKUIDs            []int64  `json:"sku_ids"`
}

// SKU is one entry of the fixed product catalog.
type SKU struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}
