package types

import "github.com/stocklot-app/stocklot-backend/pkg/pagination"

// Envelope is the wire shape of every API response. Success responses carry
// data (and pagination on list endpoints); failures carry message, plus the
// upstream error text on 5xx only.
type Envelope struct {
	Success    bool             `json:"success"`
	Data       any              `json:"data,omitempty"`
	Message    string           `json:"message,omitempty"`
	Error      string           `json:"error,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}
