package orders

// DecisionRequest carries the optional note attached to an order decision
type DecisionRequest struct {
	AdminNotes string `json:"adminNotes" validate:"omitempty,max=1000"`
}
