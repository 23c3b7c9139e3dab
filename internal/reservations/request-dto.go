package reservations

// PilgrimInput is one participant as typed in the booking form
type PilgrimInput struct {
	Name string `json:"name"`
	Age  *int   `json:"age" validate:"omitempty,gte=0,lte=130"`
}

// DraftRequest carries a whole booking form. Clients keep the draft state and
// send it in full; DraftID is the idempotency key of that form and should be
// generated once per booking flow.
type DraftRequest struct {
	DraftID      string         `json:"draft_id" validate:"omitempty,uuid"`
	ServiceID    string         `json:"service_id" validate:"required,uuid"`
	Calendar     string         `json:"calendar"`
	StartDay     int            `json:"start_day" validate:"omitempty,min=1,max=31"`
	EndDay       int            `json:"end_day" validate:"omitempty,min=1,max=31"`
	MeetingPoint string         `json:"meeting_point"`
	VisitTime    string         `json:"visit_time"`
	Pilgrims     []PilgrimInput `json:"pilgrims" validate:"omitempty,dive"`
}
