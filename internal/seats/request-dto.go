package seats

// create/update seat payload
type SeatRequest struct {
	SeatNumber  string `json:"seat_number" binding:"required,min=1,max=10"`
	Location    string `json:"location" binding:"required,min=1,max=100"`
	Description string `json:"description,omitempty" binding:"omitempty,max=500"`
	Status      string `json:"status,omitempty" binding:"omitempty,oneof=AVAILABLE UNAVAILABLE"`
}
