package dto

// ReservationForm reserves a room for the logged-in customer. The customer
// ID comes from the session, never from the client.
type ReservationForm struct {
	RoomID       string  `json:"roomId"`
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	NumAdults    int     `json:"numAdults"`
	NumChildren  int     `json:"numChildren"`
	Notes        *string `json:"notes,omitempty"`
}
