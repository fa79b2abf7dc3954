package bookings

// BookingListQuery carries pagination and filters for listing an owner's bookings
type BookingListQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Status   string `form:"status"`
	RoomID   string `form:"room_id"`
	DateFrom string `form:"date_from"` // YYYY-MM-DD
	DateTo   string `form:"date_to"`   // YYYY-MM-DD
}
