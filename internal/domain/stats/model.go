package stats

// ShopStats summarizes the reservation book for the admin dashboard.
type ShopStats struct {
	Reservations ReservationStats `json:"reservations"`
	Blocking     BlockingStats    `json:"blocking"`
}

type ReservationStats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	Upcoming int `json:"upcoming"`
	WalkIns  int `json:"walkIns"`
}

type BlockingStats struct {
	BlockedDays  int `json:"blockedDays"`
	BlockedSlots int `json:"blockedSlots"`
}
