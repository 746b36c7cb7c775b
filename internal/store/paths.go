package store

// Firestore collection names. Records are addressed collection/docID; the
// document id doubles as the record key (reservation id, date, uid).
const (
	ColReservations  = "reservations"
	ColBlockedDays   = "blockedDays"
	ColBlockedSlots  = "blockedSlots"
	ColUserProfiles  = "userProfiles"
	ColAnnouncements = "announcements"
)
