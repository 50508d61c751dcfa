package models

// IntegrityConflict is a tuple holding more than one confirmed booking.
type IntegrityConflict struct {
	Kind       string   `json:"kind"` // "slot" or "cabin"
	ServiceID  string   `json:"serviceId"`
	Date       string   `json:"date"`
	Key        string   `json:"key"` // slot id or cabin name
	BookingIDs []string `json:"bookingIds"`
}

// IntegrityReport is the result of scanning one date.
type IntegrityReport struct {
	Date      string              `json:"date"`
	Scanned   int                 `json:"scanned"`
	Conflicts []IntegrityConflict `json:"conflicts"`
}
