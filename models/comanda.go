package models

import "time"

// Comanda is a guest access ticket. The token authenticates the guest's
// session and carries the cabin it was issued for.
type Comanda struct {
	ID        string    `json:"id"`
	CabinName string    `json:"cabinName"`
	GuestName string    `json:"guestName"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Token     string    `json:"token"`
	QRCode    string    `json:"qrCode,omitempty"` // data URL of a PNG
}
