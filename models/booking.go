package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// BookingStatus is the stored status of a booking document.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmado" // booked by a guest
	StatusBlocked   BookingStatus = "bloqueado"  // blocked by staff
	StatusAvailable BookingStatus = "disponivel" // released by staff, not yet claimed
)

// ParseBookingStatus converts a stored value, rejecting anything unknown.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case StatusConfirmed, StatusBlocked, StatusAvailable:
		return st, nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// Booking is one reservation or override record.
type Booking struct {
	ID            string        `bson:"_id" json:"id" firestore:"-"`
	ServiceID     string        `bson:"serviceId" json:"serviceId" firestore:"serviceId"`
	ServiceName   string        `bson:"serviceName" json:"serviceName" firestore:"serviceName"`
	Unit          string        `bson:"unit,omitempty" json:"unit,omitempty" firestore:"unit,omitempty"`
	Date          string        `bson:"date" json:"date" firestore:"date"` // yyyy-MM-dd
	TimeSlotID    string        `bson:"timeSlotId,omitempty" json:"timeSlotId,omitempty" firestore:"timeSlotId,omitempty"`
	TimeSlotLabel string        `bson:"timeSlotLabel,omitempty" json:"timeSlotLabel,omitempty" firestore:"timeSlotLabel,omitempty"`
	GuestName     string        `bson:"guestName" json:"guestName" firestore:"guestName"`
	CabinName     string        `bson:"cabinName" json:"cabinName" firestore:"cabinName"`
	Status        BookingStatus `bson:"status" json:"status" firestore:"status"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt" firestore:"createdAt"`

	// preference-only
	PreferenceTime  string   `bson:"preferenceTime,omitempty" json:"preferenceTime,omitempty" firestore:"preferenceTime,omitempty"`
	SelectedOptions []string `bson:"selectedOptions,omitempty" json:"selectedOptions,omitempty" firestore:"selectedOptions,omitempty"`
	HasPet          bool     `bson:"hasPet,omitempty" json:"hasPet,omitempty" firestore:"hasPet,omitempty"`
}

// Validate is called on every booking read from a store.
func (b *Booking) Validate() error {
	if _, err := ParseBookingStatus(string(b.Status)); err != nil {
		return fmt.Errorf("booking %s: %w", b.ID, err)
	}
	return nil
}

// IsSlotBooking reports whether the booking occupies a fixed slot.
func (b *Booking) IsSlotBooking() bool {
	return b.TimeSlotID != ""
}

// Slot returns the slot tuple the booking occupies.
func (b *Booking) Slot() SlotRef {
	return SlotRef{ServiceID: b.ServiceID, Unit: b.Unit, TimeSlotID: b.TimeSlotID, Date: b.Date}
}

// SlotRef addresses one (service, unit, time slot, date) tuple.
type SlotRef struct {
	ServiceID  string `json:"serviceId" binding:"required"`
	Unit       string `json:"unit" binding:"required"`
	TimeSlotID string `json:"timeSlotId" binding:"required"`
	Date       string `json:"date" binding:"required"`
}

// ID is the deterministic document id of the slot, so a slot tuple can
// only ever hold one booking document.
func (r SlotRef) ID() string {
	parts := []string{r.ServiceID, r.Unit, r.TimeSlotID, r.Date}
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "|")
}
