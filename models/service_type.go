// models/service_type.go
package models

import "fmt"

// ServiceType tells how a service is scheduled.
type ServiceType string

const (
	ServiceTypeSlots      ServiceType = "slots"      // fixed time blocks per unit
	ServiceTypePreference ServiceType = "preference" // free-text time request
)

// DefaultStatus governs whether an un-booked slot is available.
type DefaultStatus string

const (
	DefaultStatusOpen   DefaultStatus = "open"
	DefaultStatusClosed DefaultStatus = "closed"
)

// TimeSlot is one fixed block of a slots-type service.
type TimeSlot struct {
	ID        string `bson:"id" json:"id" firestore:"id"`
	StartTime string `bson:"startTime" json:"startTime" firestore:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime" firestore:"endTime"`
	Label     string `bson:"label" json:"label" firestore:"label"`
}

// Service is a bookable amenity (sauna, jacuzzi, cleaning...).
type Service struct {
	ID                string        `bson:"_id" json:"id" firestore:"-"`
	Name              string        `bson:"name" json:"name" firestore:"name"`
	Type              ServiceType   `bson:"type" json:"type" firestore:"type"`
	DefaultStatus     DefaultStatus `bson:"defaultStatus" json:"defaultStatus" firestore:"defaultStatus"`
	Units             []string      `bson:"units" json:"units" firestore:"units"`
	TimeSlots         []TimeSlot    `bson:"timeSlots" json:"timeSlots" firestore:"timeSlots"`
	AdditionalOptions []string      `bson:"additionalOptions,omitempty" json:"additionalOptions,omitempty" firestore:"additionalOptions,omitempty"`
}

// Validate rejects enum values the rest of the code does not know about.
func (s *Service) Validate() error {
	switch s.Type {
	case ServiceTypeSlots, ServiceTypePreference:
	default:
		return fmt.Errorf("service %s: unknown type %q", s.ID, s.Type)
	}
	switch s.DefaultStatus {
	case DefaultStatusOpen, DefaultStatusClosed:
	case "":
		// older documents were written without a default and behave as open
		s.DefaultStatus = DefaultStatusOpen
	default:
		return fmt.Errorf("service %s: unknown default status %q", s.ID, s.DefaultStatus)
	}
	return nil
}

// HasUnit reports whether unit is one of the service's physical instances.
func (s *Service) HasUnit(unit string) bool {
	for _, u := range s.Units {
		if u == unit {
			return true
		}
	}
	return false
}

// FindTimeSlot returns the time slot with the given id.
func (s *Service) FindTimeSlot(id string) (TimeSlot, bool) {
	for _, ts := range s.TimeSlots {
		if ts.ID == id {
			return ts, true
		}
	}
	return TimeSlot{}, false
}

// HasOption reports whether opt is one of the service's add-ons.
func (s *Service) HasOption(opt string) bool {
	for _, o := range s.AdditionalOptions {
		if o == opt {
			return true
		}
	}
	return false
}
