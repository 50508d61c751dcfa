package booking

import (
	"context"
	"errors"
	"strings"

	bookingsRepo "rosa/database/repository/bookings"
	catalogRepo "rosa/database/repository/catalog"
	"rosa/models"
	"rosa/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SlotReservation is a request to claim one fixed slot.
type SlotReservation struct {
	models.SlotRef
	GuestName string
	CabinName string
	Audience  Audience
}

// PreferenceRequest is a request for a preference-type service.
type PreferenceRequest struct {
	ServiceID         string
	Date              string
	GuestName         string
	CabinName         string
	PreferenceTime    string
	SelectedOptions   []string
	HasPet            bool
	PetPolicyAccepted bool
	Audience          Audience
}

// newSlotBooking is the only place that writes the denormalized service
// name and slot label onto a booking.
func newSlotBooking(svc models.Service, unit string, slot models.TimeSlot, date string) *models.Booking {
	ref := models.SlotRef{ServiceID: svc.ID, Unit: unit, TimeSlotID: slot.ID, Date: date}
	return &models.Booking{
		ID:            ref.ID(),
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		Unit:          unit,
		Date:          date,
		TimeSlotID:    slot.ID,
		TimeSlotLabel: slot.Label,
	}
}

// ReserveSlot books a slot for a guest, or for staff on a guest's behalf.
func (s *DefaultBookingService) ReserveSlot(ctx context.Context, req SlotReservation) (*models.Booking, error) {
	req.GuestName = strings.TrimSpace(req.GuestName)
	req.CabinName = strings.TrimSpace(req.CabinName)

	svc, err := s.serviceFor(ctx, req.ServiceID)
	if err != nil {
		return nil, s.fail("reserve", err)
	}
	if svc.Type != models.ServiceTypeSlots {
		return nil, s.fail("reserve", newError(ErrValidation, "service %s does not take slot reservations", svc.ID))
	}
	slot, err := s.validateSlotRef(svc, req.SlotRef, req.Audience)
	if err != nil {
		return nil, s.fail("reserve", err)
	}
	if err := validateGuest(req.GuestName, req.CabinName); err != nil {
		return nil, s.fail("reserve", err)
	}

	// fail fast before opening a transaction; repeated inside it
	if err := s.checkCabin(ctx, nil, svc.ID, req.CabinName, req.Date); err != nil {
		return nil, s.fail("reserve", err)
	}

	var created *models.Booking
	err = s.Repo.RunInTransaction(ctx, func(ctx context.Context, tx bookingsRepo.Tx) error {
		if err := s.checkCabin(ctx, tx, svc.ID, req.CabinName, req.Date); err != nil {
			return err
		}
		current, err := tx.GetSlot(req.SlotRef)
		if err != nil {
			return err
		}

		if current == nil {
			if svc.DefaultStatus != models.DefaultStatusOpen {
				return ErrSlotClosed
			}
			b := newSlotBooking(*svc, req.Unit, slot, req.Date)
			b.GuestName = req.GuestName
			b.CabinName = req.CabinName
			b.Status = models.StatusConfirmed
			b.CreatedAt = s.now()
			created = b
			return tx.Create(b)
		}

		if current.Status != models.StatusAvailable {
			return ErrSlotTaken
		}
		// claim the release in place, keeping its slot fields
		claimed := *current
		claimed.GuestName = req.GuestName
		claimed.CabinName = req.CabinName
		claimed.Status = models.StatusConfirmed
		claimed.CreatedAt = s.now()
		created = &claimed
		return tx.Put(&claimed)
	})
	if err != nil {
		return nil, s.fail("reserve", err)
	}

	s.succeed("reserve", created)
	if req.Audience == AudienceGuest {
		s.notify(ctx, *created)
	}
	return created, nil
}

// RequestPreference records a free-form time request for a preference service.
func (s *DefaultBookingService) RequestPreference(ctx context.Context, req PreferenceRequest) (*models.Booking, error) {
	req.GuestName = strings.TrimSpace(req.GuestName)
	req.CabinName = strings.TrimSpace(req.CabinName)
	req.PreferenceTime = strings.TrimSpace(req.PreferenceTime)

	svc, err := s.serviceFor(ctx, req.ServiceID)
	if err != nil {
		return nil, s.fail("request", err)
	}
	if err := s.validatePreference(svc, req); err != nil {
		return nil, s.fail("request", err)
	}
	if err := s.checkCabin(ctx, nil, svc.ID, req.CabinName, req.Date); err != nil {
		return nil, s.fail("request", err)
	}

	b := &models.Booking{
		ID:              uuid.New().String(),
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		Date:            req.Date,
		GuestName:       req.GuestName,
		CabinName:       req.CabinName,
		Status:          models.StatusConfirmed,
		CreatedAt:       s.now(),
		PreferenceTime:  req.PreferenceTime,
		SelectedOptions: req.SelectedOptions,
		HasPet:          req.HasPet,
	}
	err = s.Repo.RunInTransaction(ctx, func(ctx context.Context, tx bookingsRepo.Tx) error {
		if err := s.checkCabin(ctx, tx, svc.ID, req.CabinName, req.Date); err != nil {
			return err
		}
		return tx.Create(b)
	})
	if err != nil {
		return nil, s.fail("request", err)
	}

	s.succeed("request", b)
	if req.Audience == AudienceGuest {
		s.notify(ctx, *b)
	}
	return b, nil
}

func (s *DefaultBookingService) serviceFor(ctx context.Context, serviceID string) (*models.Service, error) {
	if strings.TrimSpace(serviceID) == "" {
		return nil, newError(ErrValidation, "serviceId is required")
	}
	svc, err := s.Catalog.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, newError(ErrServiceNotFound, "service %s not found", serviceID)
		}
		return nil, err
	}
	return svc, nil
}

// validateSlotRef checks the date and that the unit and slot belong to svc.
func (s *DefaultBookingService) validateSlotRef(svc *models.Service, ref models.SlotRef, audience Audience) (models.TimeSlot, error) {
	if err := s.validateDate(ref.Date, audience); err != nil {
		return models.TimeSlot{}, err
	}
	if !svc.HasUnit(ref.Unit) {
		return models.TimeSlot{}, newError(ErrValidation, "unit %q is not part of service %s", ref.Unit, svc.ID)
	}
	slot, ok := svc.FindTimeSlot(ref.TimeSlotID)
	if !ok {
		return models.TimeSlot{}, newError(ErrValidation, "time slot %q is not part of service %s", ref.TimeSlotID, svc.ID)
	}
	return slot, nil
}

func (s *DefaultBookingService) validateDate(date string, audience Audience) error {
	if _, err := utils.ParseDate(date); err != nil {
		return newError(ErrValidation, "%s", err.Error())
	}
	if audience != AudienceAdmin && date < s.Today() {
		return newError(ErrValidation, "date %s is in the past", date)
	}
	return nil
}

func (s *DefaultBookingService) validatePreference(svc *models.Service, req PreferenceRequest) error {
	if svc.Type != models.ServiceTypePreference {
		return newError(ErrValidation, "service %s does not take time requests", svc.ID)
	}
	if err := s.validateDate(req.Date, req.Audience); err != nil {
		return err
	}
	if err := validateGuest(req.GuestName, req.CabinName); err != nil {
		return err
	}
	if req.PreferenceTime == "" {
		return newError(ErrValidation, "preferenceTime is required")
	}
	for _, opt := range req.SelectedOptions {
		if !svc.HasOption(opt) {
			return newError(ErrValidation, "option %q is not offered by %s", opt, svc.Name)
		}
	}
	if req.HasPet && !req.PetPolicyAccepted {
		return newError(ErrValidation, "the pet policy must be accepted")
	}
	return nil
}

func validateGuest(guestName, cabinName string) error {
	if guestName == "" {
		return newError(ErrValidation, "guestName is required")
	}
	if cabinName == "" {
		return newError(ErrValidation, "cabinName is required")
	}
	return nil
}

// checkCabin enforces one confirmed booking per cabin, service and date.
// With a nil tx it reads outside any transaction.
func (s *DefaultBookingService) checkCabin(ctx context.Context, tx bookingsRepo.Tx, serviceID, cabinName, date string) error {
	var (
		existing *models.Booking
		err      error
	)
	if tx == nil {
		existing, err = s.Repo.FindConfirmedForCabin(ctx, serviceID, cabinName, date)
	} else {
		existing, err = tx.FindConfirmedForCabin(serviceID, cabinName, date)
	}
	if err != nil {
		return err
	}
	if existing != nil {
		return newError(ErrCabinAlreadyBooked, "cabin %s already has a booking for %s on %s", cabinName, existing.ServiceName, date)
	}
	return nil
}

func (s *DefaultBookingService) notify(ctx context.Context, b models.Booking) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.BookingConfirmed(ctx, b); err != nil {
		s.Logger.Warn("Failed to notify staff of booking",
			zap.String("bookingId", b.ID), zap.Error(err))
	}
}

// fail translates err, records it and logs store failures.
func (s *DefaultBookingService) fail(action string, err error) error {
	err = translateStoreError(action, err)
	var be *BookingError
	if errors.As(err, &be) {
		utils.RecordBookingAction(action, be.Code)
		s.Logger.Info("Booking action rejected", zap.String("action", action), zap.String("code", be.Code), zap.String("reason", be.Message))
		return err
	}
	utils.RecordBookingAction(action, "error")
	s.Logger.Error("Booking action failed", zap.String("action", action), zap.Error(err))
	return err
}

func (s *DefaultBookingService) succeed(action string, b *models.Booking) {
	utils.RecordBookingAction(action, "ok")
	if b == nil {
		return
	}
	s.Logger.Info("Booking action applied",
		zap.String("action", action),
		zap.String("bookingId", b.ID),
		zap.String("serviceId", b.ServiceID),
		zap.String("date", b.Date),
		zap.String("status", string(b.Status)))
}
