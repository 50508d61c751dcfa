package booking

import (
	"context"
	"strings"

	bookingsRepo "rosa/database/repository/bookings"
	"rosa/models"
)

// GuestUpdate is the editable part of a confirmed booking.
type GuestUpdate struct {
	GuestName string
	CabinName string
}

type slotChange func(tx bookingsRepo.Tx, svc *models.Service, slot models.TimeSlot, current *models.Booking) (*models.Booking, error)

// transition runs an admin slot action inside a transaction, after checking
// that the action is offered for the slot's current state.
func (s *DefaultBookingService) transition(ctx context.Context, action models.SlotAction, ref models.SlotRef, apply slotChange) (*models.Booking, error) {
	name := string(action)

	svc, err := s.serviceFor(ctx, ref.ServiceID)
	if err != nil {
		return nil, s.fail(name, err)
	}
	if svc.Type != models.ServiceTypeSlots {
		return nil, s.fail(name, newError(ErrValidation, "service %s has no slots", svc.ID))
	}
	slot, err := s.validateSlotRef(svc, ref, AudienceAdmin)
	if err != nil {
		return nil, s.fail(name, err)
	}

	var result *models.Booking
	err = s.Repo.RunInTransaction(ctx, func(ctx context.Context, tx bookingsRepo.Tx) error {
		current, err := tx.GetSlot(ref)
		if err != nil {
			return err
		}
		state := StateOf(*svc, current)
		if !isAllowed(state, AudienceAdmin, action) {
			return newError(ErrInvalidTransition, "cannot %s a slot that is %s", action, state)
		}
		result, err = apply(tx, svc, slot, current)
		return err
	})
	if err != nil {
		return nil, s.fail(name, err)
	}
	s.succeed(name, result)
	return result, nil
}

// Block takes a free or released slot out of circulation.
func (s *DefaultBookingService) Block(ctx context.Context, ref models.SlotRef) (*models.Booking, error) {
	return s.transition(ctx, models.ActionBlock, ref, func(tx bookingsRepo.Tx, svc *models.Service, slot models.TimeSlot, _ *models.Booking) (*models.Booking, error) {
		b := newSlotBooking(*svc, ref.Unit, slot, ref.Date)
		b.GuestName = AdminGuestName
		b.Status = models.StatusBlocked
		b.CreatedAt = s.now()
		return b, tx.Put(b)
	})
}

// Unblock removes a staff block.
func (s *DefaultBookingService) Unblock(ctx context.Context, ref models.SlotRef) error {
	_, err := s.transition(ctx, models.ActionUnblock, ref, func(tx bookingsRepo.Tx, _ *models.Service, _ models.TimeSlot, current *models.Booking) (*models.Booking, error) {
		return current, tx.Delete(current.ID)
	})
	return err
}

// Release opens a slot of a closed-by-default service for guests.
func (s *DefaultBookingService) Release(ctx context.Context, ref models.SlotRef) (*models.Booking, error) {
	return s.transition(ctx, models.ActionRelease, ref, func(tx bookingsRepo.Tx, svc *models.Service, slot models.TimeSlot, _ *models.Booking) (*models.Booking, error) {
		b := newSlotBooking(*svc, ref.Unit, slot, ref.Date)
		b.Status = models.StatusAvailable
		b.CreatedAt = s.now()
		return b, tx.Create(b)
	})
}

// Revoke withdraws a release nobody has claimed yet.
func (s *DefaultBookingService) Revoke(ctx context.Context, ref models.SlotRef) error {
	_, err := s.transition(ctx, models.ActionRevoke, ref, func(tx bookingsRepo.Tx, _ *models.Service, _ models.TimeSlot, current *models.Booking) (*models.Booking, error) {
		return current, tx.Delete(current.ID)
	})
	return err
}

// Cancel deletes a confirmed booking, freeing its slot.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string) error {
	if strings.TrimSpace(bookingID) == "" {
		return s.fail("cancel", newError(ErrValidation, "booking id is required"))
	}
	var cancelled *models.Booking
	err := s.Repo.RunInTransaction(ctx, func(ctx context.Context, tx bookingsRepo.Tx) error {
		b, err := tx.Get(bookingID)
		if err != nil {
			return err
		}
		if b.Status != models.StatusConfirmed {
			return newError(ErrInvalidTransition, "booking %s is %s, only confirmed bookings can be cancelled", bookingID, b.Status)
		}
		cancelled = b
		return tx.Delete(bookingID)
	})
	if err != nil {
		return s.fail("cancel", err)
	}
	s.succeed("cancel", cancelled)
	return nil
}

// UpdateGuest edits the guest and cabin of a confirmed booking. The cabin
// uniqueness rule is not re-checked here.
func (s *DefaultBookingService) UpdateGuest(ctx context.Context, bookingID string, upd GuestUpdate) (*models.Booking, error) {
	upd.GuestName = strings.TrimSpace(upd.GuestName)
	upd.CabinName = strings.TrimSpace(upd.CabinName)
	if strings.TrimSpace(bookingID) == "" {
		return nil, s.fail("update", newError(ErrValidation, "booking id is required"))
	}
	if err := validateGuest(upd.GuestName, upd.CabinName); err != nil {
		return nil, s.fail("update", err)
	}

	var updated *models.Booking
	err := s.Repo.RunInTransaction(ctx, func(ctx context.Context, tx bookingsRepo.Tx) error {
		b, err := tx.Get(bookingID)
		if err != nil {
			return err
		}
		if b.Status != models.StatusConfirmed {
			return newError(ErrInvalidTransition, "booking %s is %s, only confirmed bookings can be edited", bookingID, b.Status)
		}
		b.GuestName = upd.GuestName
		b.CabinName = upd.CabinName
		updated = b
		return tx.Put(b)
	})
	if err != nil {
		return nil, s.fail("update", err)
	}
	s.succeed("update", updated)
	return updated, nil
}
