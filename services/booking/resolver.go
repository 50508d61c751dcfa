package booking

import "rosa/models"

// FindSlotBooking returns the booking matching (serviceID, unit, slotID)
// among bookings already loaded for one date.
func FindSlotBooking(bookings []models.Booking, serviceID, unit, slotID string) *models.Booking {
	for i := range bookings {
		b := &bookings[i]
		if b.ServiceID == serviceID && b.Unit == unit && b.TimeSlotID == slotID {
			return b
		}
	}
	return nil
}

// StateOf derives the display state from the service default and the
// booking on the slot, if any.
func StateOf(svc models.Service, b *models.Booking) models.SlotState {
	if b == nil {
		if svc.DefaultStatus == models.DefaultStatusClosed {
			return models.SlotClosed
		}
		return models.SlotFree
	}
	switch b.Status {
	case models.StatusConfirmed:
		return models.SlotBooked
	case models.StatusBlocked:
		return models.SlotBlocked
	case models.StatusAvailable:
		return models.SlotAdminReleased
	}
	// statuses are validated when read, so this only guards hand-built values
	return models.SlotBlocked
}

// ResolveSlotStatus is the display state of one slot for the given day's bookings.
func ResolveSlotStatus(svc models.Service, unit string, slot models.TimeSlot, bookings []models.Booking) models.SlotState {
	return StateOf(svc, FindSlotBooking(bookings, svc.ID, unit, slot.ID))
}

// AllowedActions lists what the audience may do with a slot in state.
func AllowedActions(state models.SlotState, audience Audience) []models.SlotAction {
	if audience == AudienceGuest {
		switch state {
		case models.SlotFree, models.SlotAdminReleased:
			return []models.SlotAction{models.ActionReserve}
		}
		return []models.SlotAction{}
	}

	switch state {
	case models.SlotFree:
		return []models.SlotAction{models.ActionReserve, models.ActionBlock}
	case models.SlotClosed:
		return []models.SlotAction{models.ActionRelease}
	case models.SlotAdminReleased:
		return []models.SlotAction{models.ActionReserve, models.ActionBlock, models.ActionRevoke}
	case models.SlotBlocked:
		return []models.SlotAction{models.ActionUnblock}
	case models.SlotBooked:
		return []models.SlotAction{models.ActionCancel, models.ActionUpdate}
	}
	return []models.SlotAction{}
}

// isAllowed reports whether action is offered for state to the audience.
func isAllowed(state models.SlotState, audience Audience, action models.SlotAction) bool {
	for _, a := range AllowedActions(state, audience) {
		if a == action {
			return true
		}
	}
	return false
}
