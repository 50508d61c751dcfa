package booking

import (
	"context"

	"rosa/models"
	"rosa/utils"
)

// DayGrid loads the catalog and the date's bookings and resolves every slot.
func (s *DefaultBookingService) DayGrid(ctx context.Context, date string, audience Audience) (*models.DayGrid, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, newError(ErrValidation, "%s", err.Error())
	}
	services, err := s.Catalog.ListServices(ctx)
	if err != nil {
		return nil, translateStoreError("grid", err)
	}
	bookings, err := s.Repo.ListByDate(ctx, date)
	if err != nil {
		return nil, translateStoreError("grid", err)
	}
	return BuildDayGrid(date, services, bookings, audience), nil
}

// BuildDayGrid is the pure part of DayGrid. Guests never see booking details.
func BuildDayGrid(date string, services []models.Service, bookings []models.Booking, audience Audience) *models.DayGrid {
	grid := &models.DayGrid{Date: date, Services: make([]models.ServiceView, 0, len(services))}

	for _, svc := range services {
		view := models.ServiceView{
			ID:            svc.ID,
			Name:          svc.Name,
			Type:          svc.Type,
			DefaultStatus: svc.DefaultStatus,
		}

		if svc.Type == models.ServiceTypePreference {
			view.AdditionalOptions = svc.AdditionalOptions
			if audience == AudienceAdmin {
				view.Requests = preferenceRequests(svc.ID, bookings)
			} else {
				view.Requestable = true
			}
			grid.Services = append(grid.Services, view)
			continue
		}

		for _, unit := range svc.Units {
			uv := models.UnitView{Unit: unit, Slots: make([]models.SlotView, 0, len(svc.TimeSlots))}
			for _, ts := range svc.TimeSlots {
				b := FindSlotBooking(bookings, svc.ID, unit, ts.ID)
				state := StateOf(svc, b)
				sv := models.SlotView{
					TimeSlot: ts,
					State:    state,
					Actions:  AllowedActions(state, audience),
				}
				if audience == AudienceAdmin && b != nil {
					copied := *b
					sv.Booking = &copied
				}
				uv.Slots = append(uv.Slots, sv)
			}
			view.Units = append(view.Units, uv)
		}
		grid.Services = append(grid.Services, view)
	}
	return grid
}

func preferenceRequests(serviceID string, bookings []models.Booking) []models.Booking {
	var out []models.Booking
	for _, b := range bookings {
		if b.ServiceID == serviceID && !b.IsSlotBooking() && b.Status == models.StatusConfirmed {
			out = append(out, b)
		}
	}
	return out
}
