package models

// SlotState is the display status of a slot, derived from the service
// default and any booking on it.
type SlotState string

const (
	SlotFree          SlotState = "livre"
	SlotBooked        SlotState = "agendado"
	SlotBlocked       SlotState = "bloqueado"
	SlotClosed        SlotState = "fechado"
	SlotAdminReleased SlotState = "disponivel_admin"
)

// SlotAction is something a caller may do to a slot in a given state.
type SlotAction string

const (
	ActionReserve SlotAction = "reserve"
	ActionBlock   SlotAction = "block"
	ActionUnblock SlotAction = "unblock"
	ActionRelease SlotAction = "release"
	ActionRevoke  SlotAction = "revoke"
	ActionCancel  SlotAction = "cancel"
	ActionUpdate  SlotAction = "update"
)

// SlotView is one cell of the day grid.
type SlotView struct {
	TimeSlot TimeSlot     `json:"timeSlot"`
	State    SlotState    `json:"state"`
	Actions  []SlotAction `json:"actions"`
	Booking  *Booking     `json:"booking,omitempty"` // admin view only
}

// UnitView groups the slots of one physical unit.
type UnitView struct {
	Unit  string     `json:"unit"`
	Slots []SlotView `json:"slots"`
}

// ServiceView is one service on the day grid.
type ServiceView struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Type          ServiceType   `json:"type"`
	DefaultStatus DefaultStatus `json:"defaultStatus"`
	Units         []UnitView    `json:"units,omitempty"`

	// preference services
	AdditionalOptions []string  `json:"additionalOptions,omitempty"`
	Requestable       bool      `json:"requestable,omitempty"`
	Requests          []Booking `json:"requests,omitempty"` // admin view only
}

// DayGrid is the full booking picture for one date.
type DayGrid struct {
	Date     string        `json:"date"`
	Services []ServiceView `json:"services"`
}
