package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeIntegrityCheck = "booking:integrity_check"

// IntegrityCheckPayload names the date to scan; empty means today.
type IntegrityCheckPayload struct {
	Date string `json:"date,omitempty"`
}

func NewIntegrityCheckTask(payload IntegrityCheckPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("NewIntegrityCheckTask: %w", err)
	}
	return asynq.NewTask(TypeIntegrityCheck, b, asynq.MaxRetry(1), asynq.Timeout(2*time.Minute)), nil
}

func ParseIntegrityCheckPayload(task *asynq.Task) (IntegrityCheckPayload, error) {
	var p IntegrityCheckPayload
	if len(task.Payload()) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeIntegrityCheck, err)
	}
	return p, nil
}
