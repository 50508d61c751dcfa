package tasks

import (
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrityCheckTaskPayload(t *testing.T) {
	task, err := NewIntegrityCheckTask(IntegrityCheckPayload{Date: "2026-03-14"})
	require.NoError(t, err)
	assert.Equal(t, TypeIntegrityCheck, task.Type())

	p, err := ParseIntegrityCheckPayload(task)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", p.Date)
}

func TestParseIntegrityCheckPayload_EmptyMeansToday(t *testing.T) {
	p, err := ParseIntegrityCheckPayload(asynq.NewTask(TypeIntegrityCheck, nil))
	require.NoError(t, err)
	assert.Empty(t, p.Date)

	_, err = ParseIntegrityCheckPayload(asynq.NewTask(TypeIntegrityCheck, []byte("{")))
	assert.Error(t, err)
}
