package bookingsRepo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestMapWriteError(t *testing.T) {
	cabinDup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: bookings index: " + cabinIndexName + " dup key",
	}}}
	idDup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: bookings index: _id_ dup key",
	}}}

	assert.ErrorIs(t, mapWriteError(cabinDup), ErrCabinTaken)
	assert.ErrorIs(t, mapWriteError(idDup), ErrAlreadyExists)
	assert.False(t, errors.Is(mapWriteError(idDup), ErrCabinTaken))
	assert.ErrorIs(t, mapWriteError(context.DeadlineExceeded), ErrUnavailable)
	assert.Nil(t, mapWriteError(nil))

	other := errors.New("bad document")
	assert.Equal(t, other, mapWriteError(other))
}

func TestFirestoreUnavailable(t *testing.T) {
	assert.ErrorIs(t, firestoreUnavailable(status.Error(codes.Unavailable, "connection refused")), ErrUnavailable)
	assert.ErrorIs(t, firestoreUnavailable(status.Error(codes.DeadlineExceeded, "too slow")), ErrUnavailable)
	assert.False(t, errors.Is(firestoreUnavailable(status.Error(codes.PermissionDenied, "rules")), ErrUnavailable))
	assert.Nil(t, firestoreUnavailable(nil))
}
