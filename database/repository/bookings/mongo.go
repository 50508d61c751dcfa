package bookingsRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rosa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const cabinIndexName = "uniq_confirmed_cabin_service_date"

// MongoBookingRepo implements BookingRepository using MongoDB. Transactions
// need a replica set.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	logger      *zap.Logger
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo(db *mongo.Database, logger *zap.Logger) *MongoBookingRepo {
	return &MongoBookingRepo{
		bookingColl: db.Collection(CollectionName),
		logger:      logger,
	}
}

// EnsureIndexes creates the date index and the partial unique index that
// backs the one-confirmed-booking-per-cabin rule.
func (repo *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("date"),
		},
		{
			Keys: bson.D{
				{Key: "serviceId", Value: 1},
				{Key: "cabinName", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().
				SetName(cabinIndexName).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(models.StatusConfirmed)}),
		},
	}
	if _, err := repo.bookingColl.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) decodeCursor(ctx context.Context, cursor *mongo.Cursor) ([]models.Booking, error) {
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		if err := b.Validate(); err != nil {
			repo.logger.Warn("skipping invalid booking document", zap.String("id", b.ID), zap.Error(err))
			continue
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

// ListByDate returns every booking document for date.
func (repo *MongoBookingRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	cursor, err := repo.bookingColl.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for %s: %w", date, mongoUnavailable(err))
	}
	return repo.decodeCursor(ctx, cursor)
}

func findOne(ctx context.Context, coll *mongo.Collection, filter bson.M) (*models.Booking, error) {
	var b models.Booking
	if err := coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking: %w", mongoUnavailable(err))
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func cabinFilter(serviceID, cabinName, date string) bson.M {
	return bson.M{
		"serviceId": serviceID,
		"cabinName": cabinName,
		"date":      date,
		"status":    string(models.StatusConfirmed),
	}
}

// GetByID fetches one booking.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return findOne(ctx, repo.bookingColl, bson.M{"_id": id})
}

// FindConfirmedForCabin runs the cabin uniqueness query outside any transaction.
func (repo *MongoBookingRepo) FindConfirmedForCabin(ctx context.Context, serviceID, cabinName, date string) (*models.Booking, error) {
	b, err := findOne(ctx, repo.bookingColl, cabinFilter(serviceID, cabinName, date))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return b, err
}

// RunInTransaction runs fn inside a multi-document transaction.
func (repo *MongoBookingRepo) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", mongoUnavailable(err))
	}
	defer sess.EndSession(ctx)

	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc, &mongoTx{coll: repo.bookingColl, sc: sc}); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
	return mapWriteError(err)
}

// mapWriteError turns driver errors into repository sentinels.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), cabinIndexName) {
			return fmt.Errorf("%w: %v", ErrCabinTaken, err)
		}
		return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
	}
	var labeled mongo.LabeledError
	if errors.As(err, &labeled) && labeled.HasErrorLabel("TransientTransactionError") {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return mongoUnavailable(err)
}

// mongoUnavailable tags errors caused by the server being unreachable.
func mongoUnavailable(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// WatchDate re-lists the date's bookings on every change to the collection.
func (repo *MongoBookingRepo) WatchDate(ctx context.Context, date string, onChange func([]models.Booking)) error {
	stream, err := repo.bookingColl.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return fmt.Errorf("failed to open change stream: %w", err)
	}
	defer stream.Close(context.Background())

	bookings, err := repo.ListByDate(ctx, date)
	if err != nil {
		return err
	}
	onChange(bookings)

	for stream.Next(ctx) {
		bookings, err := repo.ListByDate(ctx, date)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		onChange(bookings)
	}
	if ctx.Err() != nil {
		return nil
	}
	return stream.Err()
}

// Ping checks the server connection.
func (repo *MongoBookingRepo) Ping(ctx context.Context) error {
	return repo.bookingColl.Database().Client().Ping(ctx, nil)
}

type mongoTx struct {
	coll *mongo.Collection
	sc   mongo.SessionContext
}

func (t *mongoTx) GetSlot(ref models.SlotRef) (*models.Booking, error) {
	b, err := t.Get(ref.ID())
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return b, err
}

func (t *mongoTx) Get(id string) (*models.Booking, error) {
	return findOne(t.sc, t.coll, bson.M{"_id": id})
}

func (t *mongoTx) FindConfirmedForCabin(serviceID, cabinName, date string) (*models.Booking, error) {
	b, err := findOne(t.sc, t.coll, cabinFilter(serviceID, cabinName, date))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return b, err
}

func (t *mongoTx) Create(b *models.Booking) error {
	if _, err := t.coll.InsertOne(t.sc, b); err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (t *mongoTx) Put(b *models.Booking) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := t.coll.ReplaceOne(t.sc, bson.M{"_id": b.ID}, b, opts); err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (t *mongoTx) Delete(id string) error {
	if _, err := t.coll.DeleteOne(t.sc, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("error deleting booking %s: %w", id, err)
	}
	return nil
}
