package mongo

import (
	"Newsroom/internal/model"
	"Newsroom/internal/repository"
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	logEntryCollection = "log_entries"
	counterCollection  = "counters"
)

// logEntryRepoImpl numeric ids come from a counter document.
type logEntryRepoImpl struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewLogEntryRepo(db *mongo.Database) repository.LogEntryRepo {
	return &logEntryRepoImpl{
		col:      db.Collection(logEntryCollection),
		counters: db.Collection(counterCollection),
	}
}

// EnsureIndexes creates the timestamp and level indexes used by the admin list.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(logEntryCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "level", Value: 1}, {Key: "logger_name", Value: 1}}},
	})
	return err
}

func (s *logEntryRepoImpl) nextID(ctx context.Context) (uint64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": logEntryCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return uint64(counter.Seq), nil
}

func (s *logEntryRepoImpl) SaveLogEntry(ctx context.Context, entry *model.LogEntry) error {
	id, err := s.nextID(ctx)
	if err != nil {
		return err
	}
	entry.ID = id
	_, err = s.col.InsertOne(ctx, entry)
	return err
}

func (s *logEntryRepoImpl) ListLogEntries(ctx context.Context, q repository.LogEntryQuery) ([]*model.LogEntry, int64, error) {
	filter := bson.M{}
	if q.Level != "" {
		filter["level"] = q.Level
	}
	if q.LoggerName != "" {
		filter["logger_name"] = q.LoggerName
	}
	if q.Query != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(q.Query), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"message": pattern},
			bson.M{"logger_name": pattern},
			bson.M{"pathname": pattern},
		}
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	if q.Page.Offset > 0 {
		opts.SetSkip(int64(q.Page.Offset))
	}
	if q.Page.Limit > 0 {
		opts.SetLimit(int64(q.Page.Limit))
	}
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	entries := make([]*model.LogEntry, 0)
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *logEntryRepoImpl) GetLogEntry(ctx context.Context, id uint64) (*model.LogEntry, error) {
	entry := &model.LogEntry{}
	err := s.col.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func (s *logEntryRepoImpl) DeleteLogEntry(ctx context.Context, id uint64) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": int64(id)})
	return err
}

func (s *logEntryRepoImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
