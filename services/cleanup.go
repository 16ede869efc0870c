package services

import (
	"context"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// TerminalReturnStates are the return-request values considered concluded
// for purge purposes. A pending return is still in flight and is never
// purged.
var TerminalReturnStates = []string{
	models.ReturnApproved,
	models.ReturnRejected,
	models.ReturnCompleted,
}

// PurgeEligible reports whether an order may be deleted by the cleanup
// sweep: its return request has concluded and its scheduled date has
// passed.
func PurgeEligible(o models.Order, now time.Time) bool {
	terminal := false
	for _, state := range TerminalReturnStates {
		if o.ReturnRequest == state {
			terminal = true
			break
		}
	}
	return terminal && o.ScheduledDate.Before(now)
}

// CleanupService deletes concluded orders past their scheduled date.
type CleanupService struct {
	Orders *mongo.Collection
	Logger *zap.Logger
}

// NewCleanupService creates a CleanupService over the shared client.
func NewCleanupService(client *mongo.Client, dbName string, logger *zap.Logger) *CleanupService {
	return &CleanupService{
		Orders: client.Database(dbName).Collection("orders"),
		Logger: logger,
	}
}

// Run performs one sweep and returns the number of orders deleted. The
// sweep is a single batch delete: a transient store failure aborts the
// whole run without partial bookkeeping. Running twice with no newly
// eligible orders deletes zero and still succeeds.
func (s *CleanupService) Run(ctx context.Context) (int64, error) {
	res, err := s.Orders.DeleteMany(ctx, bson.M{
		"return_request": bson.M{"$in": TerminalReturnStates},
		"scheduled_date": bson.M{"$lt": time.Now()},
	})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount > 0 {
		s.Logger.Info("cleanup sweep removed concluded orders",
			zap.Int64("deleted", res.DeletedCount))
	}
	return res.DeletedCount, nil
}
