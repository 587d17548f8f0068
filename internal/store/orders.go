package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mealcart_back_end/internal/apperr"
	"mealcart_back_end/internal/models"
)

// OrderStore owns the orders collection. All status mutations go
// through its guarded methods; callers never re-save a stale copy.
type OrderStore struct {
	col *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{col: db.Collection("orders")}
}

// Create assigns an id and creation time and inserts the order.
func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	if _, err := s.col.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *OrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

// MarkPaid applies PLACED → PAID and sets the settled amount as a
// single conditional write. The filter requires the order to still be
// PLACED, so a replayed webhook matches nothing and the first settled
// amount is never overwritten. Returns whether the transition was
// applied by this call; an order already past PLACED returns
// (false, nil) so webhook replays can be acknowledged.
func (s *OrderStore) MarkPaid(ctx context.Context, id primitive.ObjectID, amount int64) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusPlaced},
		bson.M{"$set": bson.M{"status": models.StatusPaid, "totalAmount": amount}},
	)
	if err != nil {
		return false, fmt.Errorf("mark paid: %w", err)
	}
	if res.ModifiedCount > 0 {
		return true, nil
	}

	// Nothing matched: either the order is already paid (or further
	// along) or it does not exist at all.
	if _, err := s.FindByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

// SetStatus overwrites the status without checking the current one.
// This mirrors the operator patch behavior the service has always had:
// restaurant staff can jump or correct statuses freely. Transition is
// the strict alternative.
func (s *OrderStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.Status) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("order not found")
	}
	return nil
}

// Transition applies the status only when it is the direct successor of
// the order's current status, as a compare-and-set on that current
// status so a concurrent mutation cannot slip in between read and
// write.
func (s *OrderStore) Transition(ctx context.Context, id primitive.ObjectID, next models.Status) error {
	order, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(next) {
		return apperr.Conflict(fmt.Sprintf("cannot transition from %s to %s", order.Status, next))
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": order.Status},
		bson.M{"$set": bson.M{"status": next}},
	)
	if err != nil {
		return fmt.Errorf("transition status: %w", err)
	}
	if res.ModifiedCount == 0 {
		return apperr.Conflict("order status changed concurrently")
	}
	return nil
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// OrderPage is the listing envelope: rows plus pagination, newest
// orders first.
type OrderPage struct {
	Rows       []models.Order `json:"rows"`
	Pagination Pagination     `json:"pagination"`
}

func (s *OrderStore) ListByUser(ctx context.Context, userID string, page Page) (*OrderPage, error) {
	return s.list(ctx, bson.M{"userId": userID}, page)
}

func (s *OrderStore) ListByRestaurant(ctx context.Context, restaurantID string, page Page) (*OrderPage, error) {
	return s.list(ctx, bson.M{"restaurantId": restaurantID}, page)
}

func (s *OrderStore) list(ctx context.Context, filter bson.M, page Page) (*OrderPage, error) {
	if page.Number < 1 {
		page.Number = 1
	}
	if page.Size < 1 {
		page.Size = 5
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(page.Number-1) * int64(page.Size)).
		SetLimit(int64(page.Size))

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	rows := make([]models.Order, 0, page.Size)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	pages := int((total + int64(page.Size) - 1) / int64(page.Size))
	return &OrderPage{
		Rows: rows,
		Pagination: Pagination{
			Total: total,
			Page:  page.Number,
			Pages: pages,
		},
	}, nil
}
