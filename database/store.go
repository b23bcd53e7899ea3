// Package database implements the document store on MongoDB, plus an
// in-process Memory store with the same method set.
//
// Single-document writes are atomic. Nothing here spans documents.
package database

import (
	"context"
	"errors"
	"time"

	"cafe-ordering/apperr"
	"cafe-ordering/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	GuestCollection     = "guests"
	MenuCollection      = "menu"
	OrderCollection     = "orders"
	AnalyticsCollection = "analytics"
	UserCollection      = "user"
)

type Store struct {
	client    *mongo.Client
	guests    *mongo.Collection
	menu      *mongo.Collection
	orders    *mongo.Collection
	analytics *mongo.Collection
	users     *mongo.Collection
}

func NewStore(client *mongo.Client, database string) *Store {
	return &Store{
		client:    client,
		guests:    OpenCollection(client, database, GuestCollection),
		menu:      OpenCollection(client, database, MenuCollection),
		orders:    OpenCollection(client, database, OrderCollection),
		analytics: OpenCollection(client, database, AnalyticsCollection),
		users:     OpenCollection(client, database, UserCollection),
	}
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the secondary indexes the queries rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.menu.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}, {Key: "is_available", Value: 1}},
	})
	if err != nil {
		return apperr.Remote("database.EnsureIndexes", err)
	}
	_, err = s.orders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "guest_id", Value: 1}, {Key: "created_at", Value: 1}}},
	})
	if err != nil {
		return apperr.Remote("database.EnsureIndexes", err)
	}
	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return apperr.Remote("database.EnsureIndexes", err)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, op string, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, apperr.Remote(op, err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, apperr.Remote(op, err)
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, op, what string, filter any) (T, error) {
	var v T
	err := coll.FindOne(ctx, filter).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return v, apperr.NotFoundf(op, "%s was not found", what)
	}
	if err != nil {
		return v, apperr.Remote(op, err)
	}
	return v, nil
}

func setFields(ctx context.Context, coll *mongo.Collection, op, what, id string, fields bson.D) error {
	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.D{{Key: "$set", Value: fields}})
	if err != nil {
		return apperr.Remote(op, err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFoundf(op, "%s was not found", what)
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, op, what, id string) error {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Remote(op, err)
	}
	if result.DeletedCount == 0 {
		return apperr.NotFoundf(op, "%s was not found", what)
	}
	return nil
}

// Guests

func (s *Store) ListGuests(ctx context.Context) ([]models.Guest, error) {
	return findAll[models.Guest](ctx, s.guests, "database.ListGuests", bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (s *Store) GetGuest(ctx context.Context, id string) (models.Guest, error) {
	return findOne[models.Guest](ctx, s.guests, "database.GetGuest", "guest", bson.M{"_id": id})
}

func (s *Store) InsertGuest(ctx context.Context, g models.Guest) error {
	_, err := s.guests.InsertOne(ctx, g)
	return apperr.Remote("database.InsertGuest", err)
}

func (s *Store) SetGuestActive(ctx context.Context, id string, active bool) error {
	return setFields(ctx, s.guests, "database.SetGuestActive", "guest", id, bson.D{{Key: "is_active", Value: active}})
}

func (s *Store) DeleteGuest(ctx context.Context, id string) error {
	return deleteByID(ctx, s.guests, "database.DeleteGuest", "guest", id)
}

// Menu

func (s *Store) ListMenuItems(ctx context.Context, f models.MenuFilter) ([]models.MenuItem, error) {
	filter := bson.M{}
	if f.Category != nil {
		filter["category"] = *f.Category
	}
	if f.AvailableOnly {
		filter["is_available"] = true
	}
	return findAll[models.MenuItem](ctx, s.menu, "database.ListMenuItems", filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (s *Store) GetMenuItem(ctx context.Context, id string) (models.MenuItem, error) {
	return findOne[models.MenuItem](ctx, s.menu, "database.GetMenuItem", "menu item", bson.M{"_id": id})
}

func (s *Store) InsertMenuItem(ctx context.Context, item models.MenuItem) error {
	_, err := s.menu.InsertOne(ctx, item)
	return apperr.Remote("database.InsertMenuItem", err)
}

func (s *Store) SetMenuItemAvailability(ctx context.Context, id string, available bool) error {
	return setFields(ctx, s.menu, "database.SetMenuItemAvailability", "menu item", id, bson.D{{Key: "is_available", Value: available}})
}

func (s *Store) DeleteMenuItem(ctx context.Context, id string) error {
	return deleteByID(ctx, s.menu, "database.DeleteMenuItem", "menu item", id)
}

// Orders

func (s *Store) InsertOrder(ctx context.Context, o models.Order) error {
	_, err := s.orders.InsertOne(ctx, o)
	return apperr.Remote("database.InsertOrder", err)
}

func (s *Store) GetOrder(ctx context.Context, id string) (models.Order, error) {
	return findOne[models.Order](ctx, s.orders, "database.GetOrder", "order", bson.M{"_id": id})
}

// ListOrders returns every order, oldest first.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	return findAll[models.Order](ctx, s.orders, "database.ListOrders", bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (s *Store) ListOrdersByGuest(ctx context.Context, guestID string) ([]models.Order, error) {
	return findAll[models.Order](ctx, s.orders, "database.ListOrdersByGuest", bson.M{"guest_id": guestID})
}

func (s *Store) SetOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	return setFields(ctx, s.orders, "database.SetOrderStatus", "order", id, bson.D{{Key: "status", Value: status}})
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	return deleteByID(ctx, s.orders, "database.DeleteOrder", "order", id)
}

// WatchOrders opens a change stream on the orders collection and signals
// once per change. Change streams need a replica set. The channel is
// closed when ctx ends or the stream fails.
func (s *Store) WatchOrders(ctx context.Context) (<-chan struct{}, error) {
	stream, err := s.orders.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, apperr.Remote("database.WatchOrders", err)
	}
	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}()
	return ch, nil
}

// Analytics

// IncrementItem merge-upserts the counter document for itemID.
func (s *Store) IncrementItem(ctx context.Context, itemID, name string, at time.Time) error {
	_, err := s.analytics.UpdateOne(ctx,
		bson.M{"_id": itemID},
		bson.D{
			{Key: "$inc", Value: bson.D{{Key: "order_count", Value: 1}}},
			{Key: "$set", Value: bson.D{{Key: "last_ordered", Value: at}, {Key: "name", Value: name}}},
		},
		options.Update().SetUpsert(true),
	)
	return apperr.Remote("database.IncrementItem", err)
}

func (s *Store) ListAnalytics(ctx context.Context) ([]models.AnalyticsCounter, error) {
	return findAll[models.AnalyticsCounter](ctx, s.analytics, "database.ListAnalytics", bson.M{},
		options.Find().SetSort(bson.D{{Key: "order_count", Value: -1}}))
}

// Users

func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return findOne[models.User](ctx, s.users, "database.FindUserByEmail", "user", bson.M{"email": email})
}

func (s *Store) UserExists(ctx context.Context, email, phone string) (bool, error) {
	count, err := s.users.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"phone": phone},
	}})
	if err != nil {
		return false, apperr.Remote("database.UserExists", err)
	}
	return count > 0, nil
}

func (s *Store) InsertUser(ctx context.Context, u models.User) error {
	_, err := s.users.InsertOne(ctx, u)
	return apperr.Remote("database.InsertUser", err)
}

func (s *Store) UpdateTokens(ctx context.Context, userID, token, refreshToken string, at time.Time) error {
	return setFields(ctx, s.users, "database.UpdateTokens", "user", userID, bson.D{
		{Key: "token", Value: token},
		{Key: "refresh_token", Value: refreshToken},
		{Key: "updated_at", Value: at},
	})
}
