package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"carwash-tracker/internal/domain/entity"
	domainRepo "carwash-tracker/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// BookingsKey is the Redis key holding the whole booking collection.
const BookingsKey = "carwash:bookings"

// redisBookingStore keeps the collection as one JSON value under a
// single key. GET and SET are atomic per call, which is all the store
// contract requires.
type redisBookingStore struct {
	client *redis.Client
}

func NewRedisBookingStore(client *redis.Client) domainRepo.BookingStore {
	return &redisBookingStore{client: client}
}

func (s *redisBookingStore) LoadAll(ctx context.Context) ([]entity.Booking, error) {
	data, err := s.client.Get(ctx, BookingsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []entity.Booking{}, nil
		}
		return nil, fmt.Errorf("load bookings from redis: %w", err)
	}

	var bookings []entity.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings from redis: %w", err)
	}
	if bookings == nil {
		bookings = []entity.Booking{}
	}
	return bookings, nil
}

func (s *redisBookingStore) SaveAll(ctx context.Context, bookings []entity.Booking) error {
	if bookings == nil {
		bookings = []entity.Booking{}
	}

	data, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}

	if err := s.client.Set(ctx, BookingsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("save bookings to redis: %w", err)
	}
	return nil
}
