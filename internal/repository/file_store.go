package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"carwash-tracker/internal/domain/entity"
	domainRepo "carwash-tracker/internal/domain/repository"
)

// fileBookingStore keeps the collection as one JSON document on disk.
// SaveAll writes to a temp file and renames it over the target so a
// crash mid-write never leaves a truncated document behind.
type fileBookingStore struct {
	path string
}

func NewFileBookingStore(path string) domainRepo.BookingStore {
	return &fileBookingStore{path: path}
}

func (s *fileBookingStore) LoadAll(ctx context.Context) ([]entity.Booking, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []entity.Booking{}, nil
		}
		return nil, fmt.Errorf("read bookings file %s: %w", s.path, err)
	}

	var bookings []entity.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings file %s: %w", s.path, err)
	}
	if bookings == nil {
		bookings = []entity.Booking{}
	}
	return bookings, nil
}

func (s *fileBookingStore) SaveAll(ctx context.Context, bookings []entity.Booking) error {
	if bookings == nil {
		bookings = []entity.Booking{}
	}

	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".bookings-*.json")
	if err != nil {
		return fmt.Errorf("create temp bookings file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp bookings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp bookings file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace bookings file %s: %w", s.path, err)
	}
	return nil
}
