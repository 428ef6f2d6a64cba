package jsonfile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"reservation_service/internal/lib/logger/sl"
	"reservation_service/internal/models"
)

// Repo is the reservation store: an in-memory insertion-ordered list mirrored
// to a single JSON file. Every append rewrites the whole file. The mutex
// keeps concurrent POSTs from losing each other's read-modify-write.
type Repo struct {
	mu           sync.Mutex
	path         string
	reservations []models.Reservation
	lastID       int64
}

// Open загружает существующие брони из файла, если он есть.
// A file that does not parse is logged and the store starts empty.
func Open(log *slog.Logger, path string) *Repo {
	const op = "storage.jsonfile.Open"

	r := &Repo{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r
	}
	if err != nil {
		log.Error("failed to read reservations file", slog.String("op", op), sl.Err(err))
		return r
	}

	var reservations []models.Reservation
	if err := json.Unmarshal(data, &reservations); err != nil {
		log.Error("failed to parse reservations file", slog.String("op", op), sl.Err(err))
		return r
	}

	r.reservations = reservations
	for _, res := range reservations {
		if id, err := strconv.ParseInt(res.ID, 10, 64); err == nil && id > r.lastID {
			r.lastID = id
		}
	}

	return r
}

// SaveReservation assigns an id from the arrival time, appends the record and
// rewrites the backing file. If the rewrite fails the in-memory append is
// rolled back so GET never shows an unpersisted reservation.
func (r *Repo) SaveReservation(reservation models.Reservation) (string, error) {
	const op = "storage.jsonfile.SaveReservation"

	r.mu.Lock()
	defer r.mu.Unlock()

	reservation.ID = r.nextID()
	r.reservations = append(r.reservations, reservation)

	if err := r.persist(); err != nil {
		r.reservations = r.reservations[:len(r.reservations)-1]
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return reservation.ID, nil
}

// GetReservations возвращает все брони в порядке поступления.
func (r *Repo) GetReservations() []models.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Reservation, len(r.reservations))
	copy(out, r.reservations)
	return out
}

// nextID derives the id from the current unix-millisecond timestamp. Two
// arrivals inside the same millisecond get monotonically bumped so ids stay
// unique per record.
func (r *Repo) nextID() string {
	id := time.Now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id

	return strconv.FormatInt(id, 10)
}

func (r *Repo) persist() error {
	data, err := json.MarshalIndent(r.reservations, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.path, data, 0o644)
}
