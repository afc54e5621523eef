package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-sql-driver/mysql"

	"stayfinder/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func (r *Repo) CreateHotel(ctx context.Context, h domain.Hotel) error {
	fac, _ := json.Marshal(h.Facilities)
	imgs, _ := json.Marshal(h.ImageURLs)
	_, err := r.db.ExecContext(ctx, insertHotelSQL,
		h.ID, h.OwnerID, h.Name, h.City, h.Country, h.Description, h.Type,
		h.AdultCount, h.ChildCount, string(fac), h.PricePerNight, h.StarRating,
		string(imgs), h.LastUpdated,
	)
	return err
}

func (r *Repo) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	fac, _ := json.Marshal(h.Facilities)
	imgs, _ := json.Marshal(h.ImageURLs)
	_, err := r.db.ExecContext(ctx, updateHotelSQL,
		h.Name, h.City, h.Country, h.Description, h.Type,
		h.AdultCount, h.ChildCount, string(fac), h.PricePerNight, h.StarRating,
		string(imgs), h.LastUpdated,
		h.ID, h.OwnerID,
	)
	return err
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	h, err := r.scanHotelRow(r.db.QueryRowContext(ctx, getHotelSQL, id))
	if err != nil {
		return domain.Hotel{}, err
	}
	h.Bookings, err = r.listBookings(ctx, h.ID)
	if err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

// GetOwnedHotel answers ErrNotFound both for absent ids and for hotels owned
// by someone else, so existence never leaks across owners.
func (r *Repo) GetOwnedHotel(ctx context.Context, id, ownerID string) (domain.Hotel, error) {
	h, err := r.scanHotelRow(r.db.QueryRowContext(ctx, getOwnedHotelSQL, id, ownerID))
	if err != nil {
		return domain.Hotel{}, err
	}
	h.Bookings, err = r.listBookings(ctx, h.ID)
	if err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

func (r *Repo) ListOwnedHotels(ctx context.Context, ownerID string) ([]domain.Hotel, error) {
	return r.queryHotels(ctx, listOwnedHotelsSQL, ownerID)
}

func (r *Repo) Snapshot(ctx context.Context) ([]domain.Hotel, error) {
	return r.queryHotels(ctx, snapshotSQL)
}

// AppendBooking snapshots the hotel's current price into the booking cost and
// appends, all inside one transaction; a known idempotency key returns the
// earlier booking instead of inserting a duplicate.
func (r *Repo) AppendBooking(ctx context.Context, hotelID string, b domain.Booking) (domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Booking{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var price float64
	if err := tx.QueryRowContext(ctx, lockHotelPriceSQL, hotelID).Scan(&price); err != nil {
		if err == sql.ErrNoRows {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}

	if b.IdempotencyKey != "" {
		existing, err := scanBooking(tx.QueryRowContext(ctx, getBookingByKeySQL, hotelID, b.IdempotencyKey))
		if err == nil {
			return existing, tx.Commit()
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.Booking{}, err
		}
	}

	b.TotalCost = float64(b.Range().Nights()) * price
	_, err = tx.ExecContext(ctx, insertBookingSQL,
		b.ID, hotelID, b.UserID, b.FirstName, b.LastName, b.Email,
		b.AdultCount, b.ChildCount, b.CheckIn, b.CheckOut, b.TotalCost,
		nullStr(b.IdempotencyKey), b.CreatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			// lost an idempotency race to a concurrent retry
			_ = tx.Rollback()
			return scanBooking(r.db.QueryRowContext(ctx, getBookingByKeySQL, hotelID, b.IdempotencyKey))
		}
		return domain.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

// ---- scanning ----

type rowScanner interface{ Scan(dest ...any) error }

func (r *Repo) scanHotelRow(row rowScanner) (domain.Hotel, error) {
	var h domain.Hotel
	var fac, imgs []byte
	err := row.Scan(
		&h.ID, &h.OwnerID, &h.Name, &h.City, &h.Country, &h.Description, &h.Type,
		&h.AdultCount, &h.ChildCount, &fac, &h.PricePerNight, &h.StarRating,
		&imgs, &h.LastUpdated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, err
	}
	_ = json.Unmarshal(fac, &h.Facilities)
	_ = json.Unmarshal(imgs, &h.ImageURLs)
	return h, nil
}

func (r *Repo) queryHotels(ctx context.Context, q string, args ...any) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := r.scanHotelRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var b domain.Booking
	var key sql.NullString
	err := row.Scan(
		&b.ID, &b.UserID, &b.FirstName, &b.LastName, &b.Email,
		&b.AdultCount, &b.ChildCount, &b.CheckIn, &b.CheckOut, &b.TotalCost,
		&key, &b.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}
	if key.Valid {
		b.IdempotencyKey = key.String
	}
	return b, nil
}

func (r *Repo) listBookings(ctx context.Context, hotelID string) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
