package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"hotel_booking/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// Repo is the MySQL-backed hotel catalog.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	if err := h.Validate(); err != nil {
		return err
	}
	amenities := h.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amen, _ := json.Marshal(amenities)
	var lat, lon any
	if h.Coords != nil {
		lat, lon = h.Coords.Lat, h.Coords.Lon
	}
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID,
		h.Name,
		h.Location,
		h.Rating,
		h.ReviewCount,
		h.Price,
		h.Description,
		string(amen),
		valStr(h.Image),
		lat,
		lon,
	)
	return domain.Persistence("upsert hotel", err)
}

func (r *Repo) LogMiss(ctx context.Context, source string, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, source, status, reason)
	return domain.Persistence("log miss", err)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHotel(s scanner) (domain.Hotel, error) {
	var (
		h             domain.Hotel
		amenitiesJSON []byte
		image         sql.NullString
		lat, lon      sql.NullFloat64
	)
	if err := s.Scan(
		&h.ID,
		&h.Name,
		&h.Location,
		&h.Rating,
		&h.ReviewCount,
		&h.Price,
		&h.Description,
		&amenitiesJSON,
		&image,
		&lat, &lon,
	); err != nil {
		return domain.Hotel{}, err
	}
	h.Amenities = []string{}
	if len(amenitiesJSON) > 0 {
		_ = json.Unmarshal(amenitiesJSON, &h.Amenities)
	}
	if image.Valid && image.String != "" {
		img := image.String
		h.Image = &img
	}
	if lat.Valid && lon.Valid {
		h.Coords = &domain.Coords{Lat: lat.Float64, Lon: lon.Float64}
	}
	return h, nil
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Hotel{}, domain.Persistence("get hotel", err)
	}
	return h, nil
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, domain.Persistence("list hotels", err)
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, domain.Persistence("scan hotel", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list hotels", err)
	}
	return out, nil
}
