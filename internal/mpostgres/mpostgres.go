package mpostgres

import (
	"context"
	"errors"
	"fmt"

	"notamadmin/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotamNotFound = errors.New("notam not found")
	// ErrUnknownAirport means the airport id has no row in airports.
	ErrUnknownAirport = errors.New("unknown airport")
)

const foreignKeyViolation = "23503"

type NotamService interface {
	ListNotams(ctx context.Context) ([]model.Notam, error)
	GetNotam(ctx context.Context, id uint) (model.Notam, error)
	UpdateNotamMessage(ctx context.Context, id uint, message string) (model.Notam, error)
	FindNotamByMessage(ctx context.Context, airportID, message string) (model.Notam, bool, error)
	CreateNotam(ctx context.Context, notam model.Notam) (model.Notam, error)
}

type notam struct {
	pool *pgxpool.Pool
}

func NewNotamService(pool *pgxpool.Pool) NotamService {
	return &notam{
		pool: pool,
	}
}

const selectNotamWithAirport = `
	SELECT n.id, n.airport_id, COALESCE(n.city, ''), n.message, n.created_at, n.updated_at,
	       a.iata_code, a.airport_name
	FROM notams n
	LEFT JOIN airports a ON a.iata_code = n.airport_id
`

func scanNotamWithAirport(row pgx.Row) (model.Notam, error) {
	var n model.Notam
	var iata, airportName *string

	err := row.Scan(
		&n.ID,
		&n.AirportID,
		&n.City,
		&n.Message,
		&n.CreatedAt,
		&n.UpdatedAt,
		&iata,
		&airportName,
	)
	if err != nil {
		return model.Notam{}, err
	}

	if iata != nil {
		n.Airport = &model.Airport{IATACode: *iata}
		if airportName != nil {
			n.Airport.AirportName = *airportName
		}
	}
	return n, nil
}

func (r *notam) ListNotams(ctx context.Context) ([]model.Notam, error) {
	notams := []model.Notam{}

	rows, err := r.pool.Query(ctx, selectNotamWithAirport+` ORDER BY n.created_at DESC, n.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query notams: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		n, err := scanNotamWithAirport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notam: %w", err)
		}
		notams = append(notams, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notams, nil
}

func (r *notam) GetNotam(ctx context.Context, id uint) (model.Notam, error) {
	row := r.pool.QueryRow(ctx, selectNotamWithAirport+` WHERE n.id = $1`, id)
	n, err := scanNotamWithAirport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Notam{}, ErrNotamNotFound
	}
	if err != nil {
		return model.Notam{}, fmt.Errorf("get notam %d: %w", id, err)
	}
	return n, nil
}

func (r *notam) UpdateNotamMessage(ctx context.Context, id uint, message string) (model.Notam, error) {
	query := `
		UPDATE notams
		SET message = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, airport_id, COALESCE(city, ''), message, created_at, updated_at
	`

	var n model.Notam
	err := r.pool.QueryRow(ctx, query, message, id).Scan(
		&n.ID,
		&n.AirportID,
		&n.City,
		&n.Message,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Notam{}, ErrNotamNotFound
	}
	if err != nil {
		return model.Notam{}, fmt.Errorf("update notam %d: %w", id, err)
	}
	return n, nil
}

// FindNotamByMessage looks for a NOTAM for airportID whose message is
// byte-identical to message.
func (r *notam) FindNotamByMessage(ctx context.Context, airportID, message string) (model.Notam, bool, error) {
	query := `
		SELECT id, airport_id, COALESCE(city, ''), message, created_at, updated_at
		FROM notams
		WHERE airport_id = $1 AND message = $2
		LIMIT 1
	`

	var n model.Notam
	err := r.pool.QueryRow(ctx, query, airportID, message).Scan(
		&n.ID,
		&n.AirportID,
		&n.City,
		&n.Message,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Notam{}, false, nil
	}
	if err != nil {
		return model.Notam{}, false, fmt.Errorf("find notam for %s: %w", airportID, err)
	}
	return n, true, nil
}

func (r *notam) CreateNotam(ctx context.Context, n model.Notam) (model.Notam, error) {
	query := `
		INSERT INTO notams (airport_id, city, message)
		VALUES ($1, NULLIF($2, ''), $3)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, n.AirportID, n.City, n.Message).Scan(
		&n.ID,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return model.Notam{}, fmt.Errorf("create notam for %s: %w", n.AirportID, ErrUnknownAirport)
	}
	if err != nil {
		return model.Notam{}, fmt.Errorf("create notam for %s: %w", n.AirportID, err)
	}
	return n, nil
}
