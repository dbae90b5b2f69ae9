package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/eparsel/eparsel/internal/domain/errors"
	"github.com/eparsel/eparsel/internal/domain/model"
	"github.com/eparsel/eparsel/internal/domain/repository"
)

// dbPool is the subset of pgxpool.Pool operations the storage relies on.
// pgxmock's pool satisfies it in tests.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type shipmentRepository struct {
	storage *Storage
}

// newPgxPool is swapped out in tests to avoid a live database.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (dbPool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Shipments() repository.ShipmentRepository {
	return &shipmentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS shipments (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL REFERENCES users(id),
            tracking_code TEXT UNIQUE NOT NULL,
            carrier_name TEXT NOT NULL,
            carrier_price DOUBLE PRECISION NOT NULL,
            weight TEXT NOT NULL,
            length TEXT NOT NULL,
            width TEXT NOT NULL,
            height TEXT NOT NULL,
            pickup TEXT NOT NULL,
            delivery TEXT NOT NULL,
            delivery_speed TEXT NOT NULL,
            include_compliance BOOLEAN NOT NULL DEFAULT FALSE,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            label_url TEXT NOT NULL DEFAULT '',
            pickup_time TEXT NOT NULL DEFAULT '',
            estimated_delivery TEXT NOT NULL DEFAULT '',
            total_price DOUBLE PRECISION NOT NULL,
            events JSONB NOT NULL DEFAULT '[]'
        )`,
		`CREATE INDEX IF NOT EXISTS idx_shipments_user ON shipments(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_shipments_status ON shipments(status, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, id, login, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (id, login, password_hash) VALUES ($1, $2, $3) RETURNING created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id, login, passwordHash).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.ID = id
	u.Login = login
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- ShipmentRepository implementation ---

const shipmentColumns = `id, user_id, tracking_code, carrier_name, carrier_price,
        weight, length, width, height, pickup, delivery, delivery_speed,
        include_compliance, status, created_at, label_url, pickup_time,
        estimated_delivery, total_price, events`

func scanShipment(row pgx.Row) (*model.Shipment, error) {
	var sh model.Shipment
	var status string
	err := row.Scan(&sh.ID, &sh.UserID, &sh.TrackingCode, &sh.Carrier.Name, &sh.Carrier.Price,
		&sh.Weight, &sh.Dimensions.Length, &sh.Dimensions.Width, &sh.Dimensions.Height,
		&sh.Pickup, &sh.Delivery, &sh.DeliverySpeed, &sh.IncludeCompliance, &status,
		&sh.CreatedAt, &sh.LabelURL, &sh.PickupTime, &sh.EstimatedDelivery, &sh.TotalPrice, &sh.Events)
	if err != nil {
		return nil, err
	}
	sh.Status = model.ShipmentStatus(status)
	if sh.Events == nil {
		sh.Events = []model.ShipmentEvent{}
	}
	return &sh, nil
}

func (r *shipmentRepository) ListByUser(ctx context.Context, userID string) ([]model.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Shipment, 0)
	for rows.Next() {
		sh, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *shipmentRepository) GetByID(ctx context.Context, id, userID string) (*model.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id=$1 AND user_id=$2`
	sh, err := scanShipment(r.storage.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return sh, nil
}

func (r *shipmentRepository) GetByTrackingCode(ctx context.Context, code string) (*model.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE tracking_code=$1`
	sh, err := scanShipment(r.storage.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return sh, nil
}

func (r *shipmentRepository) Add(ctx context.Context, shipment *model.Shipment) (*model.Shipment, error) {
	const query = `INSERT INTO shipments (id, user_id, tracking_code, carrier_name, carrier_price,
                        weight, length, width, height, pickup, delivery, delivery_speed,
                        include_compliance, status, created_at, label_url, pickup_time,
                        estimated_delivery, total_price, events)
                   VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`
	_, err := r.storage.pool.Exec(ctx, query,
		shipment.ID, shipment.UserID, shipment.TrackingCode, shipment.Carrier.Name, shipment.Carrier.Price,
		shipment.Weight, shipment.Dimensions.Length, shipment.Dimensions.Width, shipment.Dimensions.Height,
		shipment.Pickup, shipment.Delivery, shipment.DeliverySpeed, shipment.IncludeCompliance,
		string(shipment.Status), shipment.CreatedAt, shipment.LabelURL, shipment.PickupTime,
		shipment.EstimatedDelivery, shipment.TotalPrice, shipment.Events)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return shipment.Clone(), nil
}

func (r *shipmentRepository) Update(ctx context.Context, shipment *model.Shipment) (bool, error) {
	const query = `UPDATE shipments SET carrier_name=$3, carrier_price=$4, weight=$5, length=$6,
                        width=$7, height=$8, pickup=$9, delivery=$10, delivery_speed=$11,
                        include_compliance=$12, status=$13, label_url=$14, pickup_time=$15,
                        estimated_delivery=$16, total_price=$17, events=$18
                   WHERE id=$1 AND user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query,
		shipment.ID, shipment.UserID, shipment.Carrier.Name, shipment.Carrier.Price,
		shipment.Weight, shipment.Dimensions.Length, shipment.Dimensions.Width, shipment.Dimensions.Height,
		shipment.Pickup, shipment.Delivery, shipment.DeliverySpeed, shipment.IncludeCompliance,
		string(shipment.Status), shipment.LabelURL, shipment.PickupTime, shipment.EstimatedDelivery,
		shipment.TotalPrice, shipment.Events)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *shipmentRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	const query = `DELETE FROM shipments WHERE id=$1 AND user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *shipmentRepository) AddEvent(ctx context.Context, shipmentID string, event model.ShipmentEvent) (found bool, err error) {
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT status, events FROM shipments WHERE id=$1 FOR UPDATE`
		var status string
		var events []model.ShipmentEvent
		if err := tx.QueryRow(ctx, selectQuery, shipmentID).Scan(&status, &events); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		events = append(events, event)
		next := model.ShipmentStatus(status)
		if derived, ok := model.StatusForEvent(event.Status); ok {
			next = derived
		}

		const updateQuery = `UPDATE shipments SET status=$2, events=$3 WHERE id=$1`
		if _, err := tx.Exec(ctx, updateQuery, shipmentID, string(next), events); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (r *shipmentRepository) ListActive(ctx context.Context, limit int) ([]model.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments
                   WHERE status IN ('pending', 'picked_up', 'in_transit')
                   ORDER BY created_at
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Shipment, 0)
	for rows.Next() {
		sh, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
