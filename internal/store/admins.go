package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eagd-org/donation-server/internal/domain"
)

const adminTableName = "admins"

var adminColumns = []string{
	"id", "username", "email", "password_hash", "role", "last_login_at", "created_at",
}

// AdminRepositoryPG implements AdminRepository on PostgreSQL.
type AdminRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates an admin repository backed by the given pool.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepositoryPG {
	return &AdminRepositoryPG{pool: pool}
}

// Create persists a new administrator account. Username and email uniqueness
// violations surface as domain.ErrDuplicateAdmin.
func (r *AdminRepositoryPG) Create(ctx context.Context, admin *domain.Admin) error {
	query, args, err := psql().
		Insert(adminTableName).
		Columns(adminColumns...).
		Values(admin.ID, admin.Username, admin.Email, admin.PasswordHash, admin.Role, admin.LastLoginAt, admin.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create admin query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrDuplicateAdmin
		}
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

// FindByUsername looks up an admin account by its unique username.
func (r *AdminRepositoryPG) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return r.findOne(ctx, sq.Eq{"username": username})
}

// FindByID looks up an admin account by id.
func (r *AdminRepositoryPG) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *AdminRepositoryPG) findOne(ctx context.Context, where sq.Eq) (*domain.Admin, error) {
	query, args, err := psql().
		Select(adminColumns...).
		From(adminTableName).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find admin query: %w", err)
	}

	var admin domain.Admin
	if err := pgxscan.Get(ctx, r.pool, &admin, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &admin, nil
}

// Count reports how many administrator accounts exist.
func (r *AdminRepositoryPG) Count(ctx context.Context) (int64, error) {
	query, args, err := psql().
		Select("count(*)").
		From(adminTableName).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count admins query: %w", err)
	}

	var total int64
	if err := pgxscan.Get(ctx, r.pool, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return total, nil
}

// TouchLastLogin stamps the account's last successful login time.
func (r *AdminRepositoryPG) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	query, args, err := psql().
		Update(adminTableName).
		Set("last_login_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build touch last login query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

var _ AdminRepository = (*AdminRepositoryPG)(nil)
