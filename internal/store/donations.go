package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eagd-org/donation-server/internal/domain"
)

const donationTableName = "donations"

var donationColumns = []string{
	"id", "full_name", "phone", "email", "city", "address",
	"help_options", "device_type", "device_condition", "device_brand",
	"device_model", "device_content", "estimated_value", "device_age",
	"message", "privacy_policy", "status", "admin_notes", "source_country",
	"created_at", "updated_at",
}

// donationSortFields maps accepted sortBy values onto real columns. Anything
// else falls back to created_at.
var donationSortFields = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"status":     "status",
	"full_name":  "full_name",
	"city":       "city",
}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// DonationRepositoryPG implements DonationRepository on PostgreSQL.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a donation repository backed by the given pool.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

// Create inserts a new donation record. ID, CreatedAt and UpdatedAt must be
// populated by the caller; creation and update timestamps are equal on insert.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) error {
	query, args, err := psql().
		Insert(donationTableName).
		Columns(donationColumns...).
		Values(
			donation.ID, donation.FullName, donation.Phone, donation.Email,
			donation.City, donation.Address, donation.HelpOptions,
			donation.DeviceType, donation.DeviceCondition, donation.DeviceBrand,
			donation.DeviceModel, donation.DeviceContent, donation.EstimatedValue,
			donation.DeviceAge, donation.Message, donation.PrivacyPolicy,
			donation.Status, donation.AdminNotes, donation.SourceCountry,
			donation.CreatedAt, donation.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create donation query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

// buildListQuery assembles the paged SELECT for List.
func buildListQuery(params ListDonationsParams) (string, []any, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	sortCol, ok := donationSortFields[params.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	dir := "DESC"
	if params.SortOrder == SortAsc {
		dir = "ASC"
	}

	builder := psql().
		Select(donationColumns...).
		From(donationTableName).
		OrderBy(sortCol + " " + dir).
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit))
	if params.Status != "" {
		builder = builder.Where(sq.Eq{"status": params.Status})
	}
	return builder.ToSql()
}

// buildCountQuery assembles the total-count SELECT matching the same filter.
func buildCountQuery(params ListDonationsParams) (string, []any, error) {
	builder := psql().
		Select("count(*)").
		From(donationTableName)
	if params.Status != "" {
		builder = builder.Where(sq.Eq{"status": params.Status})
	}
	return builder.ToSql()
}

// List returns one page of donations plus the total count for pagination math.
func (r *DonationRepositoryPG) List(ctx context.Context, params ListDonationsParams) ([]domain.Donation, int64, error) {
	query, args, err := buildListQuery(params)
	if err != nil {
		return nil, 0, fmt.Errorf("build list donations query: %w", err)
	}

	donations := []domain.Donation{}
	if err := pgxscan.Select(ctx, r.pool, &donations, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list donations: %w", err)
	}

	countQuery, countArgs, err := buildCountQuery(params)
	if err != nil {
		return nil, 0, fmt.Errorf("build count donations query: %w", err)
	}

	var total int64
	if err := pgxscan.Get(ctx, r.pool, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count donations: %w", err)
	}

	return donations, total, nil
}

// Get fetches a single donation by id.
func (r *DonationRepositoryPG) Get(ctx context.Context, id string) (*domain.Donation, error) {
	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get donation query: %w", err)
	}

	var donation domain.Donation
	if err := pgxscan.Get(ctx, r.pool, &donation, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get donation: %w", err)
	}
	return &donation, nil
}

// buildUpdateQuery assembles the partial UPDATE for Update. Only fields
// present in params are written; updated_at is always refreshed.
func buildUpdateQuery(id string, params UpdateDonationParams, now time.Time) (string, []any, error) {
	set := map[string]any{"updated_at": now}
	if params.FullName != nil {
		set["full_name"] = *params.FullName
	}
	if params.Phone != nil {
		set["phone"] = *params.Phone
	}
	if params.Email != nil {
		set["email"] = *params.Email
	}
	if params.City != nil {
		set["city"] = *params.City
	}
	if params.Address != nil {
		set["address"] = *params.Address
	}
	if params.HelpOptions != nil {
		set["help_options"] = *params.HelpOptions
	}
	if params.DeviceType != nil {
		set["device_type"] = *params.DeviceType
	}
	if params.DeviceCondition != nil {
		set["device_condition"] = *params.DeviceCondition
	}
	if params.DeviceBrand != nil {
		set["device_brand"] = *params.DeviceBrand
	}
	if params.DeviceModel != nil {
		set["device_model"] = *params.DeviceModel
	}
	if params.DeviceContent != nil {
		set["device_content"] = *params.DeviceContent
	}
	if params.EstimatedValue != nil {
		set["estimated_value"] = *params.EstimatedValue
	}
	if params.DeviceAge != nil {
		set["device_age"] = *params.DeviceAge
	}
	if params.Message != nil {
		set["message"] = *params.Message
	}
	if params.Status != nil {
		set["status"] = *params.Status
	}
	if params.AdminNotes != nil {
		set["admin_notes"] = *params.AdminNotes
	}

	return psql().
		Update(donationTableName).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(donationColumns, ", ")).
		ToSql()
}

// Update merges the provided fields into the record and returns the updated
// row, or domain.ErrNotFound when the id is unknown.
func (r *DonationRepositoryPG) Update(ctx context.Context, id string, params UpdateDonationParams) (*domain.Donation, error) {
	query, args, err := buildUpdateQuery(id, params, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("build update donation query: %w", err)
	}

	var donation domain.Donation
	if err := pgxscan.Get(ctx, r.pool, &donation, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update donation: %w", err)
	}
	return &donation, nil
}

// Delete removes the record, reporting domain.ErrNotFound for unknown ids.
func (r *DonationRepositoryPG) Delete(ctx context.Context, id string) error {
	query, args, err := psql().
		Delete(donationTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete donation query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete donation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// StatsSummary counts records grouped by status; missing statuses stay zero.
func (r *DonationRepositoryPG) StatsSummary(ctx context.Context) (domain.StatsSummary, error) {
	query, args, err := psql().
		Select("status", "count(*) AS n").
		From(donationTableName).
		GroupBy("status").
		ToSql()
	if err != nil {
		return domain.StatsSummary{}, fmt.Errorf("build stats query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return domain.StatsSummary{}, fmt.Errorf("stats summary: %w", err)
	}
	defer rows.Close()

	var summary domain.StatsSummary
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return domain.StatsSummary{}, fmt.Errorf("stats summary scan: %w", err)
		}
		switch domain.Status(status) {
		case domain.StatusPending:
			summary.Pending = n
		case domain.StatusProcessing:
			summary.Processing = n
		case domain.StatusCompleted:
			summary.Completed = n
		case domain.StatusCancelled:
			summary.Cancelled = n
		}
		summary.Total += n
	}
	if err := rows.Err(); err != nil {
		return domain.StatsSummary{}, fmt.Errorf("stats summary rows: %w", err)
	}
	return summary, nil
}

var _ DonationRepository = (*DonationRepositoryPG)(nil)
