package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/pkg/errcodes"
)

const bidColumns = `id, item_id, user_id, title, max_bid, current_bid, status, created_at, updated_at`

type BidRepository struct {
	db *sqlx.DB
}

func NewBidRepository(db *sqlx.DB) *BidRepository {
	return &BidRepository{db: db}
}

// ListActive возвращает все нетерминальные записи.
func (r *BidRepository) ListActive(ctx context.Context) ([]entity.BidRecord, error) {
	query, args, err := sqlx.In(`SELECT `+bidColumns+` FROM bids WHERE status NOT IN (?) ORDER BY id`, terminalStatusArgs())
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to build query")
	}

	var schemas []bidSchema
	if err := r.db.SelectContext(ctx, &schemas, r.db.Rebind(query), args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list active bids")
	}

	return bidsToDomain(schemas), nil
}

func (r *BidRepository) ListByUser(ctx context.Context, userID int64) ([]entity.BidRecord, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE user_id = $1 ORDER BY id`

	var schemas []bidSchema
	if err := r.db.SelectContext(ctx, &schemas, query, userID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list user bids")
	}

	return bidsToDomain(schemas), nil
}

func (r *BidRepository) GetByID(ctx context.Context, id int64) (*entity.BidRecord, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE id = $1`

	var schema bidSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.BidNotFound, "bid not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get bid")
	}

	bid := schema.toDomain()
	return &bid, nil
}

// Create сохраняет запись. Если у пользователя уже есть нетерминальная запись на этот лот,
// возвращает её и created=false.
func (r *BidRepository) Create(ctx context.Context, bid *entity.BidRecord) (created bool, err error) {
	err = withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query, args, err := sqlx.In(`
			SELECT `+bidColumns+`
			FROM bids
			WHERE item_id = ? AND user_id = ? AND status NOT IN (?)
			ORDER BY id
			LIMIT 1
			FOR UPDATE`, bid.ItemID, bid.UserID, terminalStatusArgs())
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to build query")
		}

		var existing bidSchema
		err = tx.GetContext(ctx, &existing, tx.Rebind(query), args...)
		switch {
		case err == nil:
			*bid = existing.toDomain()
			return nil
		case !errors.Is(err, sql.ErrNoRows):
			return domain.WrapError(err, errcodes.InternalServerError, "failed to lookup bid")
		}

		insert := `
			INSERT INTO bids (item_id, user_id, title, max_bid, current_bid, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at`

		if err := tx.QueryRowxContext(ctx, insert,
			bid.ItemID, bid.UserID, bid.Title, bid.MaxBid, bid.CurrentBid, string(bid.Status),
		).Scan(&bid.ID, &bid.CreatedAt, &bid.UpdatedAt); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert bid")
		}

		created = true
		return nil
	})

	return created, err
}

// UpdateStatus меняет статус нетерминальной записи. Терминальные статусы не перезаписываются.
func (r *BidRepository) UpdateStatus(ctx context.Context, id int64, status entity.BidStatus) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		current, err := r.lockTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if !current.Status.CanTransition(status) {
			return domain.NewError(errcodes.InvalidTransition,
				fmt.Sprintf("bid %d: %s -> %s is not allowed", id, current.Status, status))
		}

		return r.execUpdateTx(ctx, tx,
			`UPDATE bids SET status = $1, updated_at = $2 WHERE id = $3`,
			string(status), time.Now(), id)
	})
}

// UpdateObservedPrice сохраняет последнюю увиденную цену лота.
func (r *BidRepository) UpdateObservedPrice(ctx context.Context, id int64, price decimal.Decimal) error {
	query, args, err := sqlx.In(`
		UPDATE bids
		SET current_bid = ?, updated_at = ?
		WHERE id = ? AND status NOT IN (?)`, price, time.Now(), id, terminalStatusArgs())
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to build query")
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to update observed price")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	if rows == 0 {
		return domain.NewError(errcodes.BidNotFound, "active bid not found")
	}

	return nil
}

// RaiseMaxBid атомарно поднимает максимум ставки владельца и возвращает запись в ACTIVE.
func (r *BidRepository) RaiseMaxBid(
	ctx context.Context,
	id, userID int64,
	raise func(current decimal.Decimal) decimal.Decimal,
) (*entity.BidRecord, error) {
	var updated entity.BidRecord

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		current, err := r.lockTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if current.UserID != userID {
			return domain.NewError(errcodes.Forbidden, "you don't own this bid")
		}

		if !current.Status.TracksBid() {
			return domain.NewError(errcodes.InvalidTransition,
				fmt.Sprintf("bid %d is %s, max bid can't be raised", id, current.Status))
		}

		updated = current
		updated.MaxBid = raise(current.MaxBid).Round(2)
		updated.Status = entity.BidStatusActive
		updated.UpdatedAt = time.Now()

		return r.execUpdateTx(ctx, tx,
			`UPDATE bids SET max_bid = $1, status = $2, updated_at = $3 WHERE id = $4`,
			updated.MaxBid, string(updated.Status), updated.UpdatedAt, id)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// CountByStatus: сводка для /status.
func (r *BidRepository) CountByStatus(ctx context.Context) (map[entity.BidStatus]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}

	if err := r.db.SelectContext(ctx, &rows, `SELECT status, count(*) AS count FROM bids GROUP BY status`); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to count bids")
	}

	counts := make(map[entity.BidStatus]int, len(rows))
	for _, row := range rows {
		counts[entity.BidStatus(row.Status)] = row.Count
	}

	return counts, nil
}

// lockTx блокирует строку до конца транзакции.
func (r *BidRepository) lockTx(ctx context.Context, tx *sqlx.Tx, id int64) (entity.BidRecord, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE id = $1 FOR UPDATE`

	var schema bidSchema
	if err := tx.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.BidRecord{}, domain.NewError(errcodes.BidNotFound, "bid not found")
		}
		return entity.BidRecord{}, domain.WrapError(err, errcodes.InternalServerError, "failed to lock bid")
	}

	return schema.toDomain(), nil
}

func (r *BidRepository) execUpdateTx(ctx context.Context, tx *sqlx.Tx, query string, args ...any) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to execute update")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	if rows == 0 {
		return domain.NewError(errcodes.BidNotFound, "bid not found")
	}

	return nil
}

func bidsToDomain(schemas []bidSchema) []entity.BidRecord {
	bids := make([]entity.BidRecord, 0, len(schemas))
	for i := range schemas {
		bids = append(bids, schemas[i].toDomain())
	}
	return bids
}
