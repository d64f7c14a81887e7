package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/pkg/errcodes"
)

const monitorColumns = `id, query, listing_type, channel_id, user_id, created_at`

type MonitorRepository struct {
	db *sqlx.DB
}

func NewMonitorRepository(db *sqlx.DB) *MonitorRepository {
	return &MonitorRepository{db: db}
}

// List возвращает все мониторы в порядке создания.
func (r *MonitorRepository) List(ctx context.Context) ([]entity.Monitor, error) {
	query := `SELECT ` + monitorColumns + ` FROM monitors ORDER BY id`

	var schemas []monitorSchema
	if err := r.db.SelectContext(ctx, &schemas, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list monitors")
	}

	return monitorsToDomain(schemas), nil
}

func (r *MonitorRepository) ListByChannel(ctx context.Context, channelID int64) ([]entity.Monitor, error) {
	query := `SELECT ` + monitorColumns + ` FROM monitors WHERE channel_id = $1 ORDER BY id`

	var schemas []monitorSchema
	if err := r.db.SelectContext(ctx, &schemas, query, channelID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list channel monitors")
	}

	return monitorsToDomain(schemas), nil
}

// Create сохраняет монитор и заполняет ID и CreatedAt.
func (r *MonitorRepository) Create(ctx context.Context, m *entity.Monitor) error {
	query := `
		INSERT INTO monitors (query, listing_type, channel_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		m.Query, string(m.ListingType.Normalize()), m.ChannelID, m.UserID,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert monitor")
	}

	m.ListingType = m.ListingType.Normalize()

	return nil
}

// Delete удаляет монитор канала. Чужой или несуществующий монитор: MonitorNotFound.
func (r *MonitorRepository) Delete(ctx context.Context, id, channelID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM monitors WHERE id = $1 AND channel_id = $2`, id, channelID)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to delete monitor")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	if rows == 0 {
		return domain.NewError(errcodes.MonitorNotFound, "monitor not found")
	}

	return nil
}

func (r *MonitorRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM monitors`); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to count monitors")
	}

	return n, nil
}

func monitorsToDomain(schemas []monitorSchema) []entity.Monitor {
	monitors := make([]entity.Monitor, 0, len(schemas))
	for i := range schemas {
		monitors = append(monitors, schemas[i].toDomain())
	}
	return monitors
}
