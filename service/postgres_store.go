package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	model "github.com/Itish41/InsightBoard/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// actionItemRow maps the action_items table for gorm. Timestamps are set by
// the store clock, so gorm's automatic stamping is off.
type actionItemRow struct {
	ID        string     `gorm:"primaryKey;type:text"`
	Text      string     `gorm:"type:text;not null"`
	Status    string     `gorm:"type:text;not null;default:pending"`
	Priority  string     `gorm:"type:text;not null;default:medium"`
	CreatedAt time.Time  `gorm:"autoCreateTime:false;not null"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

func (actionItemRow) TableName() string { return actionItemsTable }

// gormConn is the part of gorm the store drives. Every call returns the next
// link of the chain, the way *gorm.DB does.
type gormConn interface {
	WithContext(ctx context.Context) gormConn
	Model(value interface{}) gormConn
	Where(query interface{}, args ...interface{}) gormConn
	Order(value interface{}) gormConn
	Create(value interface{}) gormConn
	Find(dest interface{}, conds ...interface{}) gormConn
	First(dest interface{}, conds ...interface{}) gormConn
	Updates(values interface{}) gormConn
	Delete(value interface{}, conds ...interface{}) gormConn
	Error() error
	RowsAffected() int64
	Ping(ctx context.Context) error
}

// gormChain adapts *gorm.DB to gormConn.
type gormChain struct {
	db *gorm.DB
}

func (g gormChain) WithContext(ctx context.Context) gormConn { return gormChain{g.db.WithContext(ctx)} }
func (g gormChain) Model(value interface{}) gormConn         { return gormChain{g.db.Model(value)} }
func (g gormChain) Order(value interface{}) gormConn         { return gormChain{g.db.Order(value)} }
func (g gormChain) Create(value interface{}) gormConn        { return gormChain{g.db.Create(value)} }
func (g gormChain) Updates(values interface{}) gormConn      { return gormChain{g.db.Updates(values)} }
func (g gormChain) Error() error                             { return g.db.Error }
func (g gormChain) RowsAffected() int64                      { return g.db.RowsAffected }

func (g gormChain) Where(query interface{}, args ...interface{}) gormConn {
	return gormChain{g.db.Where(query, args...)}
}

func (g gormChain) Find(dest interface{}, conds ...interface{}) gormConn {
	return gormChain{g.db.Find(dest, conds...)}
}

func (g gormChain) First(dest interface{}, conds ...interface{}) gormConn {
	return gormChain{g.db.First(dest, conds...)}
}

func (g gormChain) Delete(value interface{}, conds ...interface{}) gormConn {
	return gormChain{g.db.Delete(value, conds...)}
}

func (g gormChain) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return fmt.Errorf("database handle unavailable: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// PostgresStore implements ActionItemStore directly against Postgres through gorm.
type PostgresStore struct {
	db     gormConn
	now    func() time.Time
	logger *zap.Logger
}

func NewPostgresStore(db *gorm.DB, logger *zap.Logger) (*PostgresStore, error) {
	if db == nil {
		return nil, &ConfigurationError{Component: "postgres store", Missing: []string{"DIRECT_URL"}}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{db: gormChain{db}, now: time.Now, logger: logger.Named("postgres")}, nil
}

func (s *PostgresStore) CreateOne(ctx context.Context, item model.ActionItem) (model.ActionItem, error) {
	stamped := stampBatch([]model.ActionItem{item}, storeTime(s.now))
	row := toActionItemRow(stamped[0])
	if err := s.db.WithContext(ctx).Create(&row).Error(); err != nil {
		return model.ActionItem{}, &PersistenceFailure{Op: "create", Err: err}
	}
	s.logger.Info("created action item", zap.String("id", item.ID))
	return stamped[0], nil
}

func (s *PostgresStore) CreateMany(ctx context.Context, items []model.ActionItem) ([]model.ActionItem, error) {
	if len(items) == 0 {
		return []model.ActionItem{}, nil
	}
	stamped := stampBatch(items, storeTime(s.now))
	rows := make([]actionItemRow, len(stamped))
	for i, item := range stamped {
		rows[i] = toActionItemRow(item)
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error(); err != nil {
		return nil, &PersistenceFailure{Op: "create_many", Err: err}
	}
	s.logger.Info("created action items", zap.Int("count", len(stamped)))
	return stamped, nil
}

func (s *PostgresStore) GetAll(ctx context.Context) ([]model.ActionItem, error) {
	var rows []actionItemRow
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error(); err != nil {
		return nil, &PersistenceFailure{Op: "get_all", Err: err}
	}
	return s.rehydrate(rows), nil
}

func (s *PostgresStore) UpdateOne(ctx context.Context, id string, patch model.ActionItemPatch) (*model.ActionItem, error) {
	fields := patch.Fields()
	fields["updated_at"] = storeTime(s.now)

	result := s.db.WithContext(ctx).Model(&actionItemRow{}).Where("id = ?", id).Updates(fields)
	if err := result.Error(); err != nil {
		return nil, &PersistenceFailure{Op: "update", Err: err}
	}
	if result.RowsAffected() == 0 {
		s.logger.Warn("no action item matched update", zap.String("id", id))
		return nil, nil
	}

	var row actionItemRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &PersistenceFailure{Op: "update", Err: err}
	}
	items := s.rehydrate([]actionItemRow{row})
	if len(items) == 0 {
		return nil, &PersistenceFailure{Op: "update", Err: fmt.Errorf("row %s is unreadable after update", id)}
	}
	return &items[0], nil
}

func (s *PostgresStore) DeleteOne(ctx context.Context, id string) (bool, error) {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&actionItemRow{}).Error(); err != nil {
		return false, &PersistenceFailure{Op: "delete", Err: err}
	}
	s.logger.Info("deleted action item", zap.String("id", id))
	return true, nil
}

func (s *PostgresStore) TestConnection(ctx context.Context) bool {
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Warn("database connection test failed", zap.Error(err))
		return false
	}
	return true
}

func (s *PostgresStore) rehydrate(rows []actionItemRow) []model.ActionItem {
	items := make([]model.ActionItem, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" || strings.TrimSpace(row.Text) == "" {
			s.logger.Warn("skipping unreadable action item row", zap.String("id", row.ID))
			continue
		}
		item := fromActionItemRow(row)
		coerceEnums(&item, s.logger)
		items = append(items, item)
	}
	return items
}

func toActionItemRow(item model.ActionItem) actionItemRow {
	return actionItemRow{
		ID:        item.ID,
		Text:      item.Text,
		Status:    string(item.Status),
		Priority:  string(item.Priority),
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt,
	}
}

func fromActionItemRow(row actionItemRow) model.ActionItem {
	item := model.ActionItem{
		ID:        row.ID,
		Text:      row.Text,
		Status:    model.Status(row.Status),
		Priority:  model.Priority(row.Priority),
		CreatedAt: row.CreatedAt.UTC(),
	}
	if row.UpdatedAt != nil {
		ts := row.UpdatedAt.UTC()
		item.UpdatedAt = &ts
	}
	return item
}
