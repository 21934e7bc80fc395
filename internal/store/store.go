package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store 关系型后端的薄适配层，按集合提供类型化的增删改查。
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction 在同一事务内执行 fn，fn 收到绑定事务的 Store。
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Collection 绑定到单个实体类型（即一张表）的操作集合。
type Collection[T any] struct {
	store *Store
	name  string
}

func For[T any](s *Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) session(ctx context.Context) *gorm.DB {
	return c.store.db.WithContext(ctx).Model(new(T))
}

func (c *Collection[T]) Find(ctx context.Context, q Query) ([]T, error) {
	var records []T
	if err := q.apply(c.session(ctx)).Find(&records).Error; err != nil {
		return nil, wrap("find", c.name, err)
	}
	return records, nil
}

func (c *Collection[T]) First(ctx context.Context, q Query) (*T, error) {
	var record T
	if err := q.apply(c.session(ctx)).First(&record).Error; err != nil {
		return nil, wrap("first", c.name, err)
	}
	return &record, nil
}

func (c *Collection[T]) Count(ctx context.Context, filters ...Filter) (int64, error) {
	var count int64
	if err := applyFilters(c.session(ctx), filters).Count(&count).Error; err != nil {
		return 0, wrap("count", c.name, err)
	}
	return count, nil
}

func (c *Collection[T]) Exists(ctx context.Context, filters ...Filter) (bool, error) {
	count, err := c.Count(ctx, filters...)
	return count > 0, err
}

func (c *Collection[T]) Insert(ctx context.Context, record *T) error {
	return wrap("insert", c.name, c.store.db.WithContext(ctx).Create(record).Error)
}

func (c *Collection[T]) InsertMany(ctx context.Context, records []T) error {
	if len(records) == 0 {
		return nil
	}
	return wrap("insert", c.name, c.store.db.WithContext(ctx).Create(&records).Error)
}

// InsertIgnoreConflict 唯一键冲突视为成功，inserted 表示是否真正写入了新记录。
func (c *Collection[T]) InsertIgnoreConflict(ctx context.Context, record *T) (bool, error) {
	tx := c.store.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(record)
	if tx.Error != nil {
		return false, wrap("upsert", c.name, tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

// Update 按条件更新指定列，返回受影响行数。条件为空时拒绝执行全表更新。
func (c *Collection[T]) Update(ctx context.Context, values map[string]interface{}, filters ...Filter) (int64, error) {
	if len(filters) == 0 {
		return 0, wrap("update", c.name, gorm.ErrMissingWhereClause)
	}
	tx := applyFilters(c.session(ctx), filters).Updates(values)
	if tx.Error != nil {
		return 0, wrap("update", c.name, tx.Error)
	}
	return tx.RowsAffected, nil
}

// Delete 按条件删除，返回受影响行数。条件为空时拒绝执行全表删除。
func (c *Collection[T]) Delete(ctx context.Context, filters ...Filter) (int64, error) {
	if len(filters) == 0 {
		return 0, wrap("delete", c.name, gorm.ErrMissingWhereClause)
	}
	tx := applyFilters(c.store.db.WithContext(ctx), filters).Delete(new(T))
	if tx.Error != nil {
		return 0, wrap("delete", c.name, tx.Error)
	}
	return tx.RowsAffected, nil
}
