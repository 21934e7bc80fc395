package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type filterKind int

const (
	filterEq filterKind = iota
	filterIn
	filterGte
	filterLte
	filterIsNull
)

// Filter 单个过滤条件，字段名为数据库列名。
type Filter struct {
	Field string
	kind  filterKind
	Value interface{}
}

func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, kind: filterEq, Value: value}
}

func In(field string, values interface{}) Filter {
	return Filter{Field: field, kind: filterIn, Value: values}
}

func Gte(field string, value interface{}) Filter {
	return Filter{Field: field, kind: filterGte, Value: value}
}

func Lte(field string, value interface{}) Filter {
	return Filter{Field: field, kind: filterLte, Value: value}
}

func IsNull(field string) Filter {
	return Filter{Field: field, kind: filterIsNull}
}

// Between 闭区间时间过滤，nil 边界表示该侧不设限。
// 时间列以 UTC 存储，边界统一转为 UTC 后再比较。
func Between(field string, from, to *time.Time) []Filter {
	var filters []Filter
	if from != nil {
		filters = append(filters, Gte(field, from.UTC()))
	}
	if to != nil {
		filters = append(filters, Lte(field, to.UTC()))
	}
	return filters
}

// Include 需要一并加载的嵌套关联，Order 作用于该层关联记录。
type Include struct {
	Path  string
	Order string
}

func With(path string) Include {
	return Include{Path: path}
}

func WithOrdered(path, order string) Include {
	return Include{Path: path, Order: order}
}

type Query struct {
	Filters  []Filter
	Includes []Include
	Order    string
	Limit    int
}

func (f Filter) apply(tx *gorm.DB) *gorm.DB {
	switch f.kind {
	case filterIn:
		return tx.Where(fmt.Sprintf("%s IN ?", f.Field), f.Value)
	case filterGte:
		return tx.Where(fmt.Sprintf("%s >= ?", f.Field), f.Value)
	case filterLte:
		return tx.Where(fmt.Sprintf("%s <= ?", f.Field), f.Value)
	case filterIsNull:
		return tx.Where(fmt.Sprintf("%s IS NULL", f.Field))
	default:
		return tx.Where(fmt.Sprintf("%s = ?", f.Field), f.Value)
	}
}

func applyFilters(tx *gorm.DB, filters []Filter) *gorm.DB {
	for _, f := range filters {
		tx = f.apply(tx)
	}
	return tx
}

func (q Query) apply(tx *gorm.DB) *gorm.DB {
	tx = applyFilters(tx, q.Filters)
	for _, inc := range q.Includes {
		if inc.Order == "" {
			tx = tx.Preload(inc.Path)
			continue
		}
		order := inc.Order
		tx = tx.Preload(inc.Path, func(db *gorm.DB) *gorm.DB {
			return db.Order(order)
		})
	}
	if q.Order != "" {
		tx = tx.Order(q.Order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx
}
