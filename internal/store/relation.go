package store

// AsSlice 将关联查询结果统一成切片。关联可能以切片、单个对象、指针或 nil 的形态出现；
// 无法识别的形态返回 ok=false，调用方按空集合处理。
func AsSlice[T any](v interface{}) ([]T, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case []T:
		return x, true
	case []*T:
		out := make([]T, 0, len(x))
		for _, item := range x {
			if item != nil {
				out = append(out, *item)
			}
		}
		return out, true
	case *T:
		if x == nil {
			return nil, true
		}
		return []T{*x}, true
	case T:
		return []T{x}, true
	default:
		return nil, false
	}
}

// FirstOrDefault 取第一个元素，空切片返回零值与 false。
func FirstOrDefault[T any](items []T) (T, bool) {
	if len(items) == 0 {
		var zero T
		return zero, false
	}
	return items[0], true
}

// One 一对一关联的归一化：先转切片再取首个。
func One[T any](v interface{}) (T, bool) {
	items, _ := AsSlice[T](v)
	return FirstOrDefault(items)
}
