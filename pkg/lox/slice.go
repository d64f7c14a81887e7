package lox

func Map[T, R any](collection []T, iteratee func(item T) R) []R {
	result := make([]R, len(collection))

	for i, item := range collection {
		result[i] = iteratee(item)
	}

	return result
}

// GroupOrdered группирует элементы по ключу, сохраняя порядок первого появления ключа.
func GroupOrdered[T any, K comparable](collection []T, key func(item T) K) ([]K, map[K][]T) {
	order := make([]K, 0)
	groups := make(map[K][]T)

	for _, item := range collection {
		k := key(item)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], item)
	}

	return order, groups
}
