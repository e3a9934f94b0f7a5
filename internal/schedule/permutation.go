package schedule

import "fmt"

func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("permutation length must be %d (got %d)", n, len(perm))
	}
	i := firstInvalid(perm, make([]bool, n))
	switch {
	case i < 0:
		return nil
	case perm[i] < 0 || perm[i] >= n:
		return fmt.Errorf("perm[%d]=%d out of range [0,%d)", i, perm[i], n)
	default:
		return fmt.Errorf("duplicate job id %d in permutation", perm[i])
	}
}

// firstInvalid возвращает индекс первого элемента вне [0,len(seen)) или повтора, -1 если таких нет.
// seen используется как рабочий буфер длины n.
func firstInvalid(perm []int, seen []bool) int {
	clear(seen)
	n := len(seen)
	for i, v := range perm {
		if v < 0 || v >= n || seen[v] {
			return i
		}
		seen[v] = true
	}
	return -1
}

// HammingDistance возвращает число позиций, в которых расписания совпадают.
// Для одинаковых расписаний результат равен их длине.
func HammingDistance(a, b []int) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("schedules differ in length (%d vs %d)", len(a), len(b))
	}
	dist := 0
	for i := range a {
		if a[i] == b[i] {
			dist++
		}
	}
	return dist, nil
}
