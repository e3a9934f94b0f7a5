package bench

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"workSchedule/internal/schedule"
)

// Deviation - отклонение эвристики от эталона в процентах: (heur-ref)/ref*100.
// При нулевом эталоне совпадение даёт 0, любое другое значение +Inf.
// Недопустимое решение эвристики (schedule.Worst) также даёт +Inf.
func Deviation(ref, heur int) float64 {
	if heur == schedule.Worst {
		return math.Inf(1)
	}
	if ref == 0 {
		if heur == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return float64(heur-ref) / float64(ref) * 100
}

// FormatDeviations форматирует строку отклонений: два знака после запятой, через пробел.
func FormatDeviations(devs []float64) string {
	return strings.Join(lo.Map(devs, func(d float64, _ int) string {
		return strconv.FormatFloat(d, 'f', 2, 64)
	}), " ")
}

// ReadDeviations читает файл отклонений: строка на задачу, столбец на эвристику.
// Все непустые строки должны иметь одинаковое число столбцов.
func ReadDeviations(r io.Reader) ([][]float64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), schedule.MaxLineSize)
	var rows [][]float64
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(rows) > 0 && len(fields) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d: expected %d values, got %d",
				schedule.ErrMalformedInput, lineNo, len(rows[0]), len(fields))
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", schedule.ErrMalformedInput, lineNo, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d: %w", schedule.ErrMalformedInput, lineNo+1, err)
		}
		return nil, err
	}
	return rows, nil
}

// Column возвращает столбец матрицы отклонений.
func Column(rows [][]float64, col int) []float64 {
	return lo.Map(rows, func(row []float64, _ int) float64 { return row[col] })
}

// HistogramBuckets - число корзин гистограммы: десять по 10% и ">100%".
const HistogramBuckets = 11

// BucketLabels - подписи корзин гистограммы.
var BucketLabels = [HistogramBuckets]string{
	"0-10%", "10-20%", "20-30%", "30-40%", "40-50%",
	"50-60%", "60-70%", "70-80%", "80-90%", "90-100%", ">100%",
}

// Histogram раскладывает отклонения по корзинам [10k, 10k+10).
// Отрицательные значения попадают в первую корзину, 100 и выше (а также NaN) в последнюю.
func Histogram(devs []float64) [HistogramBuckets]int {
	var counts [HistogramBuckets]int
	for _, d := range devs {
		counts[bucket(d)]++
	}
	return counts
}

func bucket(d float64) int {
	switch {
	case math.IsNaN(d) || d >= 100:
		return HistogramBuckets - 1
	case d < 0:
		return 0
	default:
		return int(d / 10)
	}
}

// WriteHistogram печатает таблицу: корзина и количество задач по каждой эвристике.
func WriteHistogram(w io.Writer, names []string, rows [][]float64) error {
	counts := lo.Map(names, func(_ string, i int) [HistogramBuckets]int {
		return Histogram(Column(rows, i))
	})

	if _, err := fmt.Fprintf(w, "%-8s", "bucket"); err != nil {
		return err
	}
	for _, n := range names {
		if _, err := fmt.Fprintf(w, " %8s", n); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	for b, label := range BucketLabels {
		if _, err := fmt.Fprintf(w, "%-8s", label); err != nil {
			return err
		}
		for i := range names {
			if _, err := fmt.Fprintf(w, " %8d", counts[i][b]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
