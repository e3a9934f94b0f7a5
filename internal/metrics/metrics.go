// Package metrics - метрики запусков солверов в пакетном режиме.
// HTTP-эндпоинта нет: по окончании прогона метрики сохраняются в текстовый файл
// формата Prometheus (node_exporter textfile collector).
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registry - отдельный реестр для метрик прогона
	Registry = prometheus.NewRegistry()

	// SolverRuns считает запуски солверов по алгоритму и исходу (ok, error, timeout, stagnation)
	SolverRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "solver_runs_total", Help: "Solver runs by algorithm and outcome."},
		[]string{"algo", "outcome"},
	)
	// SolverEvaluations считает вычисления целевой функции
	SolverEvaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "solver_evaluations_total", Help: "Fitness evaluations by algorithm."},
		[]string{"algo"},
	)
	// SolverDuration - длительность одного запуска в секундах
	SolverDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "solver_run_seconds", Help: "Solver run duration in seconds.", Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10)},
		[]string{"algo"},
	)
	// Deviation - отклонение эвристики от эталона в процентах
	Deviation = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "solver_deviation_percent", Help: "Heuristic deviation from the reference objective, percent.", Buckets: prometheus.LinearBuckets(10, 10, 10)},
		[]string{"algo"},
	)
)

var regOnce sync.Once

// Register регистрирует метрики в Registry. Повторные вызовы ничего не делают.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(SolverRuns)
		Registry.MustRegister(SolverEvaluations)
		Registry.MustRegister(SolverDuration)
		Registry.MustRegister(Deviation)
	})
}

// WriteTextfile сохраняет текущие значения метрик в файл.
func WriteTextfile(path string) error {
	Register()
	return prometheus.WriteToTextfile(path, Registry)
}
