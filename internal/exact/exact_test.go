package exact

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"workSchedule/internal/schedule"
)

// allPermutations перечисляет перестановки алгоритмом Хипа,
// независимо от порядка перебора солвера.
func allPermutations(n int, visit func([]int)) {
	a := make([]int, n)
	for i := range a {
		a[i] = i
	}
	c := make([]int, n)
	visit(a)
	for i := 0; i < n; {
		if c[i] < i {
			if i%2 == 0 {
				a[0], a[i] = a[i], a[0]
			} else {
				a[c[i]], a[i] = a[i], a[c[i]]
			}
			visit(a)
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}
}

func bruteForceOptimum(p *schedule.Problem) int {
	best := schedule.Worst
	allPermutations(p.N(), func(s []int) {
		if f := schedule.Fitness(p, s); f < best {
			best = f
		}
	})
	return best
}

func TestSolveScenario(t *testing.T) {
	p, err := schedule.NewProblem(
		[]int{2, 5, 3, 1, 4},
		[]int{2, 2, 0, 0, 1},
		[]int{7, 4, 1, 2, 3},
		[]int{3, 1, 3, 2, 3},
	)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := New(DefaultConfig())
	res, err := s.Solve(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !schedule.Validate(p, res.Schedule) {
		t.Fatalf("Solve() returned infeasible schedule %v", res.Schedule)
	}
	if got := schedule.Fitness(p, res.Schedule); got != res.Fitness {
		t.Errorf("Result.Fitness = %d, recomputed %d", res.Fitness, got)
	}
	if want := bruteForceOptimum(p); res.Fitness > want {
		t.Errorf("Solve() fitness = %d, brute force optimum %d", res.Fitness, want)
	}
	if res.Iterations != 120 {
		t.Errorf("Iterations = %d, want 5! = 120", res.Iterations)
	}
}

func TestSolveIsOptimal(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	s, _ := New(DefaultConfig())
	for n := 2; n <= 7; n++ {
		for k := 0; k < 5; k++ {
			p, err := schedule.RandomProblem(n, rng)
			if err != nil {
				t.Fatal(err)
			}
			res, err := s.Solve(context.Background(), p)
			if err != nil {
				t.Fatal(err)
			}
			want := bruteForceOptimum(p)
			if res.Fitness != want {
				t.Errorf("n=%d: Solve() fitness = %d, optimum %d", n, res.Fitness, want)
			}
		}
	}
}

func TestSolveDeterministic(t *testing.T) {
	p, err := schedule.RandomProblem(6, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}
	s, _ := New(DefaultConfig())
	a, _ := s.Solve(context.Background(), p)
	b, _ := s.Solve(context.Background(), p)
	if diff := cmp.Diff(a.Schedule, b.Schedule); diff != "" {
		t.Errorf("two runs differ (-a +b):\n%s", diff)
	}
}

func TestSolveFirstFoundWinsTies(t *testing.T) {
	// Все работы одинаковы: любая перестановка имеет одно и то же значение.
	p, err := schedule.NewProblem([]int{1, 1, 1}, []int{0, 0, 0}, []int{3, 3, 3}, []int{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	s, _ := New(DefaultConfig())
	res, err := s.Solve(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, res.Schedule); diff != "" {
		t.Errorf("Solve() mismatch (-want +got):\n%s", diff)
	}
}

func TestSolveInfeasibleInstance(t *testing.T) {
	p, err := schedule.NewProblem([]int{1, 1}, []int{0, 100}, []int{1, 2}, []int{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	s, _ := New(DefaultConfig())
	res, err := s.Solve(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if res.Fitness != schedule.Worst || res.Meta["feasible"] != false {
		t.Errorf("got fitness %d meta %v, want Worst and feasible=false", res.Fitness, res.Meta)
	}
	if len(res.Schedule) != 2 {
		t.Errorf("schedule length = %d, want 2", len(res.Schedule))
	}
}

func TestSolveRejectsLargeInstances(t *testing.T) {
	p, err := schedule.RandomProblem(13, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	s, _ := New(DefaultConfig())
	_, err = s.Solve(context.Background(), p)
	if !errors.Is(err, ErrTooManyJobs) || !errors.Is(err, schedule.ErrInvalidConfig) {
		t.Errorf("Solve() error = %v, want ErrTooManyJobs", err)
	}
	if _, err := New(Config{MaxJobs: -1}); !errors.Is(err, schedule.ErrInvalidConfig) {
		t.Errorf("New() error = %v, want ErrInvalidConfig", err)
	}
}

func TestSolveHonoursContext(t *testing.T) {
	p, err := schedule.RandomProblem(9, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, _ := New(DefaultConfig())
	res, err := s.Solve(ctx, p)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Solve() error = %v, want context.Canceled", err)
	}
	if res.Meta["stopped"] != "context" {
		t.Errorf("Meta[stopped] = %v, want context", res.Meta["stopped"])
	}
	if res.Iterations != ctxCheckEvery {
		t.Errorf("Iterations = %d, want %d", res.Iterations, ctxCheckEvery)
	}
}
