package schedule

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidProblem - некорректные данные задачи.
	ErrInvalidProblem = errors.New("invalid problem")
	// ErrNoFeasibleSchedule - у задачи заведомо нет допустимых расписаний.
	ErrNoFeasibleSchedule = errors.New("problem has no feasible schedule")
	// ErrInvalidConfig - некорректные параметры операции или солвера.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Problem - задача расписаний для одного станка.
// После создания не изменяется: срезы копируются на входе и на выходе.
type Problem struct {
	n              int
	requiredTime   []int // время выполнения работы
	arrivalTime    []int // время поступления работы
	completionGoal []int // целевое время завершения
	penalty        []int // штраф за такт отклонения (в целевой функции не участвует)
}

// NewProblem создаёт задачу из четырёх массивов одинаковой длины.
func NewProblem(requiredTime, arrivalTime, completionGoal, penalty []int) (*Problem, error) {
	p := &Problem{
		n:              len(requiredTime),
		requiredTime:   slices.Clone(requiredTime),
		arrivalTime:    slices.Clone(arrivalTime),
		completionGoal: slices.Clone(completionGoal),
		penalty:        slices.Clone(penalty),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Problem) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: problem is nil", ErrInvalidProblem)
	}
	if p.n <= 0 {
		return fmt.Errorf("%w: jobs must be > 0 (got %d)", ErrInvalidProblem, p.n)
	}
	arrays := []struct {
		name string
		vals []int
	}{
		{"requiredTime", p.requiredTime},
		{"arrivalTime", p.arrivalTime},
		{"completionGoal", p.completionGoal},
		{"penalty", p.penalty},
	}
	for _, a := range arrays {
		if a.vals == nil {
			return fmt.Errorf("%w: %s is nil", ErrInvalidProblem, a.name)
		}
		if len(a.vals) != p.n {
			return fmt.Errorf("%w: %s length must be %d (got %d)", ErrInvalidProblem, a.name, p.n, len(a.vals))
		}
	}
	for i, v := range p.requiredTime {
		if v <= 0 {
			return fmt.Errorf("%w: requiredTime[%d] must be > 0 (got %d)", ErrInvalidProblem, i, v)
		}
	}
	for i, v := range p.arrivalTime {
		if v < 0 {
			return fmt.Errorf("%w: arrivalTime[%d] must be >= 0 (got %d)", ErrInvalidProblem, i, v)
		}
	}
	// Без работы, поступающей в момент 0, станок не может начать работу.
	if !slices.Contains(p.arrivalTime, 0) {
		return fmt.Errorf("%w: %w: no job arrives at time 0", ErrInvalidProblem, ErrNoFeasibleSchedule)
	}
	return nil
}

// N - количество работ.
func (p *Problem) N() int { return p.n }

func (p *Problem) RequiredTime() []int   { return slices.Clone(p.requiredTime) }
func (p *Problem) ArrivalTime() []int    { return slices.Clone(p.arrivalTime) }
func (p *Problem) CompletionGoal() []int { return slices.Clone(p.completionGoal) }
func (p *Problem) Penalty() []int        { return slices.Clone(p.penalty) }

// Equal сравнивает две задачи поэлементно.
func (p *Problem) Equal(o *Problem) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.n == o.n &&
		slices.Equal(p.requiredTime, o.requiredTime) &&
		slices.Equal(p.arrivalTime, o.arrivalTime) &&
		slices.Equal(p.completionGoal, o.completionGoal) &&
		slices.Equal(p.penalty, o.penalty)
}
