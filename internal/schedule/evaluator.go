package schedule

import "math"

// Worst - значение целевой функции для недопустимого расписания.
const Worst = math.MaxInt

// Evaluator вычисляет целевую функцию для одной задачи и считает вычисления.
// Переиспользует внутренние буферы, поэтому не безопасен для конкурентного использования.
type Evaluator struct {
	p     *Problem
	seen  []bool
	end   []int
	evals int
}

func NewEvaluator(p *Problem) (*Evaluator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{p: p, seen: make([]bool, p.n), end: make([]int, p.n)}, nil
}

func (e *Evaluator) Problem() *Problem { return e.p }

// Evaluations - сколько раз была вычислена целевая функция.
func (e *Evaluator) Evaluations() int { return e.evals }

// Validate проверяет, что s - перестановка 0..n-1 и что каждая работа
// начинается не раньше своего времени поступления.
func (e *Evaluator) Validate(s []int) bool {
	n := e.p.n
	if len(s) != n || firstInvalid(s, e.seen) >= 0 {
		return false
	}

	elapsed := 0
	for _, job := range s {
		if elapsed < e.p.arrivalTime[job] {
			return false
		}
		elapsed += e.p.requiredTime[job]
	}
	return true
}

// Fitness - максимальное отклонение от целевого времени плюс суммарное опоздание.
// Для недопустимых расписаний возвращает Worst.
func (e *Evaluator) Fitness(s []int) int {
	e.evals++
	if !e.Validate(s) {
		return Worst
	}

	cur := 0
	for _, job := range s {
		cur += e.p.requiredTime[job]
		e.end[job] = cur
	}

	deviation := 0
	tardiness := 0
	for job, end := range e.end {
		d := end - e.p.completionGoal[job]
		if d > 0 {
			tardiness += d
		} else {
			d = -d
		}
		if d > deviation {
			deviation = d
		}
	}
	return deviation + tardiness
}

// IsBetter - строго ли a лучше b. При равенстве предпочтение у b.
func (e *Evaluator) IsBetter(a, b []int, maximizing bool) bool {
	return BetterScore(e.Fitness(a), e.Fitness(b), maximizing)
}

// BetterScore сравнивает уже вычисленные значения целевой функции.
// Worst никогда не лучше допустимого значения, в том числе при максимизации.
func BetterScore(fa, fb int, maximizing bool) bool {
	if fa == Worst {
		return false
	}
	if fb == Worst {
		return true
	}
	if maximizing {
		return fa > fb
	}
	return fa < fb
}

// Simulate вычисляет времена начала и окончания работ (индексы - номера работ).
// Работы выполняются подряд с момента 0 без ожидания поступления.
// Номера вне диапазона пропускаются.
func Simulate(p *Problem, s []int) (start, end []int) {
	start = make([]int, p.n)
	end = make([]int, p.n)
	cur := 0
	for _, job := range s {
		if job < 0 || job >= p.n {
			continue
		}
		start[job] = cur
		cur += p.requiredTime[job]
		end[job] = cur
	}
	return start, end
}

func Validate(p *Problem, s []int) bool {
	e, err := NewEvaluator(p)
	if err != nil {
		return false
	}
	return e.Validate(s)
}

func Fitness(p *Problem, s []int) int {
	e, err := NewEvaluator(p)
	if err != nil {
		return Worst
	}
	return e.Fitness(s)
}

func IsBetter(p *Problem, a, b []int, maximizing bool) bool {
	return BetterScore(Fitness(p, a), Fitness(p, b), maximizing)
}
