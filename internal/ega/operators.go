package ega

import (
	"math/rand"

	"workSchedule/internal/population"
	"workSchedule/internal/schedule"
)

// maxPairAttempts - сколько раз ищется родительская пара,
// прежде чем популяция считается вырожденной.
const maxPairAttempts = 256

// section возвращает границы средней трети [a, b), наследуемой от первого родителя.
func section(n int) (a, b int) {
	return n / 3, n - n/3
}

// selectParents реализует инбридинг: случайная пара выбирается, пока число
// совпадающих позиций не станет <= threshold. ok=false, если пара не найдена.
func selectParents(pop [][]int, threshold int, rng *rand.Rand) (p1, p2 []int, ok bool) {
	for i := 0; i < maxPairAttempts; i++ {
		p1 = pop[rng.Intn(len(pop))]
		p2 = pop[rng.Intn(len(pop))]
		if d, err := schedule.HammingDistance(p1, p2); err == nil && d <= threshold {
			return p1, p2, true
		}
	}
	return nil, nil, false
}

// mappingRule - правило отображения PMX: значение from заменяется на to.
type mappingRule struct{ from, to int }

// pmxCrossover реализует частично отображающее скрещивание.
// Потомок - копия p2, средняя треть которой взята из p1; повторы во внешних
// третях устраняются правилами отображения (p1[i] -> p2[i]).
func pmxCrossover(p1, p2, child []int) {
	n := len(p1)
	a, b := section(n)

	copy(child, p2)
	rules := make([]mappingRule, 0, b-a)
	for i := a; i < b; i++ {
		child[i] = p1[i]
		rules = append(rules, mappingRule{from: p1[i], to: p2[i]})
	}

	// Применяем правила, пока хотя бы одно срабатывает.
	// Каждое правило срабатывает не более одного раза и затем удаляется.
	for len(rules) > 0 {
		applied := false
		for r, rule := range rules {
			if pos := findOutside(child, rule.from, a, b); pos >= 0 {
				child[pos] = rule.to
				rules = append(rules[:r], rules[r+1:]...)
				applied = true
				break
			}
		}
		if !applied {
			break
		}
	}
}

// findOutside ищет значение v вне секции [a, b): сначала в первой трети, затем в последней.
func findOutside(child []int, v, a, b int) int {
	for i := 0; i < a; i++ {
		if child[i] == v {
			return i
		}
	}
	for i := b; i < len(child); i++ {
		if child[i] == v {
			return i
		}
	}
	return -1
}

// orderCrossoverOX реализует оператор Order Crossover с фиксированной секцией.
func orderCrossoverOX(p1, p2, child []int, mark []int, stamp *int) {
	n := len(p1)
	a, b := section(n)

	for i := range child {
		child[i] = -1
	}

	*stamp++
	curStamp := *stamp

	// Копирование секции из первого родителя
	for i := a; i < b; i++ {
		gene := p1[i]
		child[i] = gene
		mark[gene] = curStamp
	}

	// Заполнение оставшихся позиций генами второго родителя,
	// начиная сразу после секции и с переходом в начало
	pos := b % n
	for i := 0; i < n; i++ {
		gene := p2[(b+i)%n]
		if mark[gene] == curStamp {
			continue
		}
		for child[pos] != -1 {
			pos = (pos + 1) % n
		}
		child[pos] = gene
		mark[gene] = curStamp
	}
}

// mutateReset - мутация: генотип строится заново.
func mutateReset(child []int, rng *rand.Rand) {
	for i := range child {
		child[i] = i
	}
	population.Shuffle(child, rng)
}

// rouletteWeight - вес особи при отборе: 1/fitness, так как fitness минимизируется.
// Нулевое значение считается равным 1; недопустимые особи получают вес 0.
func rouletteWeight(fitness int) float64 {
	if fitness == schedule.Worst {
		return 0
	}
	if fitness < 1 {
		fitness = 1
	}
	return 1 / float64(fitness)
}

// rouletteSelect выбирает count индексов пропорционально весам.
func rouletteSelect(weights []float64, count int, rng *rand.Rand) []int {
	cumulative := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		total += w
		cumulative[i] = total
	}

	out := make([]int, count)
	for k := range out {
		r := rng.Float64() * total
		idx := len(cumulative) - 1
		for i, c := range cumulative {
			if c > r {
				idx = i
				break
			}
		}
		out[k] = idx
	}
	return out
}
