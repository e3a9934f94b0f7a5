package sfla

import (
	"math"
	"math/rand"
)

// moveTowards смещает каждую координату frog на случайную долю пути к leader,
// округляет (половины - от нуля) и приводит по модулю n.
//
// Координаты перестановки трактуются как непрерывные, поэтому результат
// может не быть перестановкой. Такие особи не исправляются: целевая функция
// оценивает их как недопустимые.
func moveTowards(frog, leader []int, rng *rand.Rand) {
	n := len(frog)
	for i := range frog {
		step := rng.Float64() * float64(leader[i]-frog[i])
		frog[i] = int(math.Round(step+float64(frog[i]))) % n
	}
}
