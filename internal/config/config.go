// Package config описывает параметры эксперимента: настройки солверов и пакетного прогона.
// Значения по умолчанию переопределяются файлом .toml или .yaml/.yml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"workSchedule/internal/ega"
	"workSchedule/internal/exact"
	"workSchedule/internal/schedule"
	"workSchedule/internal/sfla"
)

// Имена эвристик, доступных для replay
const (
	AlgoEGA  = "ega"
	AlgoSFLA = "sfla"
)

// Bench - параметры пакетного прогона
type Bench struct {
	// Count - количество генерируемых задач
	Count int `toml:"count" yaml:"count"`
	// Jobs - количество работ в генерируемой задаче
	Jobs int `toml:"jobs" yaml:"jobs"`
	// Workers - размер пула; 0 - по числу процессоров
	Workers int `toml:"workers" yaml:"workers"`
	// PerRunTimeout - таймаут одного запуска; 0 - без ограничения
	PerRunTimeout time.Duration `toml:"per_run_timeout" yaml:"per_run_timeout"`
	// Algorithms - эвристики, которые сравниваются с точным решением
	Algorithms []string `toml:"algorithms" yaml:"algorithms"`
}

type Experiment struct {
	// Seed - базовый сид; задача с индексом i получает Seed+i
	Seed  int64        `toml:"seed" yaml:"seed"`
	Bench Bench        `toml:"bench" yaml:"bench"`
	Exact exact.Config `toml:"exact" yaml:"exact"`
	EGA   ega.Config   `toml:"ega" yaml:"ega"`
	SFLA  sfla.Config  `toml:"sfla" yaml:"sfla"`
}

func DefaultExperiment() Experiment {
	return Experiment{
		Seed: 1000,
		Bench: Bench{
			Count:      50,
			Jobs:       8,
			Algorithms: []string{AlgoSFLA, AlgoEGA},
		},
		Exact: exact.DefaultConfig(),
		EGA:   ega.DefaultConfig(),
		SFLA:  sfla.DefaultConfig(),
	}
}

func (e Experiment) Validate() error {
	if e.Bench.Count <= 0 {
		return fmt.Errorf("%w: bench.count должно быть > 0 (получено %d)", schedule.ErrInvalidConfig, e.Bench.Count)
	}
	if e.Bench.Jobs <= 1 {
		return fmt.Errorf("%w: bench.jobs должно быть > 1 (получено %d)", schedule.ErrInvalidConfig, e.Bench.Jobs)
	}
	if e.Bench.Workers < 0 {
		return fmt.Errorf("%w: bench.workers должно быть >= 0 (получено %d)", schedule.ErrInvalidConfig, e.Bench.Workers)
	}
	if e.Bench.PerRunTimeout < 0 {
		return fmt.Errorf("%w: bench.per_run_timeout не может быть отрицательным", schedule.ErrInvalidConfig)
	}
	if len(e.Bench.Algorithms) == 0 {
		return fmt.Errorf("%w: bench.algorithms пуст", schedule.ErrInvalidConfig)
	}
	for _, a := range e.Bench.Algorithms {
		if !slices.Contains([]string{AlgoEGA, AlgoSFLA}, a) {
			return fmt.Errorf("%w: неизвестный алгоритм %q", schedule.ErrInvalidConfig, a)
		}
	}
	if err := e.Exact.Validate(); err != nil {
		return fmt.Errorf("exact: %w", err)
	}
	if err := e.EGA.Validate(); err != nil {
		return fmt.Errorf("ega: %w", err)
	}
	if err := e.SFLA.Validate(); err != nil {
		return fmt.Errorf("sfla: %w", err)
	}
	return nil
}

// Load читает файл эксперимента поверх DefaultExperiment. Пустой путь - значения по умолчанию.
// Неизвестные ключи считаются ошибкой.
func Load(path string) (Experiment, error) {
	exp := DefaultExperiment()
	if path == "" {
		return exp, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return exp, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, &exp)
	case ".yaml", ".yml":
		err = decodeYAML(data, &exp)
	default:
		return exp, fmt.Errorf("%w: неподдерживаемый формат %q (ожидается .toml, .yaml или .yml)", schedule.ErrInvalidConfig, ext)
	}
	if err != nil {
		return exp, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := exp.Validate(); err != nil {
		return exp, err
	}
	return exp, nil
}

func decodeTOML(data []byte, exp *Experiment) error {
	md, err := toml.Decode(string(data), exp)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: неизвестный ключ %q", schedule.ErrInvalidConfig, undecoded[0].String())
	}
	return nil
}

func decodeYAML(data []byte, exp *Experiment) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(exp); err != nil {
		// пустой документ оставляет значения по умолчанию
		if errors.Is(err, io.EOF) {
			return nil
		}
		// неизвестные ключи и несовпадение типов
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: %v", schedule.ErrInvalidConfig, typeErr)
		}
		return err
	}
	return nil
}
