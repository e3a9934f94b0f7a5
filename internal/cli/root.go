// Package cli - командная строка workschedule: решение одной задачи, генерация
// набора задач, сравнение эвристик с перебором и гистограмма отклонений.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"workSchedule/internal/config"
)

// Уровни логирования для main.go
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI хранит общее состояние команд.
type CLI struct {
	Logger *log.Logger

	exp        config.Experiment
	verbose    bool
	configPath string
	seed       int64
}

func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		exp:    config.DefaultExperiment(),
	}
}

// RootCommand собирает дерево команд. Конфигурация эксперимента загружается
// перед запуском любой подкоманды.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "workschedule",
		Short:         "Single-machine job scheduling: exact search, genetic algorithm and frog leaping",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.Logger.SetLevel(LogDebug)
			}
			exp, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				exp.Seed = c.seed
			}
			c.exp = exp
			c.Logger.Debug("loaded experiment", "config", c.configPath, "seed", exp.Seed)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "experiment file (.toml, .yaml or .yml)")
	root.PersistentFlags().Int64Var(&c.seed, "seed", 0, "base seed (overrides the config file)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.histogramCommand())

	return root
}

// createOutput открывает файл на запись; "-" означает stdout команды.
func createOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
