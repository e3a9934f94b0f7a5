package schedule

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedInput - текстовое представление задачи не удалось разобрать.
var ErrMalformedInput = errors.New("malformed input")

// RecordSeparator завершает каждую запись в файле задач.
const RecordSeparator = "%"

// Record - задача вместе с лучшим известным значением целевой функции.
type Record struct {
	Problem *Problem
	Best    int
}

// WriteProblem записывает задачу в пять строк:
// n, времена выполнения, времена поступления, целевые времена, штрафы.
func WriteProblem(w io.Writer, p *Problem) error {
	if err := p.Validate(); err != nil {
		return err
	}
	lines := []string{
		strconv.Itoa(p.n),
		joinInts(p.requiredTime),
		joinInts(p.arrivalTime),
		joinInts(p.completionGoal),
		joinInts(p.penalty),
	}
	for _, l := range lines {
		if _, err := io.WriteString(w, l+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecord записывает задачу, строку с лучшим значением и разделитель.
func WriteRecord(w io.Writer, rec Record) error {
	if err := WriteProblem(w, rec.Problem); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d\n%s\n", rec.Best, RecordSeparator)
	return err
}

// ReadProblem читает одну задачу без строки лучшего значения.
func ReadProblem(r io.Reader) (*Problem, error) {
	lr := newLineReader(r)
	return lr.readProblem()
}

// RecordReader последовательно читает записи из файла задач.
type RecordReader struct {
	lr *lineReader
}

func NewRecordReader(r io.Reader) *RecordReader {
	return &RecordReader{lr: newLineReader(r)}
}

// Next возвращает очередную запись или io.EOF, если записей больше нет.
func (rr *RecordReader) Next() (Record, error) {
	if !rr.lr.skipBlank() {
		if err := rr.lr.scanErr(); err != nil {
			return Record{}, err
		}
		return Record{}, io.EOF
	}
	p, err := rr.lr.readProblem()
	if err != nil {
		return Record{}, err
	}
	best, err := rr.lr.readInt()
	if err != nil {
		return Record{}, err
	}
	sep, err := rr.lr.readLine()
	if err != nil {
		return Record{}, err
	}
	if sep != RecordSeparator {
		return Record{}, rr.lr.errorf("expected separator %q, got %q", RecordSeparator, sep)
	}
	return Record{Problem: p, Best: best}, nil
}

// ReadRecords читает все записи.
func ReadRecords(r io.Reader) ([]Record, error) {
	rr := NewRecordReader(r)
	var out []Record
	for {
		rec, err := rr.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

// MaxLineSize - предельная длина строки входного файла.
const MaxLineSize = 1 << 20

type lineReader struct {
	sc      *bufio.Scanner
	lineNo  int
	pending bool
	text    string
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &lineReader{sc: sc}
}

// scanErr возвращает ошибку сканера; слишком длинная строка считается ошибкой формата.
func (lr *lineReader) scanErr() error {
	err := lr.sc.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		return fmt.Errorf("%w: line %d: %w", ErrMalformedInput, lr.lineNo+1, err)
	}
	return err
}

func (lr *lineReader) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedInput, lr.lineNo, fmt.Sprintf(format, args...))
}

// skipBlank пропускает пустые строки и сообщает, есть ли ещё данные.
func (lr *lineReader) skipBlank() bool {
	for {
		if lr.pending {
			return true
		}
		if !lr.sc.Scan() {
			return false
		}
		lr.lineNo++
		lr.text = strings.TrimSpace(lr.sc.Text())
		if lr.text != "" {
			lr.pending = true
		}
	}
}

func (lr *lineReader) readLine() (string, error) {
	if lr.pending {
		lr.pending = false
		return lr.text, nil
	}
	if !lr.sc.Scan() {
		if err := lr.scanErr(); err != nil {
			return "", err
		}
		lr.lineNo++
		return "", lr.errorf("unexpected end of input")
	}
	lr.lineNo++
	return strings.TrimSpace(lr.sc.Text()), nil
}

func (lr *lineReader) readInt() (int, error) {
	l, err := lr.readLine()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(l)
	if err != nil {
		return 0, lr.errorf("%v", err)
	}
	return v, nil
}

func (lr *lineReader) readInts(n int) ([]int, error) {
	l, err := lr.readLine()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(l)
	if len(fields) != n {
		return nil, lr.errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, lr.errorf("%v", err)
		}
		out[i] = v
	}
	return out, nil
}

func (lr *lineReader) readProblem() (*Problem, error) {
	n, err := lr.readInt()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, lr.errorf("jobs must be > 0 (got %d)", n)
	}
	arrays := make([][]int, 4)
	for i := range arrays {
		if arrays[i], err = lr.readInts(n); err != nil {
			return nil, err
		}
	}
	p, err := NewProblem(arrays[0], arrays[1], arrays[2], arrays[3])
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", lr.lineNo, err)
	}
	return p, nil
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
