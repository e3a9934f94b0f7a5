package schedule

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const scenarioText = `5
2 5 3 1 4
2 2 0 0 1
7 4 1 2 3
3 1 3 2 3
`

func TestWriteProblem(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteProblem(&buf, scenarioProblem(t)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != scenarioText {
		t.Errorf("WriteProblem() =\n%s\nwant\n%s", buf.String(), scenarioText)
	}
}

func TestReadProblem(t *testing.T) {
	p, err := ReadProblem(strings.NewReader(scenarioText))
	if err != nil {
		t.Fatal(err)
	}
	if !p.Equal(scenarioProblem(t)) {
		t.Error("ReadProblem() returned a different problem")
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	p := scenarioProblem(t)
	var buf bytes.Buffer
	for _, best := range []int{35, 20} {
		if err := WriteRecord(&buf, Record{Problem: p, Best: best}); err != nil {
			t.Fatal(err)
		}
	}
	if !strings.HasSuffix(buf.String(), "20\n%\n") {
		t.Errorf("record does not end with best value and separator: %q", buf.String())
	}

	recs, err := ReadRecords(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].Best != 35 || recs[1].Best != 20 {
		t.Errorf("best values = %d, %d; want 35, 20", recs[0].Best, recs[1].Best)
	}
	if !recs[1].Problem.Equal(p) {
		t.Error("second record problem differs")
	}
}

func TestReadRecordsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad count", "x\n"},
		{"short row", "2\n1\n0 0\n1 1\n1 1\n3\n%\n"},
		{"missing separator", scenarioText + "35\n"},
		{"wrong separator", scenarioText + "35\n#\n"},
		{"bad best", scenarioText + "abc\n%\n"},
		{"line too long", "5\n" + strings.Repeat("1 ", MaxLineSize) + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRecords(strings.NewReader(tt.input))
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("ReadRecords() error = %v, want ErrMalformedInput", err)
			}
		})
	}
}

func TestReadRecordsEmpty(t *testing.T) {
	recs, err := ReadRecords(strings.NewReader("\n\n"))
	if err != nil || len(recs) != 0 {
		t.Errorf("ReadRecords(blank) = %v, %v; want no records", recs, err)
	}
}
