package bench

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdok/morton3d/mapslicehelp"
	"github.com/pdok/morton3d/morton"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/padding"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	resultIndent = 4
	labelWidth   = 24
)

// Report holds all sweeps of one Run, in run order
type Report struct {
	Width  morton.Width
	Config Config
	Sweeps []*Sweep
}

func (s *Sweep) Title() string {
	return fmt.Sprintf("%v %d^3 morton codes in %v order (%d in total)", s.Op, s.Size, s.Order, s.Total)
}

func (s *Sweep) averages() *orderedmap.OrderedMap[morton.Strategy, time.Duration] {
	averages := orderedmap.New[morton.Strategy, time.Duration]()
	for p := s.Results.Oldest(); p != nil; p = p.Next() {
		averages.Set(p.Key, p.Value.Average)
	}
	return averages
}

// Fastest returns the strategy with the lowest average, the first measured one on a tie
func (s *Sweep) Fastest() (morton.Strategy, time.Duration) {
	strategy, average, _ := mapslicehelp.FindFirstKeyWithMinValue(s.averages())
	return strategy, average
}

// Ranking returns the strategies from fastest to slowest
func (s *Sweep) Ranking() []morton.Strategy {
	return mapslicehelp.KeysSortedByValue(s.averages())
}

// Disagreeing returns the strategies whose output stream differs from that of the first measured strategy
func (s *Sweep) Disagreeing() []morton.Strategy {
	first := s.Results.Oldest()
	if first == nil {
		return nil
	}
	var disagreeing []morton.Strategy
	for p := first.Next(); p != nil; p = p.Next() {
		if p.Value.Digest != first.Value.Digest {
			disagreeing = append(disagreeing, p.Key)
		}
	}
	return disagreeing
}

func milliseconds(d time.Duration) string {
	return fmt.Sprintf("%.3f ms", float64(d)/float64(time.Millisecond))
}

func joinStrategies(strategies []morton.Strategy, sep string) string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.String()
	}
	return strings.Join(names, sep)
}

// Write renders the sweep: a title line and the average per strategy
func (s *Sweep) Write(w io.Writer) error {
	var b strings.Builder
	for p := s.Results.Oldest(); p != nil; p = p.Next() {
		label := fmt.Sprintf("%d-bit %v:", s.CodeBits, p.Key)
		b.WriteString(padding.String(label, labelWidth))
		b.WriteString(milliseconds(p.Value.Average))
		b.WriteString("\n")
	}
	if s.Results.Len() > 1 {
		fastest, _ := s.Fastest()
		fmt.Fprintf(&b, "fastest: %v (%s)\n", fastest, joinStrategies(s.Ranking(), " < "))
	}
	if disagreeing := s.Disagreeing(); len(disagreeing) > 0 {
		fmt.Fprintf(&b, "output differs from %v: %s\n", s.Results.Oldest().Key, joinStrategies(disagreeing, ", "))
	}
	_, err := fmt.Fprintf(w, "++ %s\n%s", s.Title(), indent.String(b.String(), resultIndent))
	return err
}

// Write renders all sweeps
func (r *Report) Write(w io.Writer) error {
	for _, sweep := range r.Sweeps {
		if err := sweep.Write(w); err != nil {
			return err
		}
	}
	return nil
}
