package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/lbryio/bisect/internal/metrics"
	"github.com/lbryio/bisect/search"
	"github.com/lbryio/lbry.go/v2/extras/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// ErrUnsorted is returned when the values given on the command line are not
// in non-decreasing order.
var ErrUnsorted = errors.Base("values are not sorted")

var cmdNames = map[int]string{
	SearchCmd:      "search",
	InsertCmd:      "insert",
	BisectLeftCmd:  "bisect_left",
	BisectRightCmd: "bisect_right",
}

// Run parses the values and target according to args.Kind, runs the
// requested lookup and writes a single result line to w.
func Run(args *Args, w io.Writer) error {
	switch args.Kind {
	case KindInt:
		return runKind(args, w, func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		})
	case KindFloat:
		return runKind(args, w, parseFloat)
	case KindString:
		return runKind(args, w, func(s string) (string, error) {
			return s, nil
		})
	}
	return errors.Base("unknown kind %q", args.Kind)
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) {
		return 0, errors.Base("NaN has no order")
	}
	return f, nil
}

func runKind[T constraints.Ordered](args *Args, w io.Writer, parse func(string) (T, error)) error {
	seq := make([]T, len(args.Values))
	for i, raw := range args.Values {
		v, err := parse(raw)
		if err != nil {
			return errors.Prefix(fmt.Sprintf("invalid %s value %q", args.Kind, raw), err)
		}
		seq[i] = v
	}
	target, err := parse(args.Target)
	if err != nil {
		return errors.Prefix(fmt.Sprintf("invalid %s target %q", args.Kind, args.Target), err)
	}

	if i := firstUnsorted(seq); i > 0 {
		return errors.Prefix(fmt.Sprintf("%v at position %d follows %v", seq[i], i, seq[i-1]), ErrUnsorted)
	}

	name := cmdNames[args.CmdType]
	log.Debugf("%s: %d %s values, target %v", name, len(seq), args.Kind, target)

	switch args.CmdType {
	case SearchCmd:
		i, ok := search.Search(seq, target)
		metrics.Observe(name, len(seq), ok)
		if !ok {
			_, err = fmt.Fprintln(w, "not found")
			return err
		}
		_, err = fmt.Fprintf(w, "found %d\n", i)
		return err
	case InsertCmd:
		metrics.ObservePosition(name, len(seq))
		_, err = fmt.Fprintln(w, search.InsertionPoint(seq, target))
		return err
	case BisectLeftCmd:
		metrics.ObservePosition(name, len(seq))
		_, err = fmt.Fprintln(w, search.BisectLeft(seq, target))
		return err
	case BisectRightCmd:
		metrics.ObservePosition(name, len(seq))
		_, err = fmt.Fprintln(w, search.BisectRight(seq, target))
		return err
	}
	return errors.Base("unknown command %d", args.CmdType)
}

// firstUnsorted returns the first index i with seq[i] < seq[i-1], or -1.
func firstUnsorted[T constraints.Ordered](seq []T) int {
	for i := 1; i < len(seq); i++ {
		if seq[i] < seq[i-1] {
			return i
		}
	}
	return -1
}
