package cli

import (
	"os"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/lbryio/lbry.go/v2/extras/errors"
)

const (
	SearchCmd      = iota
	InsertCmd      = iota
	BisectLeftCmd  = iota
	BisectRightCmd = iota
)

const (
	KindInt    = "int"
	KindFloat  = "float"
	KindString = "string"
)

// Args struct contains the arguments to the bisect command.
type Args struct {
	CmdType      int
	Values       []string
	Target       string
	Kind         string
	Debug        bool
	PrintMetrics bool
}

const (
	DefaultKind         = KindInt
	DefaultDebug        = false
	DefaultPrintMetrics = false
)

var Kinds = []string{KindInt, KindFloat, KindString}

// GetEnvironment takes the environment variables as an array of strings
// and a getkeyval function to turn it into a map.
func GetEnvironment(data []string, getkeyval func(item string) (key, val string)) map[string]string {
	items := make(map[string]string)
	for _, item := range data {
		key, val := getkeyval(item)
		items[key] = val
	}
	return items
}

// GetEnvironmentStandard gets the environment variables as a map.
func GetEnvironmentStandard() map[string]string {
	return GetEnvironment(os.Environ(), func(item string) (key, val string) {
		splits := strings.SplitN(item, "=", 2)
		key = splits[0]
		if len(splits) > 1 {
			val = splits[1]
		}
		return
	})
}

// ParseArgs parses the command line with the process environment applied.
func ParseArgs(argv []string) (*Args, error) {
	return ParseArgsEnv(argv, GetEnvironmentStandard())
}

// ParseArgsEnv parses argv (argv[0] being the program name). BISECT_KIND
// replaces the default kind and BISECT_DEBUG turns on debug logging.
func ParseArgsEnv(argv []string, environment map[string]string) (*Args, error) {
	kind := DefaultKind
	if envKind, ok := environment["BISECT_KIND"]; ok && envKind != "" {
		if !validKind(envKind) {
			return nil, errors.Base("BISECT_KIND: unknown kind %q, expected one of %s", envKind, strings.Join(Kinds, ", "))
		}
		kind = envKind
	}

	parser := argparse.NewParser("bisect", "binary search over a sorted list of values")

	searchCmd := parser.NewCommand("search", "find the index of a value equal to the target")
	insertCmd := parser.NewCommand("insert", "find where the target would be inserted")
	bisectLeftCmd := parser.NewCommand("bisect-left", "find the leftmost insertion point of the target")
	bisectRightCmd := parser.NewCommand("bisect-right", "find the rightmost insertion point of the target")

	values := parser.StringList("", "values", &argparse.Options{Required: true, Help: "sorted values, repeated or comma separated"})
	target := parser.String("", "target", &argparse.Options{Required: true, Help: "value to look for"})
	kindArg := parser.Selector("", "kind", Kinds, &argparse.Options{Required: false, Help: "type of the values", Default: kind})
	debug := parser.Flag("", "debug", &argparse.Options{Required: false, Help: "enable debug logging", Default: DefaultDebug})
	printMetrics := parser.Flag("", "print-metrics", &argparse.Options{Required: false, Help: "write collected metrics to stderr on exit", Default: DefaultPrintMetrics})

	// Now parse the arguments
	if err := parser.Parse(argv); err != nil {
		return nil, errors.Base("%s", parser.Usage(err))
	}

	args := &Args{
		Values:       splitValues(*values),
		Target:       *target,
		Kind:         *kindArg,
		Debug:        *debug,
		PrintMetrics: *printMetrics,
	}

	if envDebug, ok := environment["BISECT_DEBUG"]; ok && envDebug != "" && envDebug != "0" && envDebug != "false" {
		args.Debug = true
	}

	if searchCmd.Happened() {
		args.CmdType = SearchCmd
	} else if insertCmd.Happened() {
		args.CmdType = InsertCmd
	} else if bisectLeftCmd.Happened() {
		args.CmdType = BisectLeftCmd
	} else if bisectRightCmd.Happened() {
		args.CmdType = BisectRightCmd
	}

	return args, nil
}

func splitValues(raw []string) []string {
	res := make([]string, 0, len(raw))
	for _, item := range raw {
		for _, v := range strings.Split(item, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				res = append(res, v)
			}
		}
	}
	return res
}

func validKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
