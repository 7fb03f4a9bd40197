// Package flagx lets several independent flag sets share one command line.
//
// Each consumer picks the flags it owns out of os.Args and parses only those,
// so unknown flags belonging to another consumer never cause a parse error.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Pick returns the subset of args that belongs to the named flags, keeping
// their values. Names are given without dashes ("c", "config"); both the
// single and double dash spellings are matched, in "-name value" and
// "-name=value" form. The result is never nil.
func Pick(args []string, names ...string) []string {
	owned := make(map[string]bool, len(names))
	for _, n := range names {
		owned[strings.TrimLeft(n, "-")] = true
	}

	picked := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !owned[name] {
			continue
		}

		picked = append(picked, arg)
		if hasValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			picked = append(picked, args[i+1])
			i++
		}
	}
	return picked
}

// ConfigPath extracts the JSON config file path given with -c or -config.
// The last occurrence wins; an empty string means no file was requested.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(Pick(args, "c", "config"))

	return path
}
