// Package flagx lets several independent FlagSets share one command line.
//
// The blog CLI reads its config file path and its regular flags in separate
// passes; each pass keeps only the arguments it owns so neither FlagSet
// fails on the other's flags.
package flagx

import (
	"flag"
	"strings"
)

// flagName strips one or two leading dashes, matching how package flag
// treats -name and --name as the same flag.
func flagName(arg string) string {
	return strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
}

// FilterArgs returns the subset of args that belong to one of the allowed
// flags, with their values. Names are compared without leading dashes, so
// allowing "-c" also keeps "--c=x".
//
//	-c gophblog.yaml          flag and value as separate arguments
//	--config=gophblog.json    flag and value joined by '='
//
// A token starting with '-' is never taken as a value. Filtering stops at
// the "--" terminator. The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[flagName(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, joined := strings.Cut(arg, "=")
		if _, ok := allowed[flagName(name)]; !ok {
			continue
		}

		filtered = append(filtered, arg)
		if !joined && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFileFlags returns the config file path given with -c or -config in
// args (usually os.Args[1:]), or "" when neither is present. When both
// appear the last one wins.
func ConfigFileFlags(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file (JSON or YAML)")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"c", "config"}))

	return path
}
