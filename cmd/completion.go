package cmd

import (
	"flag"
	"strings"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/rupeshchamp/banking"
)

// Completion returns the shell completion tree of the commands registered in c
// and of the global flags.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		fs := flag.NewFlagSet(sc.Name(), flag.ContinueOnError)
		sc.SetFlags(fs)
		root.Sub[sc.Name()] = &complete.Command{Flags: flagPredictors(fs)}
	})
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	m := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = nil // takes no value
			return
		}
		m[f.Name] = predictFlag(f.Name)
	})
	return m
}

func predictFlag(name string) complete.Predictor {
	switch name {
	case "config":
		return predict.Files("*.toml")
	case "data-dir":
		return predict.Dirs("*")
	case "html":
		return predict.Files("*.html")
	case "category":
		return predict.Set{"young", "standard", "senior"}
	case "field":
		fields := make(predict.Set, 0, len(banking.Columns))
		for _, f := range banking.Columns {
			fields = append(fields, strings.ToLower(string(f)))
		}
		return fields
	}
	return predict.Something
}
