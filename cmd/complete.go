package cmd

import (
	"flag"

	"github.com/etnz/finance"
	"github.com/etnz/finance/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// builtins are the commands registered by the commander itself.
var builtins = []string{"help", "flags", "commands"}

// Known reports whether name is a fin command, extensions are not.
func Known(name string) bool {
	for _, b := range builtins {
		if b == name {
			return true
		}
	}
	for _, e := range commands {
		if e.cmd.Name() == name {
			return true
		}
	}
	return false
}

var predictAccounts = complete.PredictFunc(func(prefix string) []string {
	l, err := finance.DecodeLedger(*dataDir)
	if err != nil {
		return nil
	}
	var ids []string
	for _, a := range l.Accounts {
		ids = append(ids, a.ID)
	}
	return ids
})

var predictTopics = complete.PredictFunc(func(prefix string) []string {
	topics, _ := docs.GetAllTopics()
	return topics
})

// flagPredictors are the predictors of the flags that have a known set of
// values, by flag name.
var flagPredictors = map[string]complete.Predictor{
	"data":       predict.Dirs("*"),
	"date-field": predict.Set{"accounting", "value"},
	"log-level":  predict.Set{"debug", "info", "warn", "error"},
	"a":          predictAccounts,
	"p":          predict.Set{"day", "week", "month", "quarter", "year"},
	"frequency":  predict.Set{"monthly", "quarterly", "semi_annual", "annual"},
	"kind":       predict.Set{string(finance.Amortizable), string(finance.Bullet)},
}

// Completion returns the shell completion of the fin command line: global
// flags, then commands and their flags.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(flag.CommandLine),
	}
	for _, b := range builtins {
		root.Sub[b] = &complete.Command{}
	}
	root.Sub["help"].Args = predict.Set(commandNames())
	for _, e := range commands {
		f := flag.NewFlagSet(e.cmd.Name(), flag.ContinueOnError)
		e.cmd.SetFlags(f)
		sub := &complete.Command{Flags: predictFlags(f)}
		if e.cmd.Name() == "topic" {
			sub.Args = predictTopics
		}
		root.Sub[e.cmd.Name()] = sub
	}
	return root
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for _, e := range commands {
		names = append(names, e.cmd.Name())
	}
	return names
}

func predictFlags(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		switch p, ok := flagPredictors[fl.Name]; {
		case ok:
			flags[fl.Name] = p
		case isBool(fl):
			flags[fl.Name] = predict.Nothing
		default:
			flags[fl.Name] = predict.Something
		}
	})
	return flags
}

func isBool(fl *flag.Flag) bool {
	b, ok := fl.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
