// Command recval validates a JSON document file against a record catalog.
//
// Usage:
//
//	recval -catalog schema.json -record demo.lead [-fail-fast] [-max-issues N] [-q] target.json
//
// Exit status is 0 when the document is valid, 1 when it is not, and 2 on
// usage or I/O errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	recval "github.com/recval/recval"
)

func main() {
	fs := flag.NewFlagSet("recval", flag.ExitOnError)
	var (
		catalogPath = fs.String("catalog", "", "catalog file (JSON array of records, or YAML)")
		record      = fs.String("record", "", "full name of the root record")
		failFast    = fs.Bool("fail-fast", false, "stop at the first violation")
		maxIssues   = fs.Int("max-issues", 0, "cap the number of collected violations (0 = no cap)")
		quiet       = fs.Bool("q", false, "suppress issue output, only set the exit status")
	)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: recval -catalog FILE -record NAME [flags] TARGET")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if *catalogPath == "" || *record == "" || fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	cat, err := recval.LoadCatalog(*catalogPath)
	if err != nil {
		fatalf("%v", err)
	}

	v := recval.New(cat)
	res, err := v.Validate(context.Background(), *record, recval.FromPath(fs.Arg(0)), recval.Opt{
		FailFast:  *failFast,
		MaxIssues: *maxIssues,
	})
	if err != nil {
		fatalf("%v", err)
	}

	if !*quiet {
		for _, iss := range res.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s at %s: %s\n", iss.Code, pointer(iss.Path), iss.Message)
		}
		for _, iss := range res.Issues {
			fmt.Fprintf(os.Stderr, "error: %s at %s: %s\n", iss.Code, pointer(iss.Path), iss.Message)
		}
		fmt.Fprintf(os.Stderr, "checked %d fields\n", res.Checked)
	}

	if !res.Valid {
		os.Exit(1)
	}
}

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "recval: "+format+"\n", a...)
	os.Exit(2)
}
