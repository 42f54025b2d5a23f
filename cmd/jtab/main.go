// Command jtab tabulates and evaluates the second-order projection
// functions J_Llm(x).
//
// Usage:
//
//	jtab [command] [flags]
//
// Examples:
//
//	jtab tabulate --l-list 2,10,50 --m-list 0,1,2
//	jtab tabulate --config jtab.yaml --metrics
//	jtab eval --l-list 2,10,50 --L 2 --l 10 --m 0 --x 500 --direct
//	jtab export --config jtab.yaml --out tables.json.zst
//	jtab inspect tables.json.zst
package main

import (
	"fmt"
	"os"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
