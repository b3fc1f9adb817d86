// Command graphview opens graph documents in a pan-and-zoom window or
// renders them to PNG without one.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", bad.Sprint("error:"), err)
		os.Exit(1)
	}
}
