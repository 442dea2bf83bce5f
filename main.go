// Command um runs a Universal Machine program file.
//
// Usage: um <program-file>
//
// Exit code is 0 on a clean halt, non-zero on any runtime failure.
package main

import (
	"bufio"
	"fmt"
	"os"

	"um/machine"
	"um/terminal"
)

func main() {
	os.Exit(run(os.Args))
}

// run is split out from main so it can be exercised without os.Exit.
func run(args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: um <program-file>")
		return 1
	}

	f, err := os.Open(args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer f.Close()

	m, err := machine.Load(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	host, err := terminal.NewHost()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer host.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if err := machine.Run(m, host.Reader(), out); err != nil {
		host.Close()
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
