// Command vzic converts the IANA/Olson time zone database into RFC 5545
// VTIMEZONE files, following the algorithm of the original vzic C
// program (see spec.md / DESIGN.md). This is the Cobra-based CLI
// collaborator named in spec §6.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vzic:", err)
		os.Exit(1)
	}
}
