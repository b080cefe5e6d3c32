// Command gatepipe runs programs on the gate-level five-stage pipeline.
package main

import (
	"github.com/sarchlab/gatepipe/gatepipe/cmd"
)

func main() {
	cmd.Execute()
}
