// Command ltictl analyzes linear time-invariant systems given as transfer
// function coefficients, pole/zero lists, Butterworth prototypes or YAML
// system descriptions.
//
// Usage:
//
//	ltictl [command] [flags]
//
// Examples:
//
//	ltictl info --num 1 --den 1,1
//	ltictl bode --num 1 --den 1,2,1 --start-exp -2 --stop-exp 2 --format plot
//	ltictl response --butterworth-order 4 --cutoff 10 --ts 0.01 --type step
//	ltictl response --config plant.yaml --format csv > step.csv
//	ltictl serve --addr :8080
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
