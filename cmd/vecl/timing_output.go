package main

import (
	"fmt"
	"io"
	"time"

	"vecl/internal/buildpipeline"
	"vecl/internal/driver"
)

// printStageTimings writes one line per recorded pipeline stage.
func printStageTimings(out io.Writer, timings buildpipeline.Timings) error {
	for _, stage := range buildpipeline.Stages() {
		if !timings.Has(stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%-9s %7.2f ms\n", stage, toMillis(timings.Duration(stage))); err != nil {
			return err
		}
	}
	return nil
}

// printPhaseTimings writes the analysis phase table of res, if it has one.
func printPhaseTimings(out io.Writer, res *driver.Result) error {
	if res == nil || res.Timer == nil {
		return nil
	}
	_, err := io.WriteString(out, res.Timer.Summary())
	return err
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
