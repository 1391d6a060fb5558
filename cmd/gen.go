package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/preeja73/robocurrent/dal"
	"github.com/preeja73/robocurrent/testtools"
	"github.com/preeja73/robocurrent/ts"
)

var (
	genOut          string
	genTrait        string
	genAxes         int
	genPoints       int
	genFreqSeconds  int
	genSeed         int64
	genDeviateAxis  int
	genDeviateAt    int
	genDeviateLen   int
	genDeviateShift float64
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a synthetic joint-current CSV with a known deviation window",
	RunE: func(cmd *cobra.Command, args []string) error {
		if genAxes < 1 || genAxes > dal.NumAxes {
			return fmt.Errorf("axes must be in [1, %v]", dal.NumAxes)
		}

		begin := time.Now().UTC().Truncate(time.Minute).Add(-time.Duration(genPoints*genFreqSeconds) * time.Second)
		freq := time.Duration(genFreqSeconds) * time.Second
		end := begin.Add(time.Duration(genPoints-1) * freq)
		rnd := rand.New(rand.NewSource(genSeed))

		series := make(map[int]ts.Points, genAxes)
		for axis := 1; axis <= genAxes; axis++ {
			parts := []testtools.Generator{
				// slow per-axis drift around a distinct base current
				&testtools.LineGener{
					A:       0.0001 * float64(axis),
					B:       1.5 * float64(axis),
					Stamp2X: testtools.SecondsSince(begin),
				},
				&testtools.UniRandGener{Min: -0.5, Max: 0.5, Rnd: rnd},
			}
			if axis == genDeviateAxis && genDeviateLen > 0 {
				from := begin.Add(time.Duration(genDeviateAt) * freq)
				parts = append(parts, &testtools.DeviationGener{
					Offset: genDeviateShift,
					From:   from,
					Until:  from.Add(time.Duration(genDeviateLen) * freq),
				})
			}
			series[axis] = testtools.GenPoints(begin, end, freq, &testtools.SumGener{Parts: parts})
		}

		if err := testtools.Measurements2CSVFile(genOut, genTrait, series); err != nil {
			return fmt.Errorf("write csv err: %v", err)
		}
		fmt.Printf("wrote %v points x %v axes to %v\n", genPoints, genAxes, genOut)
		return nil
	},
}

func init() {
	genCmd.Flags().StringVar(&genOut, "out", "telemetry.csv", "output csv path")
	genCmd.Flags().StringVar(&genTrait, "trait", "Current", "trait name")
	genCmd.Flags().IntVar(&genAxes, "axes", dal.NumAxes, "number of axes to populate")
	genCmd.Flags().IntVar(&genPoints, "points", 500, "number of samples per axis")
	genCmd.Flags().IntVar(&genFreqSeconds, "freq-seconds", 30, "sampling interval in seconds")
	genCmd.Flags().Int64Var(&genSeed, "seed", 1, "noise seed")
	genCmd.Flags().IntVar(&genDeviateAxis, "deviate-axis", 1, "axis receiving the injected deviation")
	genCmd.Flags().IntVar(&genDeviateAt, "deviate-at", 400, "sample index where the deviation starts")
	genCmd.Flags().IntVar(&genDeviateLen, "deviate-len", 20, "deviation length in samples (0 disables)")
	genCmd.Flags().Float64Var(&genDeviateShift, "deviate-shift", 6, "deviation offset added to the axis current")
	rootCmd.AddCommand(genCmd)
}
