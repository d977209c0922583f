package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/stepper"
)

const (
	minRandomSteps = 2
	maxRandomSteps = 6
)

type randomOpts struct {
	outputOpts
	count int
	seed  uint64
}

func newRandomCmd() *cobra.Command {
	var opts randomOpts

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Render a random step sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.count < 0 {
				return fmt.Errorf("--count must not be negative")
			}
			seed := opts.seed
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			loggerFromContext(cmd.Context()).Debug("Random steps", "seed", seed)

			steps := randomSteps(rand.New(rand.NewPCG(seed, seed)), opts.count)
			style := stepper.DefaultStyle()
			return renderSteps(cmd.Context(), cmd.OutOrStdout(), steps, style, 0, 0, &opts.outputOpts)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of steps (random 2-6 when 0)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (time based when unset)")
	return cmd
}

// randomSteps builds n green steps joined by gradients towards random line
// colors. n <= 0 picks a count between 2 and 6.
func randomSteps(rng *rand.Rand, n int) stepper.Sequence {
	if n <= 0 {
		n = minRandomSteps + rng.IntN(maxRandomSteps-minRandomSteps+1)
	}
	steps := make(stepper.Sequence, n)
	for i := range steps {
		steps[i] = stepper.Step{
			CircleColor: stepper.Green,
			LineColor:   randomColor(rng),
			Label:       fmt.Sprintf("Title is %d", i),
			UseGradient: true,
		}
	}
	return steps
}

func randomColor(rng *rand.Rand) stepper.RGBA {
	return stepper.FromARGB32(0xff000000 | rng.Uint32()&0xffffff)
}
