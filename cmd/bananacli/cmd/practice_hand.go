package cmd

import (
	"fmt"
	"time"

	"github.com/crossplay/banana-engine/pkg/bag"
	"github.com/spf13/cobra"
)

var (
	practiceTiles int
	practiceSeed  int64
)

var practiceHandCmd = &cobra.Command{
	Use:   "practice-hand",
	Short: "Draw a random practice hand from a shuffled tile bag",
	Long: `Draws --tiles letters from a freshly shuffled standard (144) or
double (288) Bananagrams tile bag.

Examples:
  bananacli practice-hand --tiles 21
  bananacli practice-hand --tiles 144`,
	RunE: runPracticeHand,
}

func init() {
	rootCmd.AddCommand(practiceHandCmd)

	practiceHandCmd.Flags().IntVar(&practiceTiles, "tiles", 21, "number of tiles to draw (144 = standard bag, 288 = double bag)")
	practiceHandCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "shuffle seed (0 = derived from the current time)")
}

// standardBagSize is the total tile count of a non-doubled bag (sum of
// bag.StandardCounts); draws above it require the doubled bag.
const standardBagSize = 144

func runPracticeHand(cmd *cobra.Command, args []string) error {
	doubled := practiceTiles > standardBagSize
	seed := practiceSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	b := bag.NewStandard(doubled, seed)
	hand, err := b.Draw(practiceTiles)
	if err != nil {
		return fmt.Errorf("drawing hand: %w", err)
	}

	for i, count := range hand {
		for n := byte(0); n < count; n++ {
			fmt.Printf("%c", 'A'+i)
		}
	}
	fmt.Println()
	return nil
}
