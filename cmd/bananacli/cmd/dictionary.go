package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dictStatsName string

var dictionaryCmd = &cobra.Command{
	Use:   "dictionary",
	Short: "Inspect a loaded dictionary",
}

var dictionaryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display word-count statistics for a dictionary",
	Long: `Loads a dictionary and reports its size and length distribution.

Examples:
  bananacli dictionary stats --dictionary short
  bananacli dictionary stats --dictionary long`,
	RunE: runDictionaryStats,
}

func init() {
	rootCmd.AddCommand(dictionaryCmd)
	dictionaryCmd.AddCommand(dictionaryStatsCmd)

	dictionaryStatsCmd.Flags().StringVarP(&dictStatsName, "dictionary", "d", "short", "dictionary: \"short\", \"long\", or a file path")
}

func runDictionaryStats(cmd *cobra.Command, args []string) error {
	dict, err := loadDictionary(dictStatsName)
	if err != nil {
		return err
	}

	byLength := make(map[int]int)
	for _, w := range dict.Words {
		byLength[len(w)]++
	}

	fmt.Printf("Dictionary: %s\n", dictStatsName)
	fmt.Printf("Total words: %d\n\n", dict.Size())
	fmt.Println("Words by length:")
	minLen, maxLen := 26, 2
	for length := range byLength {
		if length < minLen {
			minLen = length
		}
		if length > maxLen {
			maxLen = length
		}
	}
	for length := minLen; length <= maxLen; length++ {
		if count, ok := byLength[length]; ok {
			fmt.Printf("  %2d letters: %d\n", length, count)
		}
	}
	return nil
}
