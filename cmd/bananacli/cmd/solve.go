package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/crossplay/banana-engine/pkg/board"
	"github.com/crossplay/banana-engine/pkg/dictionary"
	"github.com/crossplay/banana-engine/pkg/engine"
	"github.com/crossplay/banana-engine/pkg/multiset"
	"github.com/spf13/cobra"
)

var (
	solveHand       string
	solveHandFile   string
	solvePriorFile  string
	solveDictionary string
	solveMaxWords   int
)

// dictionaryAliases maps the short/long names from spec.md's external
// dictionary examples to their on-disk paths; anything else passed to
// --dictionary is treated as a literal file path.
var dictionaryAliases = map[string]string{
	"short": "dictionaries/enable1.txt",
	"long":  "dictionaries/twl06.txt",
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a hand from scratch or continue from a prior board",
	Long: `Solve arranges an entire letter hand into a single connected crossword.

Examples:
  bananacli solve --hand ANTEATER --dictionary long --max-words 5000
  bananacli solve --hand-file hand.txt --prior board.json`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVar(&solveHand, "hand", "", "letters to solve, e.g. ANTEATER")
	solveCmd.Flags().StringVar(&solveHandFile, "hand-file", "", "path to a file containing the hand's letters")
	solveCmd.Flags().StringVar(&solvePriorFile, "prior", "", "path to a JSON play sequence to continue from (see PlacementDTO)")
	solveCmd.Flags().StringVarP(&solveDictionary, "dictionary", "d", "short", "dictionary: \"short\", \"long\", or a file path")
	solveCmd.Flags().IntVar(&solveMaxWords, "max-words", 0, "cap on candidate placement attempts; each of the first six seed words gets its own budget, later seeds share one (0 = unlimited)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	hand, err := readHand()
	if err != nil {
		return err
	}

	dict, err := loadDictionary(solveDictionary)
	if err != nil {
		return err
	}
	logf("loaded dictionary: %d words\n", dict.Size())

	cfg := engine.Config{MaxWordsToCheck: solveMaxWords}

	start := time.Now()
	var result *engine.Result
	var solveErr error
	var priorPlaySeq []engine.Placement

	if solvePriorFile != "" {
		prior, priorHand, perr := readPrior(solvePriorFile)
		if perr != nil {
			return perr
		}
		priorPlaySeq = prior.PlaySeq
		result, solveErr = engine.Decide(prior, priorHand, hand, dict, cfg)
	} else {
		result, solveErr = engine.PlayFromScratch(hand, dict, cfg)
	}
	elapsed := time.Since(start)

	if solveErr == engine.ErrInvalidInput {
		return fmt.Errorf("hand must hold at least two tiles")
	}
	if solveErr == engine.ErrDump {
		fmt.Println("dump: no arrangement found for this hand")
		return nil
	}
	if solveErr != nil {
		return fmt.Errorf("solve failed: %w", solveErr)
	}

	fmt.Printf("solved in %s, %d placements\n", elapsed.Round(time.Millisecond), len(result.PlaySeq))
	for _, row := range engine.DisplayBoard(result.Board, result.PlaySeq, priorPlaySeq) {
		line := strings.Join(row, "")
		if strings.TrimSpace(line) != "" {
			fmt.Println(line)
		}
	}
	return nil
}

func readHand() (multiset.Hand, error) {
	var letters string
	switch {
	case solveHand != "":
		letters = solveHand
	case solveHandFile != "":
		data, err := os.ReadFile(solveHandFile)
		if err != nil {
			return multiset.Hand{}, fmt.Errorf("reading hand file: %w", err)
		}
		letters = strings.TrimSpace(string(data))
	default:
		return multiset.Hand{}, fmt.Errorf("one of --hand or --hand-file is required")
	}

	var hand multiset.Hand
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			continue
		}
		hand[r-'A']++
	}
	return hand, nil
}

// cliPlacement mirrors models.PlacementDTO without importing internal/
// packages from a cmd/ tree, matching the teacher's convention of CLI
// tools carrying their own small JSON shapes instead of reaching into
// internal/.
type cliPlacement struct {
	Word      string `json:"word"`
	StartRow  int    `json:"startRow"`
	StartCol  int    `json:"startCol"`
	Direction string `json:"direction"`
}

func readPrior(path string) (*engine.Result, multiset.Hand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, multiset.Hand{}, fmt.Errorf("reading prior file: %w", err)
	}

	var dtos []cliPlacement
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, multiset.Hand{}, fmt.Errorf("parsing prior file: %w", err)
	}

	placements := make([]engine.Placement, 0, len(dtos))
	for _, dto := range dtos {
		word, err := dictionary.EncodeWord(dto.Word)
		if err != nil {
			return nil, multiset.Hand{}, fmt.Errorf("prior word %q: %w", dto.Word, err)
		}
		dir := board.Horizontal
		if strings.EqualFold(dto.Direction, "vertical") {
			dir = board.Vertical
		}
		placements = append(placements, engine.Placement{
			Word:      word,
			StartRow:  dto.StartRow,
			StartCol:  dto.StartCol,
			Direction: dir,
		})
	}

	if len(placements) == 0 {
		return nil, multiset.Hand{}, fmt.Errorf("prior file contains no placements")
	}

	return replayPrior(placements)
}

// replayPrior rebuilds a board and the hand it consumed from a play
// sequence read off disk, the CLI analogue of internal/api's
// replayBoard: every letter is assumed available since the sequence was
// already validated when it was first produced.
func replayPrior(playSeq []engine.Placement) (*engine.Result, multiset.Hand, error) {
	var unlimited multiset.Hand
	for i := range unlimited {
		unlimited[i] = 255
	}

	b := board.New()
	seed := playSeq[0]
	seedResult := board.PlaySeed(b, seed.Word, seed.StartRow, seed.StartCol, seed.Direction == board.Horizontal, unlimited)
	if seedResult.Class == board.Rejected || seedResult.Class == board.OutOfBounds {
		return nil, multiset.Hand{}, fmt.Errorf("seed placement does not fit the board")
	}

	var used multiset.Hand
	for _, c := range seedResult.Written {
		used[b.At(c.Row, c.Col)]++
	}

	for _, p := range playSeq[1:] {
		result := board.PlayWord(b, p.Word, p.StartRow, p.StartCol, p.Direction == board.Horizontal, unlimited)
		if result.Class == board.Rejected || result.Class == board.OutOfBounds {
			return nil, multiset.Hand{}, fmt.Errorf("prior play sequence does not replay onto a valid board")
		}
		for _, c := range result.Written {
			used[b.At(c.Row, c.Col)]++
		}
	}

	return &engine.Result{Board: b, PlaySeq: playSeq, Hand: used}, used, nil
}

func loadDictionary(name string) (*dictionary.Store, error) {
	path := name
	if alias, ok := dictionaryAliases[strings.ToLower(name)]; ok {
		path = alias
	}
	return dictionary.Load(path)
}
