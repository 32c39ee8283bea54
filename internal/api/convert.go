package api

import (
	"errors"
	"strings"

	"github.com/crossplay/banana-engine/internal/models"
	"github.com/crossplay/banana-engine/pkg/board"
	"github.com/crossplay/banana-engine/pkg/dictionary"
	"github.com/crossplay/banana-engine/pkg/engine"
	"github.com/crossplay/banana-engine/pkg/multiset"
)

// decodeHand turns the wire letter-count map into a multiset.Hand.
func decodeHand(letters models.HandLetters) (multiset.Hand, error) {
	var hand multiset.Hand
	for letter, count := range letters {
		if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
			return hand, errors.New("hand keys must be single uppercase letters")
		}
		if count < 0 || count > 255 {
			return hand, errors.New("hand counts must be between 0 and 255")
		}
		hand[letter[0]-'A'] = byte(count)
	}
	return hand, nil
}

// encodeHand is the inverse of decodeHand, omitting zero counts.
func encodeHand(hand multiset.Hand) models.HandLetters {
	out := make(models.HandLetters)
	for i, count := range hand {
		if count > 0 {
			out[string(rune('A'+i))] = int(count)
		}
	}
	return out
}

func directionFromString(s string) (board.Direction, error) {
	switch strings.ToLower(s) {
	case "horizontal":
		return board.Horizontal, nil
	case "vertical":
		return board.Vertical, nil
	default:
		return 0, errors.New("direction must be \"horizontal\" or \"vertical\"")
	}
}

func directionToString(d board.Direction) string {
	if d == board.Vertical {
		return "vertical"
	}
	return "horizontal"
}

func decodePlaySeq(dtos []models.PlacementDTO) ([]engine.Placement, error) {
	out := make([]engine.Placement, 0, len(dtos))
	for _, dto := range dtos {
		word, err := dictionary.EncodeWord(dto.Word)
		if err != nil {
			return nil, err
		}
		dir, err := directionFromString(dto.Direction)
		if err != nil {
			return nil, err
		}
		out = append(out, engine.Placement{
			Word:     word,
			StartRow: dto.StartRow,
			StartCol: dto.StartCol,
			Direction: dir,
		})
	}
	return out, nil
}

func encodePlaySeq(placements []engine.Placement) []models.PlacementDTO {
	out := make([]models.PlacementDTO, 0, len(placements))
	for _, p := range placements {
		out = append(out, models.PlacementDTO{
			Word:      dictionary.DecodeWord(p.Word),
			StartRow:  p.StartRow,
			StartCol:  p.StartCol,
			Direction: directionToString(p.Direction),
		})
	}
	return out
}

// replayBoard reconstructs a board from a client-supplied play sequence by
// replaying each placement with an oversized hand (every letter assumed
// available), since the sequence was already validated when it was first
// produced by a solve endpoint; only the geometry is being reconstructed.
func replayBoard(playSeq []engine.Placement) (*board.Board, error) {
	if len(playSeq) == 0 {
		return nil, errors.New("empty play sequence")
	}

	var unlimited multiset.Hand
	for i := range unlimited {
		unlimited[i] = 255
	}

	b := board.New()
	seed := playSeq[0]
	seedResult := board.PlaySeed(b, seed.Word, seed.StartRow, seed.StartCol, seed.Direction == board.Horizontal, unlimited)
	if seedResult.Class == board.Rejected || seedResult.Class == board.OutOfBounds {
		return nil, errors.New("seed placement does not fit the board")
	}

	for _, p := range playSeq[1:] {
		result := board.PlayWord(b, p.Word, p.StartRow, p.StartCol, p.Direction == board.Horizontal, unlimited)
		if result.Class == board.Rejected || result.Class == board.OutOfBounds {
			return nil, errors.New("play sequence does not replay onto a valid board")
		}
	}

	return b, nil
}

// handLabel renders a hand as sorted letters for compact storage, e.g.
// a hand of {A:2, B:1} becomes "AAB".
func handLabel(hand multiset.Hand) string {
	var b strings.Builder
	for i, count := range hand {
		for n := byte(0); n < count; n++ {
			b.WriteByte(byte('A' + i))
		}
	}
	return b.String()
}
