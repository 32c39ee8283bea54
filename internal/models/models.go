package models

import "time"

// User represents an account in the system, guest or registered.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	AvatarURL   *string   `json:"avatarUrl,omitempty"`
	Password    string    `json:"-"`
	IsGuest     bool      `json:"isGuest"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserStats aggregates a user's solve history.
type UserStats struct {
	UserID        string     `json:"userId"`
	SolvesRun     int        `json:"solvesRun"`
	SolvesOK      int        `json:"solvesOk"`
	DumpsHit      int        `json:"dumpsHit"`
	AvgSolveMs    float64    `json:"avgSolveMs"`
	LastPlayedAt  *time.Time `json:"lastPlayedAt,omitempty"`
}

// UserWithStats combines a user and its stats for a single API response.
type UserWithStats struct {
	User  User      `json:"user"`
	Stats UserStats `json:"stats"`
}

// HandLetters is the wire representation of a multiset.Hand: a map from
// uppercase letter to tile count, used on request and response bodies so
// clients never see the internal 0-25 index encoding.
type HandLetters map[string]int

// SolveRequest is the JSON body of POST /api/solve/scratch.
type SolveRequest struct {
	Hand      HandLetters `json:"hand" binding:"required"`
	MaxWords  int         `json:"maxWordsToCheck,omitempty"`
	SessionID string      `json:"sessionId,omitempty"`
}

// SolveFromExistingRequest is the JSON body of POST /api/solve/existing.
// PrevPlaySeq is the board-building replay sequence returned by an earlier
// solve, and NewHand is the hand after the player's edit (add, remove, or
// swap of tiles).
type SolveFromExistingRequest struct {
	PrevPlaySeq []PlacementDTO `json:"prevPlaySeq" binding:"required"`
	PrevHand    HandLetters    `json:"prevHand" binding:"required"`
	NewHand     HandLetters    `json:"newHand" binding:"required"`
	MaxWords    int            `json:"maxWordsToCheck,omitempty"`
	SessionID   string         `json:"sessionId,omitempty"`
}

// PlacementDTO is the wire form of engine.Placement: a decoded word string
// instead of symbol bytes, and a lowercase direction string.
type PlacementDTO struct {
	Word      string `json:"word"`
	StartRow  int    `json:"startRow"`
	StartCol  int    `json:"startCol"`
	Direction string `json:"direction"` // "horizontal" or "vertical"
}

// SolveResponse is the JSON body returned by the solve endpoints.
type SolveResponse struct {
	Outcome   string         `json:"outcome"` // "success", "dump", "no_result"
	PlaySeq   []PlacementDTO `json:"playSeq,omitempty"`
	Board     [][]string     `json:"board,omitempty"`
	Hand      HandLetters    `json:"hand,omitempty"`
	ElapsedMs int64          `json:"elapsedMs"`
}

// RandomHandRequest is the JSON body of POST /api/hands/random.
type RandomHandRequest struct {
	TileCount int    `json:"tileCount" binding:"required"`
	Doubled   bool   `json:"doubled,omitempty"`
	Seed      *int64 `json:"seed,omitempty"`
}

// SolveRecord is a persisted row describing one completed solve, written to
// the solve_history table for the /api/history endpoint.
type SolveRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Hand      string    `json:"hand"` // encoded as sorted letters, e.g. "AABNT"
	Outcome   string    `json:"outcome"`
	WordsUsed int       `json:"wordsUsed"`
	ElapsedMs int64     `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// SolveSession is a spectatable, in-progress or finished solve broadcast
// over the realtime hub, the Bananagrams analogue of the teacher's
// collaborative-room concept.
type SolveSession struct {
	ID        string     `json:"id"`
	HostID    string     `json:"hostId"`
	CreatedAt time.Time  `json:"createdAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

// SpectatorState is the state broadcast to spectators of a SolveSession:
// the board so far and the outcome once the solve finishes.
type SpectatorState struct {
	SessionID string         `json:"sessionId"`
	PlaySeq   []PlacementDTO `json:"playSeq"`
	Outcome   *string        `json:"outcome,omitempty"`
}
