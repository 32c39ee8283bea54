package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/crossplay/banana-engine/internal/auth"
	"github.com/crossplay/banana-engine/internal/db"
	"github.com/crossplay/banana-engine/internal/middleware"
	"github.com/crossplay/banana-engine/internal/models"
	"github.com/crossplay/banana-engine/pkg/bag"
	"github.com/crossplay/banana-engine/pkg/dictionary"
	"github.com/crossplay/banana-engine/pkg/engine"
	"github.com/crossplay/banana-engine/pkg/multiset"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handlers struct {
	db          *db.Database
	authService *auth.AuthService
	dict        *dictionary.Store
	hub         HubInterface
}

// HubInterface defines the methods the solve handlers need from the
// realtime hub, so this package does not import internal/realtime
// directly and can be exercised with a fake in tests.
type HubInterface interface {
	BroadcastProgress(sessionID string, placement models.PlacementDTO)
	BroadcastFinished(sessionID, outcome string, playSeq []models.PlacementDTO, elapsedMs int64)
}

func NewHandlers(database *db.Database, authService *auth.AuthService, dict *dictionary.Store) *Handlers {
	return &Handlers{
		db:          database,
		authService: authService,
		dict:        dict,
		hub:         nil, // Will be set via SetHub
	}
}

// SetHub attaches the realtime hub so solve endpoints can broadcast
// progress to spectators; nil-safe if no hub is wired (e.g. demo mode).
func (h *Handlers) SetHub(hub HubInterface) {
	h.hub = hub
}

// Auth Handlers

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"displayName" binding:"required,min=2,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GuestRequest struct {
	DisplayName string `json:"displayName" binding:"omitempty,max=50"`
}

type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existingUser, err := h.db.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if existingUser != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hashedPassword, err := h.authService.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    hashedPassword,
		IsGuest:     false,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.db.CreateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Email, user.DisplayName, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{User: *user, Token: token})
}

func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !h.authService.CheckPassword(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Email, user.DisplayName, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{User: *user, Token: token})
}

func (h *Handlers) Guest(c *gin.Context) {
	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guestID := uuid.New().String()

	displayName := req.DisplayName
	if displayName == "" {
		displayName = "Guest_" + guestID[:8]
	}

	user := &models.User{
		ID:          guestID,
		Email:       "guest_" + guestID[:8] + "@banana-engine.local",
		DisplayName: displayName,
		IsGuest:     true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.db.CreateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create guest user"})
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Email, user.DisplayName, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{User: *user, Token: token})
}

// User Handlers

func (h *Handlers) GetMe(c *gin.Context) {
	claims := middleware.GetAuthUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	user, err := h.db.GetUserByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handlers) GetMyStats(c *gin.Context) {
	claims := middleware.GetAuthUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	stats, err := h.db.GetUserStats(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stats not found"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetMyHistory returns the caller's past solve records, newest first.
func (h *Handlers) GetMyHistory(c *gin.Context) {
	claims := middleware.GetAuthUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	history, err := h.db.GetUserSolveHistory(claims.UserID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// Solve session handlers

// CreateSolveSession handles POST /api/solve/sessions: registers a new
// spectatable solve session that a subsequent call to SolveScratch or
// SolveExisting can stream progress into over the realtime hub.
func (h *Handlers) CreateSolveSession(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "solve sessions are not available in demo mode"})
		return
	}

	claims := middleware.GetAuthUser(c)
	hostID := "anonymous"
	if claims != nil {
		hostID = claims.UserID
	}

	sess := &models.SolveSession{
		ID:        uuid.New().String(),
		HostID:    hostID,
		CreatedAt: time.Now(),
	}
	if err := h.db.CreateSolveSession(sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, sess)
}

// Solve handlers

// SolveScratch handles POST /api/solve/scratch: build a board from an
// empty grid for the supplied hand.
func (h *Handlers) SolveScratch(c *gin.Context) {
	var req models.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hand, err := decodeHand(req.Hand)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := engine.Config{MaxWordsToCheck: req.MaxWords}
	start := time.Now()
	result, err := engine.PlayFromScratch(hand, h.dict, cfg)
	elapsed := time.Since(start).Milliseconds()

	if err == engine.ErrInvalidInput {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hand must hold at least two tiles"})
		return
	}
	if err == engine.ErrDump {
		h.recordSolve(c, hand, "dump", 0, elapsed)
		if req.SessionID != "" && h.hub != nil {
			h.hub.BroadcastFinished(req.SessionID, "dump", nil, elapsed)
		}
		c.JSON(http.StatusOK, models.SolveResponse{Outcome: "dump", ElapsedMs: elapsed})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "solve failed"})
		return
	}

	h.recordSolve(c, hand, "success", len(result.PlaySeq), elapsed)
	response := h.toSolveResponse(result, nil, elapsed)
	if req.SessionID != "" && h.hub != nil {
		h.hub.BroadcastFinished(req.SessionID, "success", response.PlaySeq, elapsed)
	}
	c.JSON(http.StatusOK, response)
}

// SolveExisting handles POST /api/solve/existing: replays a prior play
// sequence and decides the cheapest next step for an edited hand, per the
// Compare-driven strategy table.
func (h *Handlers) SolveExisting(c *gin.Context) {
	var req models.SolveFromExistingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prevHand, err := decodeHand(req.PrevHand)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	newHand, err := decodeHand(req.NewHand)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prevPlaySeq, err := decodePlaySeq(req.PrevPlaySeq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prevBoard, err := replayBoard(prevPlaySeq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prevPlaySeq does not replay onto a valid board"})
		return
	}

	prev := &engine.Result{Board: prevBoard, PlaySeq: prevPlaySeq, Hand: prevHand}

	cfg := engine.Config{MaxWordsToCheck: req.MaxWords}
	start := time.Now()
	result, err := engine.Decide(prev, prevHand, newHand, h.dict, cfg)
	elapsed := time.Since(start).Milliseconds()

	if err == engine.ErrInvalidInput {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hand must hold at least two tiles"})
		return
	}
	if err == engine.ErrDump {
		h.recordSolve(c, newHand, "dump", 0, elapsed)
		if req.SessionID != "" && h.hub != nil {
			h.hub.BroadcastFinished(req.SessionID, "dump", nil, elapsed)
		}
		c.JSON(http.StatusOK, models.SolveResponse{Outcome: "dump", ElapsedMs: elapsed})
		return
	}
	if err != nil {
		c.JSON(http.StatusOK, models.SolveResponse{Outcome: "no_result", ElapsedMs: elapsed})
		return
	}

	h.recordSolve(c, newHand, "success", len(result.PlaySeq), elapsed)
	response := h.toSolveResponse(result, prevPlaySeq, elapsed)
	if req.SessionID != "" && h.hub != nil {
		h.hub.BroadcastFinished(req.SessionID, "success", response.PlaySeq, elapsed)
	}
	c.JSON(http.StatusOK, response)
}

// RandomHand handles POST /api/hands/random: draws a practice hand from a
// freshly shuffled tile bag. The 288-tile double-Bananagrams bag is
// reserved for registered accounts: a guest or anonymous caller asking
// for Doubled gets a 403 rather than a silently smaller/standard bag.
func (h *Handlers) RandomHand(c *gin.Context) {
	var req models.RandomHandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// middleware.GateDoubleBananagrams, ahead of this handler in the route
	// chain, has already rejected a guest's req.Doubled==true before we get
	// here.

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	b := bag.NewStandard(req.Doubled, seed)
	hand, err := b.Draw(req.TileCount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hand": encodeHand(hand)})
}

func (h *Handlers) recordSolve(c *gin.Context, hand multiset.Hand, outcome string, wordsUsed int, elapsedMs int64) {
	if h.db == nil {
		return
	}
	claims := middleware.GetAuthUser(c)
	if claims == nil {
		return
	}

	rec := &models.SolveRecord{
		ID:        uuid.New().String(),
		UserID:    claims.UserID,
		Hand:      handLabel(hand),
		Outcome:   outcome,
		WordsUsed: wordsUsed,
		ElapsedMs: elapsedMs,
		CreatedAt: time.Now(),
	}
	h.db.CreateSolveRecord(rec)
}

// toSolveResponse marshals a solve result to its wire form. priorPlaySeq,
// when non-nil, is the play sequence the solve continued from; cells it
// covers are marked with a trailing "*" in the rendered board (spec.md
// §6's board_string) so a client can distinguish carried-over tiles from
// the ones this solve just placed.
func (h *Handlers) toSolveResponse(result *engine.Result, priorPlaySeq []engine.Placement, elapsedMs int64) models.SolveResponse {
	return models.SolveResponse{
		Outcome:   "success",
		PlaySeq:   encodePlaySeq(result.PlaySeq),
		Board:     engine.DisplayBoard(result.Board, result.PlaySeq, priorPlaySeq),
		Hand:      encodeHand(result.Hand),
		ElapsedMs: elapsedMs,
	}
}

// Health and metrics

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"dictionarySize": h.dict.Size(),
	})
}

func (h *Handlers) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.GetMetrics())
}
