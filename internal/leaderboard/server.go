package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/neon-snake/internal/storage"
)

// maxListLimit caps GET /api/scores.
const maxListLimit = 100

// ScoresResponse is the body of GET /api/scores.
type ScoresResponse struct {
	Period  storage.Period       `json:"period"`
	Entries []storage.ScoreEntry `json:"entries"`
}

// SubmitRequest is the body of POST /api/scores.
type SubmitRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// RankResponse is the body of GET /api/scores/rank.
type RankResponse struct {
	Period storage.Period `json:"period"`
	Score  int            `json:"score"`
	Rank   int            `json:"rank"`
}

// Server hosts a shared board over HTTP with a WebSocket live feed.
type Server struct {
	board  Board
	hub    *hub
	log    *log.Logger
	engine *gin.Engine
}

// NewServer creates a server around board.
func NewServer(board Board, logger *log.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		board:  board,
		hub:    newHub(logger),
		log:    logger,
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	api.GET("/scores", s.listScores)
	api.POST("/scores", s.submitScore)
	api.GET("/scores/rank", s.rank)
	api.GET("/live", func(c *gin.Context) {
		s.hub.serve(c.Writer, c.Request)
	})
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "subscribers": s.hub.subscribers()})
	})
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting leaderboard server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("leaderboard: serve %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Stopping leaderboard server")
	s.hub.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("leaderboard: shutdown: %w", err)
	}
	return nil
}

func (s *Server) listScores(c *gin.Context) {
	period, err := storage.ParsePeriod(c.Query("period"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(TopSize)))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	limit = min(limit, maxListLimit)

	entries, err := s.board.Top(c.Request.Context(), period, limit)
	if err != nil {
		s.log.Error("list scores failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read scores"})
		return
	}
	if entries == nil {
		entries = []storage.ScoreEntry{}
	}
	c.JSON(http.StatusOK, ScoresResponse{Period: period, Entries: entries})
}

func (s *Server) submitScore(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if req.Score <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score must be positive"})
		return
	}

	entry, err := s.board.Submit(c.Request.Context(), req.Name, req.Score)
	if err != nil {
		s.log.Error("submit score failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save score"})
		return
	}
	s.hub.broadcast(entry)
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) rank(c *gin.Context) {
	period, err := storage.ParsePeriod(c.Query("period"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	score, err := strconv.Atoi(c.Query("score"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score must be an integer"})
		return
	}

	rank, err := s.board.Rank(c.Request.Context(), period, score)
	if err != nil {
		s.log.Error("rank failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot compute rank"})
		return
	}
	c.JSON(http.StatusOK, RankResponse{Period: period, Score: score, Rank: rank})
}

// requestLogger logs each request through the shared logger.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}
