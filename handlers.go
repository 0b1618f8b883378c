package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"brokemate/models"
	"brokemate/pkg/auth"
	"brokemate/pkg/ledger"
	"brokemate/pkg/llm"

	"github.com/gin-gonic/gin"
)

// loginTokenTTL is the access-token lifetime handed out at login.
const loginTokenTTL = 30 * time.Minute

const userContextKey = "user"

// server wires the stores and the advisory layer into gin handlers. Every
// protected handler derives the acting username from the resolved token,
// never from the request itself.
type server struct {
	creds   *auth.Credentials
	tokens  *auth.Tokens
	ledger  *ledger.Store
	advisor advisorService
}

// advisorService is what the AI handlers need from pkg/advisor; an
// interface so tests can swap the model out for a stub.
type advisorService interface {
	Analyze(ctx context.Context, expenses []models.Expense) (string, error)
	Chat(ctx context.Context, expenses []models.Expense, query string) (string, error)
}

func (s *server) setupRoutes(r *gin.Engine) {
	r.POST("/register", s.registerHandler)
	r.POST("/login", s.loginHandler)
	authGroup := r.Group("")
	authGroup.Use(s.authRequired())
	authGroup.GET("/me", s.meHandler)
	authGroup.GET("/expenses", s.listExpensesHandler)
	authGroup.POST("/add-expense", s.addExpenseHandler)
	authGroup.PUT("/edit-expense/:id", s.editExpenseHandler)
	authGroup.POST("/flag-expense", s.flagExpenseHandler)
	authGroup.DELETE("/delete-expense/:id", s.deleteExpenseHandler)
	authGroup.POST("/analyze", s.analyzeHandler)
	authGroup.POST("/chat", s.chatHandler)
}

// authRequired is the single authorization checkpoint: bearer token out of
// the header, token service verify, then an existence check on the subject.
// All failure modes collapse into one 401 with a bearer challenge.
func (s *server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			unauthorized(c)
			return
		}
		username, err := s.tokens.Verify(authHeader[7:])
		if err != nil {
			unauthorized(c)
			return
		}
		user, ok := s.creds.Lookup(username)
		if !ok {
			unauthorized(c)
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
	c.Abort()
}

func currentUser(c *gin.Context) models.User {
	return c.MustGet(userContextKey).(models.User)
}

func (s *server) registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := s.creds.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateUser) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already registered"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.ledger.CreateLedger(user.Username)
	c.JSON(http.StatusCreated, user)
}

func (s *server) loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// One message for unknown user and wrong password.
	if !s.creds.Verify(req.Username, req.Password) {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect username or password"})
		return
	}
	token, err := s.tokens.Issue(req.Username, loginTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (s *server) meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"username": currentUser(c).Username})
}

// expenseRequest is shared by add and edit; both carry the full field set.
type expenseRequest struct {
	Amount      float64     `json:"amount" binding:"required,gt=0"`
	Category    string      `json:"category" binding:"required"`
	Description string      `json:"description"`
	Date        models.Date `json:"date"`
}

func bindExpense(c *gin.Context) (expenseRequest, bool) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	if req.Date.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return req, false
	}
	return req, true
}

func (s *server) listExpensesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.ledger.List(currentUser(c).Username))
}

func (s *server) addExpenseHandler(c *gin.Context) {
	req, ok := bindExpense(c)
	if !ok {
		return
	}
	record := s.ledger.Insert(currentUser(c).Username, req.Amount, req.Category, req.Description, req.Date)
	c.JSON(http.StatusCreated, record)
}

func (s *server) editExpenseHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}
	req, ok := bindExpense(c)
	if !ok {
		return
	}
	record, err := s.ledger.Update(currentUser(c).Username, id, req.Amount, req.Category, req.Description, req.Date)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *server) flagExpenseHandler(c *gin.Context) {
	var req struct {
		ID   int         `json:"id" binding:"required"`
		Flag models.Flag `json:"flag" binding:"required,oneof=red green"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, err := s.ledger.SetFlag(currentUser(c).Username, req.ID, req.Flag)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidFlag) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *server) deleteExpenseHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}
	if err := s.ledger.Delete(currentUser(c).Username, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) analyzeHandler(c *gin.Context) {
	// Snapshot first so no ledger lock is held during the model call.
	snapshot := s.ledger.List(currentUser(c).Username)
	analysis, err := s.advisor.Analyze(c.Request.Context(), snapshot)
	if err != nil {
		aiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

func (s *server) chatHandler(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snapshot := s.ledger.List(currentUser(c).Username)
	response, err := s.advisor.Chat(c.Request.Context(), snapshot, req.Query)
	if err != nil {
		aiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": response})
}

// aiError maps the completion failure classes onto status codes the same
// way the three classes are surfaced to clients: 504 timeout, 503
// unreachable, 500 anything else.
func aiError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, llm.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "AI service timed out."})
	case errors.Is(err, llm.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not connect to the AI service."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected AI error occurred."})
	}
}
