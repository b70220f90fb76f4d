// Package api exposes the HTTP surface of the relay: account and session
// management, room administration and history, plus the websocket upgrade
// endpoint. Everything under /api except register and login requires the
// session cookie.
package api

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"chat-relay/auth"
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
	"chat-relay/services"

	"github.com/gin-gonic/gin"
)

const (
	cookieName      = "token"
	identityKey     = "identity"
	defaultPageSize = 50
)

type Server struct {
	log      *slog.Logger
	auth     services.IAuthService
	chat     services.IChatService
	rooms    repositories.IRoomRepository
	users    repositories.IUserRepository
	tokens   contract.ITokenService
	tokenTTL time.Duration
}

func NewServer(log *slog.Logger, authService services.IAuthService,
	chat services.IChatService, rooms repositories.IRoomRepository,
	users repositories.IUserRepository, tokens contract.ITokenService,
	tokenTTL time.Duration) *Server {
	return &Server{
		log:      log,
		auth:     authService,
		chat:     chat,
		rooms:    rooms,
		users:    users,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// Router builds the gin engine. The websocket handler is passed in rather
// than owned, so tests can mount the API without a live relay core.
func (s *Server) Router(wsHandler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	users := router.Group("/api/users")
	{
		users.POST("/register", s.register)
		users.POST("/login", s.login)
		users.POST("/logout", s.logout)
		users.GET("/me", s.authenticated(), s.me)
	}

	rooms := router.Group("/api/rooms", s.authenticated())
	{
		rooms.POST("", s.createRoom)
		rooms.GET("", s.listRooms)
		rooms.POST("/:id/members", s.addMember)
		rooms.GET("/:id/messages", s.roomMessages)
		rooms.GET("/:id/search", s.searchRoom)
	}

	if wsHandler != nil {
		router.GET("/ws", wsHandler)
	}
	return router
}

// authenticated verifies the session credential and stashes the identity in
// the request context.
func (s *Server) authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := requestToken(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credential"})
			return
		}
		id, err := s.tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

func (s *Server) register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, token, err := s.auth.Register(req)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, accountResponse(account, token))
}

func (s *Server) login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, token, err := s.auth.Login(req)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.setSessionCookie(c, token)
	c.JSON(http.StatusOK, accountResponse(account, token))
}

func (s *Server) logout(c *gin.Context) {
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (s *Server) me(c *gin.Context) {
	id := identity(c)
	user, err := s.users.GetUserByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

type createRoomRequest struct {
	Name    string   `json:"name" binding:"required"`
	Members []string `json:"members"`
}

func (s *Server) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The creator is always a member of the room they create.
	members := []domain.UserID{identity(c)}
	for _, m := range req.Members {
		if domain.UserID(m) != members[0] {
			members = append(members, domain.UserID(m))
		}
	}

	room, err := s.rooms.CreateRoom(req.Name, members)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (s *Server) listRooms(c *gin.Context) {
	rooms, err := s.rooms.RoomsFor(identity(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

type addMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (s *Server) addMember(c *gin.Context) {
	room := domain.RoomID(c.Param("id"))
	if allowed, err := s.memberOf(c, room); err != nil {
		s.fail(c, err)
		return
	} else if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": errors.ErrNotAMember.Error()})
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.rooms.AddMember(room, domain.UserID(req.UserID)); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) roomMessages(c *gin.Context) {
	room := domain.RoomID(c.Param("id"))
	if allowed, err := s.memberOf(c, room); err != nil {
		s.fail(c, err)
		return
	} else if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": errors.ErrNotAMember.Error()})
		return
	}

	var cursor *string
	if raw := c.Query("cursor"); raw != "" {
		cursor = &raw
	}

	messages, next, err := s.chat.History(room, cursor)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages, "cursor": next})
}

func (s *Server) searchRoom(c *gin.Context) {
	room := domain.RoomID(c.Param("id"))
	if allowed, err := s.memberOf(c, room); err != nil {
		s.fail(c, err)
		return
	} else if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": errors.ErrNotAMember.Error()})
		return
	}

	terms := c.Query("q")
	if terms == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing q parameter"})
		return
	}

	hits, err := s.chat.Search(c.Request.Context(), room, terms, defaultPageSize)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hits": hits})
}

func (s *Server) memberOf(c *gin.Context, room domain.RoomID) (bool, error) {
	return s.rooms.IsMember(c.Request.Context(), identity(c), room)
}

// fail maps domain errors onto HTTP statuses. Unknown errors stay opaque.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, errors.ErrInvalidCredentials), stderrors.Is(err, errors.ErrTokenInvalid), stderrors.Is(err, errors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case stderrors.Is(err, errors.ErrUserAlreadyExists), stderrors.Is(err, errors.ErrRoomExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case stderrors.Is(err, errors.ErrInvalidPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case stderrors.Is(err, errors.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case stderrors.Is(err, errors.ErrNotAMember):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		s.log.Error("Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(cookieName, token, int(s.tokenTTL.Seconds()), "/", "", false, true)
}

func accountResponse(account services.Account, token string) gin.H {
	return gin.H{
		"id":    account.ID,
		"name":  account.Name,
		"email": account.Email,
		"token": token,
	}
}

func identity(c *gin.Context) domain.UserID {
	id, _ := c.Get(identityKey)
	userID, _ := id.(domain.UserID)
	return userID
}

func requestToken(r *http.Request) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}
