package server

import (
	"errors"
	"net/http"
	"strconv"

	"oneaccord/models"
	"oneaccord/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultListLimit bounds list endpoints when the client sends no limit
const defaultListLimit = 50

// Handlers holds the services behind the HTTP surface
type Handlers struct {
	users         service.UserService
	wallets       service.WalletService
	transfers     service.TransferService
	conversations service.ConversationService
	feed          service.FeedService
}

// NewHandlers creates the HTTP handler set
func NewHandlers(
	users service.UserService,
	wallets service.WalletService,
	transfers service.TransferService,
	conversations service.ConversationService,
	feed service.FeedService,
) *Handlers {
	return &Handlers{
		users:         users,
		wallets:       wallets,
		transfers:     transfers,
		conversations: conversations,
		feed:          feed,
	}
}

// writeError maps business errors to HTTP status codes
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransferState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSelfTransfer), errors.Is(err, service.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))
	if err != nil || limit <= 0 {
		return defaultListLimit
	}
	return limit
}

// --- users ---

type signUpRequest struct {
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone"`
}

func (h *Handlers) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.SignUp(c.Request.Context(), req.Username, req.DisplayName, req.Phone)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handlers) getUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handlers) lookupUser(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	user, err := h.users.FindByUsername(c.Request.Context(), username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handlers) searchUsers(c *gin.Context) {
	excludeID, _ := uuid.Parse(c.Query("exclude"))

	users, err := h.users.SearchUsers(c.Request.Context(), c.Query("q"), excludeID, parseLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	c.JSON(http.StatusOK, users)
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
	ActiveRole  string `json:"activeRole"`
}

func (h *Handlers) updateProfile(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if req.ActiveRole != "" {
		user.ActiveRole = models.UserRole(req.ActiveRole)
	}

	if err := h.users.UpdateProfile(c.Request.Context(), user); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handlers) completeOnboarding(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.users.CompleteOnboarding(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) login(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.users.TouchLastLogin(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) getKeys(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	keys, err := h.users.GetKeys(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if keys == nil {
		keys = []*models.Key{}
	}
	c.JSON(http.StatusOK, keys)
}

type issueKeyRequest struct {
	KeyType string `json:"keyType" binding:"required"`
}

func (h *Handlers) issueKey(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req issueKeyRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.users.IssueKey(c.Request.Context(), id, models.KeyType(req.KeyType))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, key)
}

// --- wallet ---

func (h *Handlers) getWallet(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	wallet, err := h.wallets.GetWallet(c.Request.Context(), id, models.WalletTypePersonal)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

type createWalletRequest struct {
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

func (h *Handlers) createWallet(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req createWalletRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallet, err := h.wallets.CreateWallet(c.Request.Context(), id, models.WalletTypePersonal, req.InitialBalance)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wallet)
}

// --- transfers ---

type createTransferRequest struct {
	FromUserID uuid.UUID       `json:"fromUserId" binding:"required"`
	ToUserID   uuid.UUID       `json:"toUserId" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Purpose    string          `json:"purpose"`
}

func (h *Handlers) createTransfer(c *gin.Context) {
	var req createTransferRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transfer, err := h.transfers.CreateTransfer(c.Request.Context(), req.FromUserID, req.ToUserID, req.Amount, req.Purpose)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transfer)
}

type paymentRequestRequest struct {
	// PayerID is who is being asked to pay
	PayerID     uuid.UUID       `json:"payerId" binding:"required"`
	RequesterID uuid.UUID       `json:"requesterId" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Message     string          `json:"message"`
}

func (h *Handlers) createPaymentRequest(c *gin.Context) {
	var req paymentRequestRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transfer, err := h.transfers.CreatePaymentRequest(c.Request.Context(), req.PayerID, req.RequesterID, req.Amount, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transfer)
}

func (h *Handlers) acceptTransfer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	transfer, err := h.transfers.AcceptTransfer(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, transfer)
}

func (h *Handlers) declineTransfer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	transfer, err := h.transfers.DeclineTransfer(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, transfer)
}

func (h *Handlers) getTransfers(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	transfers, err := h.transfers.GetTransfersForUser(c.Request.Context(), id, parseLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if transfers == nil {
		transfers = []*models.Transfer{}
	}
	c.JSON(http.StatusOK, transfers)
}

func (h *Handlers) getPendingTransfers(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	transfers, err := h.transfers.GetPendingTransfers(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if transfers == nil {
		transfers = []*models.Transfer{}
	}
	c.JSON(http.StatusOK, transfers)
}

func (h *Handlers) getConversations(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	conversations, err := h.conversations.GetConversations(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if conversations == nil {
		conversations = []*models.Conversation{}
	}
	c.JSON(http.StatusOK, conversations)
}

func (h *Handlers) getConversationHistory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	partnerID, ok := parseUUIDParam(c, "partnerID")
	if !ok {
		return
	}

	transfers, err := h.transfers.GetConversationHistory(c.Request.Context(), id, partnerID, parseLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if transfers == nil {
		transfers = []*models.Transfer{}
	}
	c.JSON(http.StatusOK, transfers)
}

// --- deposits / withdrawals ---

type depositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required"`
}

func (h *Handlers) recordDeposit(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req depositRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transfer, err := h.transfers.RecordDeposit(c.Request.Context(), id, req.Amount, req.Method)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transfer)
}

type withdrawalRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	BankName string          `json:"bankName" binding:"required"`
}

func (h *Handlers) recordWithdrawal(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req withdrawalRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transfer, err := h.transfers.RecordWithdrawal(c.Request.Context(), id, req.Amount, req.BankName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transfer)
}

// --- feed ---

type createPostRequest struct {
	AuthorID    uuid.UUID `json:"authorId" binding:"required"`
	Body        string    `json:"body"`
	PostType    string    `json:"postType"`
	ImageURL    string    `json:"imageUrl"`
	SeedbaseTag string    `json:"seedbaseTag"`
	MissionTag  string    `json:"missionTag"`
}

func (h *Handlers) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := &models.Post{
		AuthorID:    req.AuthorID,
		Body:        req.Body,
		PostType:    models.PostType(req.PostType),
		ImageURL:    req.ImageURL,
		SeedbaseTag: req.SeedbaseTag,
		MissionTag:  req.MissionTag,
	}

	created, err := h.feed.CreatePost(c.Request.Context(), post)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handlers) getFeed(c *gin.Context) {
	posts, err := h.feed.GetFeed(c.Request.Context(), parseLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handlers) likePost(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.feed.LikePost(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type createCommentRequest struct {
	AuthorID uuid.UUID `json:"authorId" binding:"required"`
	Body     string    `json:"body" binding:"required"`
}

func (h *Handlers) createComment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.feed.AddComment(c.Request.Context(), id, req.AuthorID, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *Handlers) getComments(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.feed.GetComments(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}
