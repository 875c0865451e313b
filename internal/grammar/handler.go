package grammar

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"grammar-backend/internal/extract"
	"grammar-backend/internal/grammar/language"
	"grammar-backend/internal/shared/server/middleware"
	"grammar-backend/internal/shared/server/respond"
	"grammar-backend/internal/shared/util"
)

const (
	MaxHistoryLimit = 100
	// MaxUploadBytes caps multipart uploads for file analysis.
	MaxUploadBytes = 10 << 20

	useAIHeader = "X-Use-AI"
)

// Handler wires HTTP handlers to the grammar service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches grammar routes to the router group. The group must
// already run middleware.Identify.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/grammar")
	g.POST("/analyze", h.analyze)
	g.POST("/analyze/file", h.analyzeFile)
	g.GET("/languages", h.languages)
	g.GET("/history", middleware.RequireUser(), h.history)
	g.GET("/analytics", middleware.RequireUser(), h.analytics)
}

type analyzeBody struct {
	Text     *string `json:"text"`
	Language string  `json:"language"`
}

func (h *Handler) analyze(c *gin.Context) {
	var body analyzeBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Text == nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "Text is required and must be a non-empty string", nil)
		return
	}
	h.run(c, Request{Text: *body.Text, Language: body.Language})
}

func (h *Handler) analyzeFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeValidation, "File is too large", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "file is required", nil)
		return
	}

	name, err := util.CleanFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid file name", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "could not read file", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "could not read file", nil)
		return
	}

	text, err := extract.ExtractTextFromBytes(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), name)
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeValidation, "Could not extract text from file", []map[string]string{
			{"field": "file", "issue": err.Error()},
		})
		return
	}
	h.run(c, Request{Text: text, Language: c.PostForm("language")})
}

func (h *Handler) run(c *gin.Context, req Request) {
	if _, err := PrepareRequest(req, language.Default); err != nil {
		writeAnalyzeError(c, err)
		return
	}
	req.UserID = middleware.UserIDFromContext(c)
	useAI := wantsGenerative(c)
	c.Set(middleware.ProviderKey, h.Svc.ProviderFor(useAI))

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	result, err := h.Svc.Analyze(ctx, req, useAI)
	if err != nil {
		writeAnalyzeError(c, err)
		return
	}
	respond.OK(c, result)
}

// wantsGenerative reads the opt-in from the ai query flag or the X-Use-AI header.
func wantsGenerative(c *gin.Context) bool {
	if v, err := strconv.ParseBool(strings.TrimSpace(c.Query("ai"))); err == nil && v {
		return true
	}
	v, err := strconv.ParseBool(strings.TrimSpace(c.GetHeader(useAIHeader)))
	return err == nil && v
}

func writeAnalyzeError(c *gin.Context, err error) {
	var aerr *AnalysisError
	switch {
	case errors.Is(err, ErrEmptyText):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "Text is required and must be a non-empty string", nil)
	case errors.Is(err, ErrTextTooLong):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "Text is too long. Maximum length is 50,000 characters", nil)
	case errors.As(err, &aerr):
		respond.Error(c, aerr.Status(), aerr.Code, aerr.Message, nil)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "Failed to analyze grammar", nil)
	}
}

func (h *Handler) history(c *gin.Context) {
	limit := DefaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "limit must be a positive integer", nil)
			return
		}
		limit = min(parsed, MaxHistoryLimit)
	}

	records, err := h.Svc.History(c.Request.Context(), middleware.UserIDFromContext(c), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "Failed to fetch analysis history", nil)
		return
	}
	respond.OK(c, records)
}

// analytics scopes to the caller unless an admin asks for the global view,
// which is their default.
func (h *Handler) analytics(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	scope := strings.ToLower(strings.TrimSpace(c.Query("scope")))
	switch scope {
	case "", "self", "global":
	default:
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "scope must be self or global", nil)
		return
	}
	if middleware.IsAdmin(c) && scope != "self" {
		userID = ""
	}

	summary, err := h.Svc.Summary(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "Failed to fetch analytics data", nil)
		return
	}
	respond.OK(c, summary)
}

func (h *Handler) languages(c *gin.Context) {
	respond.OK(c, gin.H{
		"default":    language.Default,
		"languages":  language.Table(),
		"generative": h.Svc.GenerativeEnabled(),
	})
}
