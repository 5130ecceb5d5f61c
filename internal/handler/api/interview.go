package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/DevasenapathiKS/mockomi-sub001/internal/domain/interview"
	reqdto "github.com/DevasenapathiKS/mockomi-sub001/internal/handler/dto/request"
	resdto "github.com/DevasenapathiKS/mockomi-sub001/internal/handler/dto/response"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/handler/httperr"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/handler/middleware"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/commands"
	"github.com/DevasenapathiKS/mockomi-sub001/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InterviewHandler struct {
	interviewCommands commands.InterviewCommands
	lifecycleCommands commands.LifecycleCommands
	interviewQueries  queries.InterviewQueries
}

func NewInterviewHandler(
	interviewCommands commands.InterviewCommands,
	lifecycleCommands commands.LifecycleCommands,
	interviewQueries queries.InterviewQueries,
) *InterviewHandler {
	return &InterviewHandler{
		interviewCommands: interviewCommands,
		lifecycleCommands: lifecycleCommands,
		interviewQueries:  interviewQueries,
	}
}

func (h *InterviewHandler) CreateRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateInterviewRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}

	in := commands.CreateRequestInput{
		Skills:          req.Skills,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		PaymentID:       req.PaymentID,
		CouponCode:      req.GetCouponCode(),
	}

	iv, err := h.interviewCommands.CreateRequest(c.Request.Context(), in, userID)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromInterviewEntity(iv))
}

func (h *InterviewHandler) Claim(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	interviewID, ok := parseInterviewID(c)
	if !ok {
		return
	}

	var req reqdto.ClaimInterviewRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}

	in := commands.ClaimInput{
		InterviewID:     interviewID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
	}

	iv, err := h.interviewCommands.Claim(c.Request.Context(), in, userID)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromInterviewEntity(iv))
}

func (h *InterviewHandler) Start(c *gin.Context) {
	h.transition(c, h.lifecycleCommands.Start)
}

func (h *InterviewHandler) Complete(c *gin.Context) {
	h.transition(c, h.lifecycleCommands.Complete)
}

func (h *InterviewHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	interviewID, ok := parseInterviewID(c)
	if !ok {
		return
	}

	// Reason is optional; an empty body is a valid cancellation.
	var req reqdto.CancelInterviewRequest
	_ = c.ShouldBindJSON(&req)

	iv, err := h.lifecycleCommands.Cancel(c.Request.Context(), interviewID, userID, req.Reason)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromInterviewEntity(iv))
}

func (h *InterviewHandler) SubmitFeedback(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	interviewID, ok := parseInterviewID(c)
	if !ok {
		return
	}

	var req reqdto.SubmitFeedbackRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}

	in := commands.FeedbackInput{Rating: req.Rating, Comment: req.Comment}
	iv, err := h.lifecycleCommands.SubmitFeedback(c.Request.Context(), interviewID, userID, in)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromInterviewEntity(iv))
}

func (h *InterviewHandler) AttachRecording(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	interviewID, ok := parseInterviewID(c)
	if !ok {
		return
	}

	var req reqdto.AttachRecordingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}

	iv, err := h.lifecycleCommands.AttachRecording(c.Request.Context(), interviewID, userID, req.URL)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromInterviewEntity(iv))
}

func (h *InterviewHandler) GetInterview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	role, _ := middleware.GetUserRole(c)

	interviewID, ok := parseInterviewID(c)
	if !ok {
		return
	}

	view, err := h.interviewQueries.GetByID(c.Request.Context(), userID, role, interviewID)
	if err != nil {
		respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromInterviewView(view))
}

func (h *InterviewHandler) ListAvailable(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	cursor, limit := paginationParams(c)
	items, next, err := h.interviewQueries.ListAvailable(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromInterviewList(items, next))
}

func (h *InterviewHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	cursor, limit := paginationParams(c)
	items, next, err := h.interviewQueries.ListMine(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromInterviewList(items, next))
}

func (h *InterviewHandler) transition(c *gin.Context, fn func(ctx context.Context, interviewID, actorID uuid.UUID) (*interview.Interview, error)) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	interviewID, ok := parseInterviewID(c)
	if !ok {
		return
	}

	iv, err := fn(c.Request.Context(), interviewID, userID)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromInterviewEntity(iv))
}

func parseInterviewID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid interview ID format")
		return uuid.Nil, false
	}
	return id, true
}

func paginationParams(c *gin.Context) (*queries.Cursor, int) {
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	return cursor, limit
}

func respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrPaymentRequired):
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Payment required to create this request")
	case errors.Is(err, commands.ErrPaymentInvalid):
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Payment is missing, incomplete or owned by another user")
	case errors.Is(err, commands.ErrCouponInvalid):
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Invalid or exhausted coupon")
	case errors.Is(err, commands.ErrInterviewNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Interview not found")
	case errors.Is(err, commands.ErrJobSeekerNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Job seeker profile not found")
	case errors.Is(err, commands.ErrInterviewerNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Interviewer profile not found")
	case errors.Is(err, commands.ErrNotAuthorized):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Interviewer is not approved")
	case errors.Is(err, commands.ErrSkillMismatch):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Expertise does not cover the requested skills")
	case errors.Is(err, commands.ErrScheduleConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Conflicting session in that time window")
	case errors.Is(err, interview.ErrAlreadyClaimed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Interview has already been claimed")
	case errors.Is(err, interview.ErrRequestExpired):
		httperr.AbortWithError(c, http.StatusGone, err, "Interview request has expired")
	case errors.Is(err, interview.ErrInvalidStateTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Interview is not in a state that allows this operation")
	case errors.Is(err, interview.ErrFeedbackAlreadySubmitted):
		httperr.AbortWithError(c, http.StatusConflict, err, "Feedback has already been submitted")
	case errors.Is(err, interview.ErrFeedbackNotAllowedYet):
		httperr.AbortWithError(c, http.StatusConflict, err, "Feedback is not allowed before the session runs")
	case errors.Is(err, interview.ErrNotAssignedInterviewer),
		errors.Is(err, interview.ErrNotParticipant):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not a participant of this interview")
	case errors.Is(err, interview.ErrEmptySkills),
		errors.Is(err, interview.ErrInvalidDuration),
		errors.Is(err, interview.ErrInvalidRating),
		errors.Is(err, interview.ErrCommentTooLong),
		errors.Is(err, interview.ErrNotesTooLong),
		errors.Is(err, interview.ErrScheduleInPast):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error())
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
	}
}

func respondQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrInterviewNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Interview not found")
	case errors.Is(err, queries.ErrAccessDenied):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied")
	case errors.Is(err, queries.ErrNotApproved):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Interviewer is not approved")
	case errors.Is(err, queries.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid pagination cursor")
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
	}
}
