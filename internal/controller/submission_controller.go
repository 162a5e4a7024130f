package controller

import (
	"errors"
	"net/http"
	"strconv"

	"reading_learning_backend/internal/model"
	"reading_learning_backend/internal/service"
	"reading_learning_backend/internal/util"
	"reading_learning_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	Service *service.SubmissionService
}

func NewSubmissionController(svc *service.SubmissionService) *SubmissionController {
	return &SubmissionController{Service: svc}
}

type SubmitQuizReq struct {
	ContentID string   `json:"contentId" binding:"required"`
	Answers   []string `json:"answers"`
}

// @Summary 提交答卷
// @Description 答案数组与题目一一对应；次数用尽返回 success:false
// @Tags 提交模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitQuizReq true "答卷"
// @Success 200 {object} map[string]interface{}
// @Router /api/submissions/submit-quiz [post]
func (c *SubmissionController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitQuiz(claims.UserID, req.ContentID, req.Answers)
	if err != nil {
		// 兼容既有客户端：提交接口的失败响应固定为 {success:false, message}
		switch {
		case errors.Is(err, util.ErrAttemptLimitExceeded):
			monitoring.QuizSubmissions.WithLabelValues(monitoring.OutcomeRejectedLimit).Inc()
			ctx.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Maximum attempts reached for this quiz",
			})
		case errors.Is(err, util.ErrInvalidSubmissionShape):
			monitoring.QuizSubmissions.WithLabelValues(monitoring.OutcomeRejectedShape).Inc()
			ctx.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Answer count does not match question count",
			})
		case errors.Is(err, util.ErrContentNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Content not found: " + req.ContentID,
			})
		case errors.Is(err, util.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User not found",
			})
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.QuizSubmissions.WithLabelValues(monitoring.OutcomeGraded).Inc()

	ctx.JSON(http.StatusOK, gin.H{
		"success":      true,
		"score":        result.Submission.Score,
		"total":        result.Submission.Total,
		"attemptsLeft": result.AttemptsLeft,
		"review":       result.Submission.Answers,
	})
}

// @Summary 学生的历史提交
// @Description 学生只能查看自己的提交，管理员可查看任意学生
// @Tags 提交模块
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path int true "学生ID"
// @Success 200 {array} model.Submission
// @Router /api/submissions/student/{studentId} [get]
func (c *SubmissionController) GetStudentSubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	studentID, err := strconv.ParseUint(ctx.Param("studentId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	if claims.UserID != uint(studentID) && claims.Role != model.Admin {
		util.Forbidden(ctx)
		return
	}

	submissions, err := c.Service.GetStudentSubmissions(uint(studentID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if submissions == nil {
		submissions = []model.Submission{}
	}

	// 兼容既有客户端：直接返回数组
	ctx.JSON(http.StatusOK, submissions)
}
