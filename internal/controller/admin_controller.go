package controller

import (
	"errors"
	"net/http"
	"strconv"

	"reading_learning_backend/internal/model"
	"reading_learning_backend/internal/service"
	"reading_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	UserService       *service.UserService
	ContentService    *service.ContentService
	SubmissionService *service.SubmissionService
}

func NewAdminController(userSvc *service.UserService, contentSvc *service.ContentService, submissionSvc *service.SubmissionService) *AdminController {
	return &AdminController{
		UserService:       userSvc,
		ContentService:    contentSvc,
		SubmissionService: submissionSvc,
	}
}

// @Summary 用户列表
// @Tags 管理模块
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.UserService.ListUsers()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// @Summary 删除用户
// @Description 不级联删除提交记录，历史成绩靠快照字段继续展示
// @Tags 管理模块
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{userId} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	if err := c.UserService.DeleteUser(uint(userID)); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "user not found: "+ctx.Param("userId"))
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": userID})
}

type MaxAttemptsReq struct {
	MaxAttempts int `json:"maxAttempts" binding:"required"`
}

// @Summary 设置答题次数上限
// @Description 只修改策略字段，不回溯已用次数
// @Tags 管理模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户ID"
// @Param body body MaxAttemptsReq true "次数上限(1-10)"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{userId}/attempts [put]
func (c *AdminController) SetMaxAttempts(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var req MaxAttemptsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.SetMaxAttempts(uint(userID), req.MaxAttempts)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, "user not found: "+ctx.Param("userId"))
		case errors.Is(err, util.ErrInvalidMaxAttempts):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// @Summary 内容列表(管理端)
// @Tags 管理模块
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/content [get]
func (c *AdminController) ListContent(ctx *gin.Context) {
	contents, err := c.ContentService.ListByGrade(ctx.Request.Context(), "")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, contents)
}

// @Summary 创建学习内容
// @Tags 管理模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ContentReq true "内容"
// @Success 201 {object} util.Response
// @Router /api/admin/content [post]
func (c *AdminController) CreateContent(ctx *gin.Context) {
	var req service.ContentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.ContentService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, content)
}

// @Summary 编辑学习内容
// @Description 已有提交引用的内容不允许修改题目列表
// @Tags 管理模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "内容ID"
// @Param body body service.ContentReq true "内容补丁"
// @Success 200 {object} util.Response
// @Router /api/admin/content/{id} [put]
func (c *AdminController) UpdateContent(ctx *gin.Context) {
	id := ctx.Param("id")

	var req service.ContentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.ContentService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrContentNotFound):
			util.NotFound(ctx, "content not found: "+id)
		case errors.Is(err, util.ErrContentInUse):
			util.Error(ctx, http.StatusConflict, "content has submissions, questions are locked")
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, content)
}

// @Summary 删除学习内容
// @Description 被提交引用的内容拒绝删除
// @Tags 管理模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "内容ID"
// @Success 200 {object} util.Response
// @Router /api/admin/content/{id} [delete]
func (c *AdminController) DeleteContent(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.ContentService.Delete(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, util.ErrContentNotFound):
			util.NotFound(ctx, "content not found: "+id)
		case errors.Is(err, util.ErrContentInUse):
			util.Error(ctx, http.StatusConflict, "content has submissions and cannot be deleted")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 全部提交(管理端)
// @Tags 管理模块
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.Submission
// @Router /api/admin/submissions [get]
func (c *AdminController) ListSubmissions(ctx *gin.Context) {
	submissions, err := c.SubmissionService.GetAllSubmissions()
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

type ReviewReq struct {
	Score    *int   `json:"score" binding:"required"`
	Feedback string `json:"feedback"`
}

// @Summary 人工复核提交
// @Description 覆盖总分与评语，逐题轨迹保持原样；重复复核替换上一次结果
// @Tags 管理模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "提交ID"
// @Param body body ReviewReq true "复核结果"
// @Success 200 {object} model.Submission
// @Router /api/admin/submissions/{id}/review [put]
func (c *AdminController) ReviewSubmission(ctx *gin.Context) {
	id := ctx.Param("id")

	var req ReviewReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.ReviewSubmission(id, *req.Score, req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx, "submission not found: "+id)
		case errors.Is(err, util.ErrInvalidScore):
			util.BadRequest(ctx, "score must be between 0 and the submission total")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, submission)
}

type AnswerFlagReq struct {
	Correct *bool `json:"correct" binding:"required"`
}

// @Summary 修正单题对错标记
// @Description 与总分复核相互独立，按题目下标定位
// @Tags 管理模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "提交ID"
// @Param index path int true "题目下标"
// @Param body body AnswerFlagReq true "对错标记"
// @Success 200 {object} model.Submission
// @Router /api/admin/submissions/{id}/answers/{index} [put]
func (c *AdminController) OverrideAnswerFlag(ctx *gin.Context) {
	id := ctx.Param("id")

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "invalid answer index")
		return
	}

	var req AnswerFlagReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.OverrideAnswerFlag(id, index, *req.Correct)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx, "submission not found: "+id)
		case errors.Is(err, util.ErrInvalidAnswerIndex):
			util.BadRequest(ctx, "answer index out of range")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, submission)
}
