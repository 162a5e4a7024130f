package controller

import (
	"errors"

	"reading_learning_backend/internal/model"
	"reading_learning_backend/internal/service"
	"reading_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	Service *service.ContentService
}

func NewContentController(svc *service.ContentService) *ContentController {
	return &ContentController{Service: svc}
}

// @Summary 获取学习内容列表
// @Description 可按年级过滤，旧版单一 subTopic 记录返回前已归一成 subTopics 列表
// @Tags 内容模块
// @Produce json
// @Security ApiKeyAuth
// @Param grade query string false "年级"
// @Success 200 {object} util.Response
// @Router /api/content [get]
func (c *ContentController) ListContent(ctx *gin.Context) {
	grade := ctx.Query("grade")

	contents, err := c.Service.ListByGrade(ctx.Request.Context(), grade)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// 学生端不下发标准答案
	if claims := util.GetUserFromContext(ctx); claims != nil && claims.Role == model.Student {
		for i := range contents {
			service.RedactAnswers(&contents[i])
		}
	}

	util.Success(ctx, contents)
}

// @Summary 获取单条学习内容
// @Tags 内容模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "内容ID"
// @Success 200 {object} util.Response
// @Router /api/content/{id} [get]
func (c *ContentController) GetContent(ctx *gin.Context) {
	id := ctx.Param("id")

	content, err := c.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx, "content not found: "+id)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	if claims := util.GetUserFromContext(ctx); claims != nil && claims.Role == model.Student {
		service.RedactAnswers(content)
	}

	util.Success(ctx, content)
}
