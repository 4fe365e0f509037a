// internal/api/handlers.go
package api

import (
	"mime"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/personadesk/PersonaDesk/internal/errors"
	"github.com/personadesk/PersonaDesk/internal/models"
	"github.com/personadesk/PersonaDesk/internal/services"
)

// Handler 处理API请求
type Handler struct {
	CharacterService *services.CharacterService // 角色服务
	TemplateService  *services.TemplateService  // 模板服务
	SettingsService  *services.SettingsService  // 配置服务
	AuthService      *services.AuthService      // 认证服务
	UploadService    *services.UploadService    // 上传服务
	Events           *EventHub                  // 变更事件推送
	Response         *ResponseHelper            // 响应助手
}

// NewHandler 创建API处理器
func NewHandler(
	characterService *services.CharacterService,
	templateService *services.TemplateService,
	settingsService *services.SettingsService,
	authService *services.AuthService,
	uploadService *services.UploadService,
	events *EventHub,
) *Handler {
	return &Handler{
		CharacterService: characterService,
		TemplateService:  templateService,
		SettingsService:  settingsService,
		AuthService:      authService,
		UploadService:    uploadService,
		Events:           events,
		Response:         NewResponseHelper(),
	}
}

// APIResponse 标准API响应格式
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"` // 用于调试和追踪
}

// APIError 标准错误格式
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// PaginationMeta 分页元数据
type PaginationMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// PaginatedResponse 带分页的响应
type PaginatedResponse struct {
	*APIResponse
	Meta *PaginationMeta `json:"meta,omitempty"`
}

// LoginRequest 登录请求结构
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// WhitelistRequest 白名单添加请求结构
type WhitelistRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// parsePagination 从查询参数解析分页条件
func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(services.DefaultPageSize)))
	return page, pageSize
}

func paginationMeta(page, pageSize, total int) *PaginationMeta {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = services.DefaultPageSize
	}
	totalPages := (total + pageSize - 1) / pageSize
	return &PaginationMeta{
		Page:       page,
		PerPage:    pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ========================================
// 认证
// ========================================

// Login 处理登录请求
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "请求参数不完整", err.Error())
		return
	}

	session, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Response.FromError(c, err, ErrorLoginFailed)
		return
	}

	h.Response.Success(c, session, "登录成功")
}

// Logout 处理登出请求
func (h *Handler) Logout(c *gin.Context) {
	h.AuthService.Logout()
	h.Response.Success(c, nil, "已退出登录")
}

// GetSession 返回当前登录会话
func (h *Handler) GetSession(c *gin.Context) {
	session := h.AuthService.CurrentSession()
	if session == nil {
		h.Response.Unauthorized(c, "当前未登录")
		return
	}
	h.Response.Success(c, session)
}

// ========================================
// 角色管理
// ========================================

// ListCharacters 分页查询角色列表
func (h *Handler) ListCharacters(c *gin.Context) {
	page, pageSize := parsePagination(c)
	query := services.CharacterQuery{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}

	characters, total := h.CharacterService.List(query)
	h.Response.PaginatedSuccess(c, characters, paginationMeta(page, pageSize, total))
}

// GetCharacter 获取单个角色
func (h *Handler) GetCharacter(c *gin.Context) {
	character, err := h.CharacterService.Get(c.Param("id"))
	if err != nil {
		h.Response.FromError(c, err, ErrorCharacterNotFound)
		return
	}
	h.Response.Success(c, character)
}

// CreateCharacter 创建角色
func (h *Handler) CreateCharacter(c *gin.Context) {
	var input models.Character
	if err := c.ShouldBindJSON(&input); err != nil {
		h.Response.BadRequest(c, "角色数据格式不正确", err.Error())
		return
	}

	character, err := h.CharacterService.Create(&input)
	if err != nil {
		h.Response.FromError(c, err, ErrorCharacterInvalid)
		return
	}

	h.Response.Created(c, character, "角色创建成功")
}

// UpdateCharacter 部分更新角色
func (h *Handler) UpdateCharacter(c *gin.Context) {
	var patch models.CharacterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.Response.BadRequest(c, "角色数据格式不正确", err.Error())
		return
	}

	character, err := h.CharacterService.Update(c.Param("id"), &patch)
	if err != nil {
		h.Response.FromError(c, err, ErrorCharacterInvalid)
		return
	}

	h.Response.Success(c, character, "角色更新成功")
}

// DeleteCharacter 删除角色
func (h *Handler) DeleteCharacter(c *gin.Context) {
	if err := h.CharacterService.Delete(c.Param("id")); err != nil {
		h.Response.FromError(c, err, ErrorCharacterNotFound)
		return
	}
	h.Response.Success(c, nil, "角色删除成功")
}

// AddToWhitelist 向角色白名单添加手机号
func (h *Handler) AddToWhitelist(c *gin.Context) {
	var req WhitelistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "请求参数不完整", err.Error())
		return
	}

	character, err := h.CharacterService.AddToWhitelist(c.Param("id"), req.Phone)
	if err != nil {
		h.Response.FromError(c, err, whitelistErrorCode(err))
		return
	}

	h.Response.Success(c, character, "白名单添加成功")
}

// RemoveFromWhitelist 从角色白名单移除手机号
func (h *Handler) RemoveFromWhitelist(c *gin.Context) {
	character, err := h.CharacterService.RemoveFromWhitelist(c.Param("id"), c.Param("phone"))
	if err != nil {
		h.Response.FromError(c, err, whitelistErrorCode(err))
		return
	}

	h.Response.Success(c, character, "白名单移除成功")
}

// whitelistErrorCode 按错误类型挑选白名单操作的错误代码
func whitelistErrorCode(err error) string {
	switch {
	case apperrors.IsNotFoundError(err):
		return ErrorNotFound
	case apperrors.IsConflictError(err):
		return ErrorWhitelistDuplicate
	default:
		return ErrorPhoneInvalid
	}
}

// ========================================
// 模板管理
// ========================================

// ListTemplates 分页查询模板列表
func (h *Handler) ListTemplates(c *gin.Context) {
	page, pageSize := parsePagination(c)
	query := services.TemplateQuery{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}

	templates, total := h.TemplateService.List(query)
	h.Response.PaginatedSuccess(c, templates, paginationMeta(page, pageSize, total))
}

// GetTemplate 获取单个模板
func (h *Handler) GetTemplate(c *gin.Context) {
	template, err := h.TemplateService.Get(c.Param("id"))
	if err != nil {
		h.Response.FromError(c, err, ErrorTemplateNotFound)
		return
	}
	h.Response.Success(c, template)
}

// CreateTemplate 创建模板
func (h *Handler) CreateTemplate(c *gin.Context) {
	var input models.Template
	if err := c.ShouldBindJSON(&input); err != nil {
		h.Response.BadRequest(c, "模板数据格式不正确", err.Error())
		return
	}

	template, err := h.TemplateService.Create(&input)
	if err != nil {
		h.Response.FromError(c, err, ErrorTemplateInvalid)
		return
	}

	h.Response.Created(c, template, "模板创建成功")
}

// UpdateTemplate 部分更新模板
func (h *Handler) UpdateTemplate(c *gin.Context) {
	var patch models.TemplatePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.Response.BadRequest(c, "模板数据格式不正确", err.Error())
		return
	}

	template, err := h.TemplateService.Update(c.Param("id"), &patch)
	if err != nil {
		h.Response.FromError(c, err, ErrorTemplateInvalid)
		return
	}

	h.Response.Success(c, template, "模板更新成功")
}

// DeleteTemplate 删除模板
func (h *Handler) DeleteTemplate(c *gin.Context) {
	if err := h.TemplateService.Delete(c.Param("id")); err != nil {
		h.Response.FromError(c, err, ErrorTemplateNotFound)
		return
	}
	h.Response.Success(c, nil, "模板删除成功")
}

// ========================================
// 全局配置
// ========================================

// GetSettings 获取全局配置
func (h *Handler) GetSettings(c *gin.Context) {
	h.Response.Success(c, h.SettingsService.Get())
}

// UpdateSettings 合并更新全局配置
func (h *Handler) UpdateSettings(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.Response.BadRequest(c, "配置数据格式不正确", err.Error())
		return
	}

	settings, err := h.SettingsService.Update(&patch)
	if err != nil {
		h.Response.FromError(c, err, ErrorBadRequest)
		return
	}

	h.Response.Success(c, settings, "配置更新成功")
}

// ========================================
// 文件上传
// ========================================

// UploadImage 处理图片上传
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.Response.BadRequest(c, "请选择要上传的文件", err.Error())
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(file.Filename))
	}

	result, err := h.UploadService.Upload(c.Request.Context(), file.Filename, contentType, file.Size)
	if err != nil {
		h.Response.FromError(c, err, ErrorFileInvalid)
		return
	}

	h.Response.Success(c, result, "上传成功")
}

// ========================================
// 健康检查
// ========================================

// HealthCheck 返回服务状态
func (h *Handler) HealthCheck(c *gin.Context) {
	h.Response.Success(c, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// EventsWebSocket 处理实体变更事件的WebSocket连接
func (h *Handler) EventsWebSocket(c *gin.Context) {
	h.Events.ServeWS(c)
}
