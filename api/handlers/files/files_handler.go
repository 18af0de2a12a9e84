package files

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"deptsync/internal/auth"
	"deptsync/internal/common"
	"deptsync/internal/logger"
	"deptsync/internal/metrics"
	"deptsync/internal/storage"
	"deptsync/internal/user"
)

// maxUploadSize 单文件上限 50MB
const maxUploadSize = 50 * 1024 * 1024

// FileHandler 文件上传与内容代理处理器
type FileHandler struct {
	storage *storage.Service
	users   *user.Service
}

// NewFileHandler 创建文件处理器
func NewFileHandler(storage *storage.Service, users *user.Service) *FileHandler {
	return &FileHandler{storage: storage, users: users}
}

// UploadResponse 上传结果
type UploadResponse struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Upload 上传文件到对象存储
// 目录规则:
//   - 指定 project_name: projects/{项目名}/{图片|文档}
//   - folder 以 reports 开头: reports/{用户名}/{图片|文档}
//   - 指定其他 folder: {folder}/{图片|文档}
//   - 默认: uploads/{图片|文档}
//
// @Summary 上传文件
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "文件"
// @Param folder formData string false "目录前缀"
// @Param project_name formData string false "项目名"
// @Success 200 {object} common.APIResponse
// @Router /api/files/upload [post]
func (h *FileHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.ResponseBadRequest(c, "缺少上传文件")
		return
	}
	if fileHeader.Size > maxUploadSize {
		common.ResponseError(c, common.CodeInvalidRequest,
			fmt.Sprintf("文件过大，最大允许 50MB，当前 %.1fMB", float64(fileHeader.Size)/1024/1024))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		common.ResponseServerError(c, "读取上传文件失败")
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		common.ResponseServerError(c, "读取上传文件失败")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	originalName := fileHeader.Filename
	if originalName == "" {
		originalName = "unnamed"
	}
	category := storage.Classify(contentType)

	var folder string
	projectName := c.PostForm("project_name")
	formFolder := c.PostForm("folder")
	switch {
	case projectName != "":
		folder = fmt.Sprintf("projects/%s/%s", storage.SanitizePathSegment(projectName), category)
	case strings.HasPrefix(formFolder, "reports"):
		name := "unknown"
		if u, err := h.users.Get(c.Request.Context(), auth.CurrentUser(c).UserID); err == nil {
			name = storage.SanitizePathSegment(u.Name)
		}
		folder = fmt.Sprintf("reports/%s/%s", name, category)
	case formFolder != "":
		folder = fmt.Sprintf("%s/%s", formFolder, category)
	default:
		folder = "uploads/" + category
	}

	path, err := h.storage.Upload(c.Request.Context(), data, originalName, contentType, folder)
	if err != nil {
		logger.Error("文件上传失败", zap.String("name", originalName), zap.Error(err))
		metrics.FileUploadsTotal.WithLabelValues(folder, "error").Inc()
		common.ResponseServerError(c, "文件上传失败")
		return
	}
	metrics.FileUploadsTotal.WithLabelValues(folder, "ok").Inc()

	common.ResponseSuccess(c, UploadResponse{
		URL:         "/api/files/content/" + path,
		Path:        path,
		Name:        originalName,
		Size:        fileHeader.Size,
		ContentType: contentType,
	})
}

// Content 按对象路径流式返回文件内容
func (h *FileHandler) Content(c *gin.Context) {
	objectName := strings.TrimPrefix(c.Param("path"), "/")
	if objectName == "" || strings.Contains(objectName, "..") {
		common.ResponseBadRequest(c, "非法文件路径")
		return
	}

	stream, err := h.storage.GetStream(c.Request.Context(), objectName)
	if err != nil {
		common.ResponseNotFound(c, "文件不存在")
		return
	}
	defer stream.Close()

	contentType := mime.TypeByExtension(filepath.Ext(objectName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(200)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		logger.Warn("文件流传输中断", zap.String("object", objectName), zap.Error(err))
	}
}
