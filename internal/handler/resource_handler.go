package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resource-hub-go/internal/service"
	"resource-hub-go/pkg/log"
)

// ResourceHandler 负责资源上传、列表、预览与下载。
type ResourceHandler struct {
	resourceService service.ResourceService
}

// NewResourceHandler 创建一个新的 ResourceHandler 实例。
func NewResourceHandler(resourceService service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// Upload 处理 multipart 上传：文件字段为 file，可选字段 category_id。
func (h *ResourceHandler) Upload(c *gin.Context) {
	in := service.UploadInput{CategoryID: c.PostForm("category_id")}

	fileHeader, err := c.FormFile("file")
	switch {
	case isMissingFilePart(err):
		// 缺少文件字段或请求不是 multipart，交由 service 返回 MissingFile
		log.Warnf("Upload: no file part: %v", err)
	case err != nil:
		writeError(c, "Upload", err)
		return
	default:
		f, err := fileHeader.Open()
		if err != nil {
			writeError(c, "Upload", err)
			return
		}
		defer f.Close()
		in.File = f
		in.OriginalName = fileHeader.Filename
		in.MimeType = fileHeader.Header.Get("Content-Type")
	}

	resource, err := h.resourceService.Upload(c.Request.Context(), in)
	if err != nil {
		writeError(c, "Upload", err)
		return
	}
	c.JSON(http.StatusCreated, resource)
}

// List 返回所有资源及其分类名称，按 ID 倒序。
func (h *ResourceHandler) List(c *gin.Context) {
	items, err := h.resourceService.List(c.Request.Context())
	if err != nil {
		writeError(c, "ListResources", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// View 以内联方式返回文件，使用上传时记录的 MIME 类型。
func (h *ResourceHandler) View(c *gin.Context) {
	h.serve(c, "inline")
}

// Download 以附件方式返回文件，文件名为原始文件名。
func (h *ResourceHandler) Download(c *gin.Context) {
	h.serve(c, "attachment")
}

func (h *ResourceHandler) serve(c *gin.Context, disposition string) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		// 非数字 ID 不可能对应任何资源
		writeError(c, "ServeResource", service.ErrNotFound)
		return
	}

	content, err := h.resourceService.Open(c.Request.Context(), id)
	if err != nil {
		writeError(c, "ServeResource", err)
		return
	}
	defer content.Body.Close()

	c.DataFromReader(http.StatusOK, content.Size, content.Resource.MimeType, content.Body, map[string]string{
		"Content-Disposition":    contentDisposition(disposition, content.Resource.OriginalName),
		"X-Content-Type-Options": "nosniff",
	})
}

// isMissingFilePart reports whether err means the client sent no file part at all,
// as opposed to a failure while reading the multipart body.
func isMissingFilePart(err error) bool {
	return errors.Is(err, http.ErrMissingFile) ||
		errors.Is(err, http.ErrNotMultipart) ||
		errors.Is(err, http.ErrMissingBoundary)
}
