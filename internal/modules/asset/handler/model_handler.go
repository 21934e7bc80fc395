package handler

import (
	"net/http"

	"asset-vault-server/internal/common/httpx"
	"asset-vault-server/internal/modules/asset/dto"

	"github.com/gin-gonic/gin"
)

// CreateModel multipart：project_id, name, category_id, status_id, allow_download, images[], cover_index, file。
func (h *Handler) CreateModel(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请使用 multipart/form-data 上传"})
		return
	}
	req := dto.CreateModelForm{
		Name:          c.PostForm("name"),
		AllowDownload: formBool(c, "allow_download"),
		Images:        formFiles(form, fieldImages),
		Asset:         formFile(form, fieldAsset),
	}
	projectID, err := optionalUint(c, "project_id")
	if err == nil && projectID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 project_id", "field": "project_id"})
		return
	}
	if err == nil {
		req.ProjectID = *projectID
		req.CategoryID, err = optionalUint(c, "category_id")
	}
	if err == nil {
		req.StatusID, err = optionalUint(c, "status_id")
	}
	if err == nil {
		req.CoverIndex, err = coverIndex(c)
	}
	if err != nil {
		httpx.WriteServiceError(c, err, "参数错误")
		return
	}

	view, err := h.assetService.CreateModel(c.Request.Context(), user, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "创建模型失败")
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) UploadVersion(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请使用 multipart/form-data 上传"})
		return
	}
	req := dto.NewVersionForm{
		AllowDownload: formBool(c, "allow_download"),
		Images:        formFiles(form, fieldImages),
		Asset:         formFile(form, fieldAsset),
	}
	req.CategoryID, err = optionalUint(c, "category_id")
	if err == nil {
		req.CoverIndex, err = coverIndex(c)
	}
	if err != nil {
		httpx.WriteServiceError(c, err, "参数错误")
		return
	}

	version, err := h.assetService.UploadVersion(c.Request.Context(), user, id, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "上传版本失败")
		return
	}
	c.JSON(http.StatusCreated, version)
}

// EditVersion multipart：name, category_id, remove_image_ids, images[], cover_image_id 或 cover_index, file。
func (h *Handler) EditVersion(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请使用 multipart/form-data 上传"})
		return
	}
	req := dto.EditVersionForm{
		Name:      c.PostForm("name"),
		NewImages: formFiles(form, fieldImages),
		Asset:     formFile(form, fieldAsset),
	}
	req.CategoryID, err = optionalUint(c, "category_id")
	if err == nil {
		req.RemoveImageIDs, err = uintList(c, fieldRemoveImageID)
	}
	if err == nil {
		req.CoverImageID, err = optionalUint(c, fieldCoverImageID)
	}
	if err == nil {
		req.CoverNewIndex, err = optionalInt(c, fieldCoverIndex)
	}
	if err != nil {
		httpx.WriteServiceError(c, err, "参数错误")
		return
	}

	version, err := h.assetService.EditVersion(c.Request.Context(), user, id, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "保存版本失败")
		return
	}
	c.JSON(http.StatusOK, version)
}

func (h *Handler) UpdateModelStatus(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	if err := h.assetService.UpdateModelStatus(c.Request.Context(), user, id, req.StatusID); err != nil {
		httpx.WriteServiceError(c, err, "更新状态失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

func (h *Handler) DeleteModel(c *gin.Context) {
	user, ok := httpx.CurrentUser(c, h.users)
	if !ok {
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.assetService.DeleteModel(c.Request.Context(), user, id); err != nil {
		httpx.WriteServiceError(c, err, "删除模型失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

func (h *Handler) GetModel(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.assetService.ModelDetail(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取模型失败")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) GetVersion(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		return
	}
	version, err := h.assetService.Version(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取版本失败")
		return
	}
	c.JSON(http.StatusOK, version)
}

func (h *Handler) ListCategories(c *gin.Context) {
	list, err := h.assetService.Categories(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "获取分类失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *Handler) ListStatuses(c *gin.Context) {
	list, err := h.assetService.Statuses(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "获取状态失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
