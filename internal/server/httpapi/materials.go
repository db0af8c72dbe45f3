package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educagestor/educagestor/internal/common"
)

type uploadMaterialRequest struct {
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
}

type uploadMaterialResponse struct {
	Material  materialResponse `json:"material"`
	UploadURL string           `json:"upload_url"`
}

func (s *Server) uploadMaterial(c *gin.Context) {
	var req uploadMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrorValidation)
		return
	}

	identity := identityFrom(c)
	upload, err := s.materialService.Upload(c.Request.Context(),
		c.Param("courseId"), req.Title, req.ContentType, identity.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, uploadMaterialResponse{
		Material:  toMaterialResponse(upload.Material),
		UploadURL: upload.PutURL,
	})
}

func (s *Server) listMaterials(c *gin.Context) {
	materials, err := s.materialService.ListByCourse(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]materialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, toMaterialResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

type downloadMaterialResponse struct {
	DownloadURL string `json:"download_url"`
}

func (s *Server) downloadMaterial(c *gin.Context) {
	url, err := s.materialService.DownloadURL(c.Request.Context(), c.Param("materialId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, downloadMaterialResponse{DownloadURL: url})
}

func (s *Server) deleteMaterial(c *gin.Context) {
	if err := s.materialService.Delete(c.Request.Context(), c.Param("materialId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
