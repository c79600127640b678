package api

import (
	"net/http"
	"net/url"
	"strings"

	"ledger-core/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ----------------------------------------
// Media catalog (actress favourites)
// ----------------------------------------

type actressRequest struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Tags   string `json:"tags"`
	Notes  string `json:"notes"`
}

func (r *actressRequest) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return "name is required"
	}
	if r.Rating < 0 || r.Rating > 10 {
		return "rating must be between 0 and 10"
	}
	return ""
}

func (s *Server) listActresses(c *gin.Context) {
	list, err := s.Queries.ListActresses(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
		return
	}
	if list == nil {
		list = []db.Actress{}
	}
	c.JSON(http.StatusOK, gin.H{"actresses": list})
}

func (s *Server) createActress(c *gin.Context) {
	var req actressRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_PAYLOAD", "error": "invalid request payload"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ENTRY", "error": msg})
		return
	}

	a := db.Actress{
		ID:     uuid.NewString(),
		UserID: CurrentUserID(c),
		Name:   req.Name,
		Rating: req.Rating,
		Tags:   req.Tags,
		Notes:  req.Notes,
	}
	if err := s.Queries.CreateActress(c.Request.Context(), a); err != nil {
		// The (user, name) pair is unique; a duplicate insert surfaces here.
		c.JSON(http.StatusConflict, gin.H{"code": "DUPLICATE_NAME", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (s *Server) updateActress(c *gin.Context) {
	var req actressRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_PAYLOAD", "error": "invalid request payload"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ENTRY", "error": msg})
		return
	}

	a := db.Actress{
		ID:     c.Param("id"),
		UserID: CurrentUserID(c),
		Name:   req.Name,
		Rating: req.Rating,
		Tags:   req.Tags,
		Notes:  req.Notes,
	}
	if err := s.Queries.UpdateActress(c.Request.Context(), a); err != nil {
		s.tradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) deleteActress(c *gin.Context) {
	err := s.Queries.DeleteActress(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		s.tradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) listActressImages(c *gin.Context) {
	list, err := s.Queries.ListActressImages(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
		return
	}
	if list == nil {
		list = []db.ActressImage{}
	}
	c.JSON(http.StatusOK, gin.H{"images": list})
}

// createActressImage records a gallery URL. Only http(s) URLs are accepted;
// the image bytes themselves are never stored here.
func (s *Server) createActressImage(c *gin.Context) {
	var req struct {
		URL      string `json:"url"`
		Caption  string `json:"caption"`
		Position int    `json:"position"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_PAYLOAD", "error": "invalid request payload"})
		return
	}
	parsed, err := url.Parse(strings.TrimSpace(req.URL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_URL", "error": "url must be http(s)"})
		return
	}

	ctx := c.Request.Context()
	userID := CurrentUserID(c)
	owner, err := s.Queries.GetActress(ctx, userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
		return
	}
	if owner == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "record not found"})
		return
	}

	img := db.ActressImage{
		ID:        uuid.NewString(),
		ActressID: owner.ID,
		UserID:    userID,
		URL:       parsed.String(),
		Caption:   req.Caption,
		Position:  req.Position,
	}
	if err := s.Queries.CreateActressImage(ctx, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, img)
}

func (s *Server) deleteActressImage(c *gin.Context) {
	err := s.Queries.DeleteActressImage(c.Request.Context(), CurrentUserID(c), c.Param("imageID"))
	if err != nil {
		s.tradeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
