package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rakasatria/folio/internal/cache"
	"github.com/rakasatria/folio/internal/models"
	"github.com/rakasatria/folio/internal/services"
	"github.com/rakasatria/folio/internal/utils"
)

const publicTTL = 5 * time.Minute

// PublicHandler serves the visitor-facing read endpoints plus the
// contact form. No auth; collection reads go through the cache.
type PublicHandler struct {
	projects     services.ProjectService
	personalInfo services.PersonalInfoService
	skills       services.Resource[models.Skill]
	stats        services.Resource[models.Stat]
	experiences  services.Resource[models.Experience]
	educations   services.Resource[models.Education]
	contacts     services.ContactService
	cache        cache.Cache
}

func NewPublicHandler(
	projects services.ProjectService,
	personalInfo services.PersonalInfoService,
	skills services.Resource[models.Skill],
	stats services.Resource[models.Stat],
	experiences services.Resource[models.Experience],
	educations services.Resource[models.Education],
	contacts services.ContactService,
	c cache.Cache,
) *PublicHandler {
	return &PublicHandler{
		projects:     projects,
		personalInfo: personalInfo,
		skills:       skills,
		stats:        stats,
		experiences:  experiences,
		educations:   educations,
		contacts:     contacts,
		cache:        c,
	}
}

func (h *PublicHandler) Projects(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("featured") == "true" {
		rows, err := cache.Remember(ctx, h.cache, cache.Key("projects:featured"), publicTTL, h.projects.Featured)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
		return
	}

	rows, err := cache.Remember(ctx, h.cache, cache.Key("projects"), publicTTL, h.projects.GetAll)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *PublicHandler) Skills(c *gin.Context) {
	rows, err := cache.Remember(c.Request.Context(), h.cache, cache.Key("skills"), publicTTL, h.skills.GetAll)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *PublicHandler) Stats(c *gin.Context) {
	rows, err := cache.Remember(c.Request.Context(), h.cache, cache.Key("stats"), publicTTL, h.stats.GetAll)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *PublicHandler) Experiences(c *gin.Context) {
	rows, err := cache.Remember(c.Request.Context(), h.cache, cache.Key("experiences"), publicTTL, h.experiences.GetAll)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *PublicHandler) Educations(c *gin.Context) {
	rows, err := cache.Remember(c.Request.Context(), h.cache, cache.Key("educations"), publicTTL, h.educations.GetAll)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *PublicHandler) PersonalInfo(c *gin.Context) {
	row, err := cache.Remember(c.Request.Context(), h.cache, cache.Key("personal_info"), publicTTL, h.personalInfo.Get)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *PublicHandler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "PublicHandler.SubmitContact", "invalid request body", err))
		return
	}

	row, err := h.contacts.Submit(c.Request.Context(), &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	// submitters never see the stored row; acknowledge receipt only
	c.JSON(http.StatusCreated, gin.H{"id": row.ID, "status": "received"})
}
