package handlers

import (
	"github.com/education-platform/backend/internal/errs"
	"github.com/education-platform/backend/internal/models"
	"github.com/education-platform/backend/internal/types"
	"github.com/gin-gonic/gin"
)

const msgMarkNotFound = "Competence not found for the current user"

// MarkCompetence adds the competence to the caller's list. Repeated calls
// add repeated entries.
func (h *Handler) MarkCompetence(c *gin.Context, _ *NoBody) (types.MarkedEntry, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return types.MarkedEntry{}, err
	}

	competence, err := h.competenceByName(c, msgCompetenceNotFound)
	if err != nil {
		return types.MarkedEntry{}, err
	}

	mark := models.MarkedCompetence{
		UserID:       userID,
		CompetenceID: competence.ID,
	}

	if err := h.repos.Marks.Create(c.Request.Context(), &mark); err != nil {
		return types.MarkedEntry{}, err
	}

	mark.Competence = *competence
	return types.MarkedEntryOf(mark), nil
}

func (h *Handler) UnmarkCompetence(c *gin.Context, _ *NoBody) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	competence, err := h.competenceByName(c, msgMarkNotFound)
	if err != nil {
		return err
	}

	removed, err := h.repos.Marks.DeleteForUser(c.Request.Context(), userID, competence.ID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return errs.NewNotFoundError(msgMarkNotFound)
	}

	return nil
}
