package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/common/response"
	"github.com/NgocDuong9/be-betaw/database"
)

// DatabaseController serves development-only database maintenance
// endpoints.
type DatabaseController struct {
	seeder     *database.Seeder
	production bool
}

// NewDatabaseController creates a DatabaseController.
func NewDatabaseController(seeder *database.Seeder, production bool) *DatabaseController {
	return &DatabaseController{seeder: seeder, production: production}
}

// Reseed handles POST /database/reseed. It wipes the catalog and
// seeds the sample data again. Disabled in production.
func (ctl *DatabaseController) Reseed(c *gin.Context) {
	if ctl.production {
		response.Error(c, apperrors.Forbidden("Reseeding is disabled in production"))
		return
	}

	count, err := ctl.seeder.Reseed(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, gin.H{"count": count},
		fmt.Sprintf("Successfully reseeded %d products", count))
}
