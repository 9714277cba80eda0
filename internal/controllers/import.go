package controllers

import (
	"net/http"

	"github.com/account-manager/backend/internal/httputil"
	"github.com/account-manager/backend/internal/importer"
	"github.com/account-manager/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterImportRoutes registers the routes for imports with
// the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/csv", httputil.OptionsPost)
	r.POST("/csv", ImportCSV)
}

// ImportJob is the API representation of an import job.
type ImportJob struct {
	models.DefaultModel
	SourceName string              `json:"source_name" example:"manual_upload"`
	ImportType string              `json:"import_type" example:"balances"`
	Status     models.ImportStatus `json:"status" example:"completed"`
	Message    string              `json:"message" example:"Imported 4 rows."`
}

func newImportJob(model models.ImportJob) ImportJob {
	return ImportJob{
		DefaultModel: model.DefaultModel,
		SourceName:   model.SourceName,
		ImportType:   model.ImportType,
		Status:       model.Status,
		Message:      model.Message,
	}
}

// @Summary		Import CSV
// @Description	Imports a CSV file of balances or transactions. A failing row rolls back the whole batch and records a failed job
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201			{object}	ImportJob
// @Failure		400			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			file		formData	file	true	"The CSV file to import"
// @Param			import_type	formData	string	true	"One of balances, transactions"
// @Param			source_name	formData	string	false	"Label for the upload"	default(manual_upload)
// @Router			/imports/csv [post]
func ImportCSV(c *gin.Context) {
	formFile, err := c.FormFile("file")
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, errNoFilePost)
		return
	}

	file, err := formFile.Open()
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	sourceName := c.PostForm("source_name")
	if sourceName == "" {
		sourceName = "manual_upload"
	}

	job, err := importer.Run(models.DB, file, c.PostForm("import_type"), sourceName)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusCreated, newImportJob(job))
}
