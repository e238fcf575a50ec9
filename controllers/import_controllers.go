package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/mealbox-app/services"
	"github.com/yeremiapane/mealbox-app/utils"
)

// StaffNotifier receives a one-line summary when an import finishes.
type StaffNotifier interface {
	BroadcastStaffNotification(message string)
}

type ImportController struct {
	Reconciler *services.Reconciler
	Notifier   StaffNotifier
}

func NewImportController(rc *services.Reconciler, notifier StaffNotifier) *ImportController {
	return &ImportController{Reconciler: rc, Notifier: notifier}
}

// ImportLegacyOrders -> multipart upload of a legacy CSV export (field "file")
func (ic *ImportController) ImportLegacyOrders(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	defer f.Close()

	result, err := ic.Reconciler.ImportCSV(c.Request.Context(), fh.Filename, f)
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{"file": fh.Filename, "run": result.RunTag}).WithError(err).Error("Legacy import failed")
		utils.RespondAppError(c, err)
		return
	}

	if ic.Notifier != nil {
		ic.Notifier.BroadcastStaffNotification(fmt.Sprintf("Import %s finished: %d imported, %d skipped",
			fh.Filename, result.Imported, result.Skipped))
	}
	utils.RespondJSON(c, http.StatusOK, "Import finished", result)
}

func (ic *ImportController) GetImportRuns(c *gin.Context) {
	runs, err := ic.Reconciler.ListRuns(c.Request.Context())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of import runs", runs)
}
