package main

import (
	"net/http"
	"strconv"

	"github.com/farxc/brake_validator/internal/reconcile"
	"github.com/farxc/brake_validator/internal/reconcile/report"
	"github.com/farxc/brake_validator/internal/response"
	"github.com/google/uuid"
)

type ValidationResult struct {
	RunID         string                  `json:"run_id"`
	Discrepancies []reconcile.Discrepancy `json:"discrepancies"`
	Summary       report.Summary          `json:"summary"`
}

type CreateValidationResponse = response.APIResponse[ValidationResult]

// @Summary		Validate Smart Brake parts against the EP List
// @Description	Reconciles the two Smart Brake workbooks with the EP List and reports every row whose C flag disagrees with AA or has no EP List entry.
// @Tags			Validations
// @Accept			multipart/form-data
// @Produce		json
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param			part1	formData	file						true	"Smart Brake Part 1"
// @Param			part2	formData	file						true	"Smart Brake Part 2"
// @Param			ep_list	formData	file						true	"EP List"
// @Param			format	query		string						false	"Set to xlsx to download the report"
// @Success		200		{object}	CreateValidationResponse	"Validation completed"
// @Failure		400		{object}	response.ErrorResponse		"Missing workbook or invalid form"
// @Failure		422		{object}	response.ErrorResponse		"Workbook cannot be reconciled"
// @Router			/validations [post]
func (app *application) handleCreateValidation(w http.ResponseWriter, r *http.Request) {
	const component = "ValidationHandler"
	runID := uuid.New().String()

	maxBytes := app.config.maxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		app.logger.Warn(component, "Invalid upload: runID=%s error=%v", runID, err)
		writeJSONError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	inputs, err := readInputs(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, reconcile.UserMessage(err))
		return
	}

	tables, err := inputs.Load()
	if err != nil {
		app.logger.Warn(component, "Inputs rejected: runID=%s error=%v", runID, err)
		writeJSONError(w, errorStatus(err), reconcile.UserMessage(err))
		return
	}

	result, err := app.reconciler.Run(tables.Part1, tables.Part2, tables.EPList)
	if err != nil {
		app.logger.Warn(component, "Validation failed: runID=%s error=%v", runID, err)
		writeJSONError(w, errorStatus(err), reconcile.UserMessage(err))
		return
	}

	summary := report.Summarize(result.Discrepancies, result.Stats)
	app.logger.Info(component, "Validation completed: runID=%s sourceRows=%d discrepancies=%d",
		runID, result.Stats.SourceRows, summary.Total)

	if wantsXLSX(r) && summary.Total > 0 {
		data, err := report.XLSXBytes(result.Discrepancies)
		if err != nil {
			app.logger.Error(component, "Failed to render report: runID=%s error=%v", runID, err)
			writeJSONError(w, http.StatusInternalServerError, reconcile.UserMessage(err))
			return
		}

		w.Header().Set("Content-Type", report.ContentType)
		w.Header().Set("Content-Disposition", "attachment; filename="+report.Filename)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("X-Run-ID", runID)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			app.logger.Error(component, "Failed to send report: runID=%s error=%v", runID, err)
		}
		return
	}

	body := response.OK(summary.Message, ValidationResult{
		RunID:         runID,
		Discrepancies: result.Discrepancies,
		Summary:       summary,
	})

	if err := writeJSON(w, http.StatusOK, body); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
