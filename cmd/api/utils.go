package main

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/farxc/brake_validator/internal/reconcile"
	"github.com/farxc/brake_validator/internal/reconcile/files"
	"github.com/farxc/brake_validator/internal/reconcile/report"
)

func readUpload(r *http.Request, field string) (*files.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", field, err)
	}
	defer file.Close()

	return uploadFrom(file, header)
}

func uploadFrom(file multipart.File, header *multipart.FileHeader) (*files.Upload, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", header.Filename, err)
	}
	return &files.Upload{Filename: header.Filename, Data: data}, nil
}

func readInputs(r *http.Request) (files.Inputs, error) {
	var in files.Inputs
	var err error

	if in.Part1, err = readUpload(r, files.FieldPart1); err != nil {
		return in, err
	}
	if in.Part2, err = readUpload(r, files.FieldPart2); err != nil {
		return in, err
	}
	if in.EPList, err = readUpload(r, files.FieldEPList); err != nil {
		return in, err
	}
	return in, nil
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrMissingInput):
		return http.StatusBadRequest
	case errors.Is(err, reconcile.ErrMalformedInput), errors.Is(err, reconcile.ErrAmbiguousJoin):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func wantsXLSX(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "xlsx") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), report.ContentType)
}
