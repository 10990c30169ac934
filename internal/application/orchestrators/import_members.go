package orchestrators

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"

	"gymdesk/internal/domain/apperr"
)

// ImportMembersInput carries the CSV stream and import options.
// PRE: Reader is a CSV stream with a header row
// POST: Returns aggregate counts and per-row errors; nothing is written when DryRun=true
type ImportMembersInput struct {
	Reader io.Reader
	DryRun bool
}

// ImportMembersResult holds aggregate counts and per-row errors from an import run.
type ImportMembersResult struct {
	Total   int
	Created int
	Errors  []ImportMembersRowError
	DryRun  bool
	Unknown []string
}

// ImportMembersRowError describes a validation or processing error for a single CSV row.
type ImportMembersRowError struct {
	Row     int
	Message string
}

// ImportMembersDeps holds external dependencies for the import orchestrator.
type ImportMembersDeps struct {
	Create CreateMemberDeps
}

var importColumns = map[string]bool{
	"NAME": true, "PHONE": true, "EMAIL": true, "ADDRESS": true, "GENDER": true,
	"START_DATE": true, "END_DATE": true, "PLAN": true, "AMOUNT": true, "DUE_DATE": true,
}

// ExecuteImportMembers creates one member per CSV row, each in its own
// transaction, so a bad row is reported without blocking the others.
// PRE: The header names at least NAME, GENDER and START_DATE
// POST: Valid rows created (or only counted on DryRun); invalid rows listed in Errors
// INVARIANT: A row's member and its initial payment land together or not at all
func ExecuteImportMembers(ctx context.Context, input ImportMembersInput, deps ImportMembersDeps) (ImportMembersResult, error) {
	cr := csv.NewReader(input.Reader)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return ImportMembersResult{}, apperr.Validation("cannot read CSV header: %v", err)
	}

	colIdx := make(map[string]int, len(header))
	var unknownCols []string
	for i, h := range header {
		key := strings.ToUpper(strings.TrimSpace(h))
		colIdx[key] = i
		if !importColumns[key] {
			unknownCols = append(unknownCols, h)
		}
	}
	for _, required := range []string{"NAME", "GENDER", "START_DATE"} {
		if _, ok := colIdx[required]; !ok {
			return ImportMembersResult{}, apperr.Validation("CSV missing required column: %s", required)
		}
	}

	getCol := func(row []string, col string) string {
		i, ok := colIdx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := ImportMembersResult{DryRun: input.DryRun, Unknown: unknownCols}
	rowNum := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			result.Total++
			result.Errors = append(result.Errors, ImportMembersRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		result.Total++

		in := CreateMemberInput{
			Name:          getCol(row, "NAME"),
			Phone:         getCol(row, "PHONE"),
			Email:         getCol(row, "EMAIL"),
			Address:       getCol(row, "ADDRESS"),
			Gender:        normaliseGender(getCol(row, "GENDER")),
			StartDate:     getCol(row, "START_DATE"),
			EndDate:       getCol(row, "END_DATE"),
			Plan:          getCol(row, "PLAN"),
			InitialAmount: getCol(row, "AMOUNT"),
			DueDate:       getCol(row, "DUE_DATE"),
		}

		if input.DryRun {
			if err := validateCreateMember(in); err != nil {
				result.Errors = append(result.Errors, ImportMembersRowError{Row: rowNum, Message: err.Error()})
				continue
			}
			result.Created++
			continue
		}

		if _, err := ExecuteCreateMember(ctx, in, deps.Create); err != nil {
			if !errors.Is(err, apperr.ErrValidation) {
				slog.Error("members_import_save_failed", "row", rowNum, "err", err)
			}
			result.Errors = append(result.Errors, ImportMembersRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		result.Created++
	}

	slog.Info("member_event", "event", "members_imported",
		"dry_run", input.DryRun,
		"total", result.Total,
		"created", result.Created,
		"errors", len(result.Errors),
	)
	return result, nil
}

// normaliseGender maps "male", "F" and similar spellings onto the stored values.
func normaliseGender(s string) string {
	switch strings.ToLower(s) {
	case "m", "male":
		return "Male"
	case "f", "female":
		return "Female"
	case "o", "other":
		return "Other"
	}
	return s
}
