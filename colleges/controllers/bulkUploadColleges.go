package controllers

import (
	"fmt"
	"os"
	"strings"

	"college-catalog-backend/config"
	"college-catalog-backend/db/models"
	"college-catalog-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Expected sheet columns, in order.
var bulkUploadHeaders = []string{"Name", "City", "State", "Stream", "InstituteType", "Score"}

// BulkUploadCollegesController ingests an Excel sheet of colleges. Valid rows
// are inserted in one transaction (chunked internally); invalid rows are
// recorded per-row and reported back. The bulk index push afterwards is
// best-effort and not transactional.
func (cc *CollegeController) BulkUploadCollegesController(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to get file"})
	}

	createdBy := c.FormValue("created_by")
	if createdBy == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing 'created_by' field in FormData"})
	}

	tempFilePath := fmt.Sprintf("./tmp/%s", file.Filename)
	if err := c.SaveFile(file, tempFilePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to save file"})
	}
	defer os.Remove(tempFilePath)

	f, err := excelize.OpenFile(tempFilePath)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to open Excel file"})
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to read rows from Excel sheet"})
	}

	ctx := c.UserContext()
	cityIDs, stateIDs, streamIDs, err := cc.CollegeRepo.ReferenceNameIndex(ctx)
	if err != nil {
		config.Logger.Error("Failed to load reference data for bulk upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load reference data"})
	}

	var validColleges []models.College
	var invalidRows []models.BulkUploadErrorColleges
	namesInFile := make(map[string]struct{})

	for i, row := range rows {
		if i == 0 { // header row
			continue
		}

		get := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		name := utils.TitleCase(get(0))
		reject := func(reason, errorType string) {
			invalidRows = append(invalidRows, models.BulkUploadErrorColleges{
				RowNumber:   i + 1,
				CollegeName: name,
				Reason:      reason,
				ErrorType:   errorType,
				CreatedBy:   createdBy,
			})
		}

		if name == "" {
			reject("Missing college name", "missing_field")
			continue
		}
		if _, dup := namesInFile[name]; dup {
			reject("Duplicate college name in file", "duplicate")
			continue
		}

		cityID, ok := cityIDs[lookupKey(get(1))]
		if !ok {
			reject(fmt.Sprintf("Unknown city %q", get(1)), "unknown_reference")
			continue
		}
		stateID, ok := stateIDs[lookupKey(get(2))]
		if !ok {
			reject(fmt.Sprintf("Unknown state %q", get(2)), "unknown_reference")
			continue
		}
		streamID, ok := streamIDs[lookupKey(get(3))]
		if !ok {
			reject(fmt.Sprintf("Unknown stream %q", get(3)), "unknown_reference")
			continue
		}

		score := decimal.Zero
		if raw := get(5); raw != "" {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				reject(fmt.Sprintf("Invalid score %q", raw), "invalid_value")
				continue
			}
			score = parsed
		}

		namesInFile[name] = struct{}{}
		validColleges = append(validColleges, models.College{
			Name:          name,
			CityID:        cityID,
			StateID:       stateID,
			StreamID:      streamID,
			InstituteType: get(4),
			Score:         score,
			IsActive:      true,
			CreatedBy:     createdBy,
		})
	}

	created, err := cc.CollegeRepo.BulkCreateColleges(ctx, validColleges)
	if err != nil {
		config.Logger.Error("Bulk college insert failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to insert colleges"})
	}

	if err := cc.CollegeRepo.RecordBulkUploadErrors(ctx, invalidRows); err != nil {
		config.Logger.Error("Failed to record bulk upload errors", zap.Error(err))
	}

	// Best-effort bulk index; partial failures are logged only.
	_ = cc.SearchRepo.SyncBulkCreate(ctx, created)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":          "Bulk upload processed",
		"inserted_count":   len(created),
		"rejected_count":   len(invalidRows),
		"rejected_rows":    invalidRows,
		"expected_headers": bulkUploadHeaders,
	})
}

func lookupKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
