package appointment

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/campus-scheduler/internal/dto"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
)

const exportSheet = "Appointments"

var exportHeaders = []string{
	"ID", "Date", "Start", "End", "Student", "Email", "Phone",
	"Student number", "Reason", "Status", "Requested at",
}

// ExportAppointments renders the specialist's appointments as an .xlsx
// workbook.
type ExportAppointments struct {
	repo   domain.Repository
	clock  timezone.Clock
	logger *zap.Logger
}

func NewExportAppointments(repo domain.Repository, clock timezone.Clock, logger *zap.Logger) *ExportAppointments {
	return &ExportAppointments{repo: repo, clock: clock, logger: logger}
}

func (uc *ExportAppointments) Execute(
	ctx context.Context,
	caller identity.Caller,
	filter domain.ListFilter,
) (*bytes.Buffer, string, error) {

	if err := caller.Require(identity.RoleSpecialist); err != nil {
		return nil, "", err
	}

	scoped, err := ScopeFor(caller, filter)
	if err != nil {
		return nil, "", err
	}

	apps, err := uc.repo.ListAppointments(ctx, scoped)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, "", err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	_ = f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle)
	_ = f.SetColWidth(exportSheet, "A", "D", 12)
	_ = f.SetColWidth(exportSheet, "E", "H", 22)
	_ = f.SetColWidth(exportSheet, "I", "I", 48)
	_ = f.SetColWidth(exportSheet, "J", "K", 18)

	loc := uc.clock().Location()
	for r, ap := range dto.NewAppointmentDTOs(apps) {
		row := []any{
			ap.ID,
			ap.SlotDetails.Date,
			ap.SlotDetails.StartTime,
			ap.SlotDetails.EndTime,
			ap.StudentDetails.Name,
			ap.StudentDetails.Email,
			ap.StudentDetails.Phone,
			ap.StudentDetails.StudentNumber,
			ap.Reason,
			ap.Status,
			ap.CreatedAt.In(loc).Format("2006-01-02 15:04"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	if err := f.AutoFilter(exportSheet, fmt.Sprintf("A1:%s%d", lastCol, len(apps)+1), nil); err != nil {
		uc.logger.Warn("xlsx autofilter failed", zap.Error(err))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	name := fmt.Sprintf("appointments-%s.xlsx", uc.clock().Format(timezone.DateLayout))
	return buf, name, nil
}
