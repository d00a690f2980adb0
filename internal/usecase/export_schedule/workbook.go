package export_schedule

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	defaultSheet      = "Sheet1"
	maxSheetNameRunes = 31
)

var header = []interface{}{"Дата", "Слот", "Время", "Статус", "Пользователь", "Цель", "ID бронирования", "Причина отказа"}

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

// sheetName строит уникальное допустимое имя листа для ресурса
func sheetName(r *domain.Resource) string {
	name := []rune(sheetNameReplacer.Replace(fmt.Sprintf("%d %s", r.ID, r.Name)))
	if len(name) > maxSheetNameRunes {
		name = name[:maxSheetNameRunes]
	}
	return strings.TrimSpace(string(name))
}

// writeSheet заполняет лист ресурса: заголовок и строки бронирований
func writeSheet(f *excelize.File, sheet string, headerStyle int, bookings []*domain.Booking, slots domain.SlotConfig) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return err
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "C", "C", 14)
	_ = f.SetColWidth(sheet, "E", "E", 18)
	_ = f.SetColWidth(sheet, "F", "F", 40)
	_ = f.SetColWidth(sheet, "G", "G", 38)
	_ = f.SetColWidth(sheet, "H", "H", 30)

	for i, b := range bookings {
		reason := ""
		if b.RejectionReason != nil {
			reason = *b.RejectionReason
		}

		row := []interface{}{
			b.Date.String(),
			b.SlotIndex,
			domain.SlotLabel(slots, b.Slot()),
			string(b.Status),
			b.RequesterID,
			b.Purpose,
			b.ID,
			reason,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}
