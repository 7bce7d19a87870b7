package booking

import (
	"bytes"
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/errs"
)

const exportSheet = "Agendamentos"

var exportHeader = []any{
	"Data", "Início", "Fim", "Serviço", "Cliente", "E-mail",
	"Telefone", "Local", "Endereço", "Pagamento", "Status pagamento", "Status",
}

// ExportBookings gera a planilha .xlsx da agenda do painel.
type ExportBookings struct {
	list *ListBookings
}

func NewExportBookings(list *ListBookings) *ExportBookings {
	return &ExportBookings{list: list}
}

func (uc *ExportBookings) Execute(
	ctx context.Context,
	in ListBookingsInput,
) (*bytes.Buffer, error) {

	rows, err := uc.list.Execute(ctx, in)
	if err != nil {
		return nil, err
	}
	return WriteXLSX(rows)
}

func WriteXLSX(rows []dto.BookingListDTO) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, errs.Wrap(err, "rename sheet")
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, errs.Wrap(err, "write header")
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errs.Wrap(err, "header style")
	}
	if err := f.SetCellStyle(exportSheet, "A1", "L1", bold); err != nil {
		return nil, errs.Wrap(err, "apply header style")
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		line := []any{
			r.StartsAt.Format("02/01/2006"),
			r.StartsAt.Format("15:04"),
			r.EndsAt.Format("15:04"),
			r.ServiceTitle,
			r.CustomerName,
			r.CustomerEmail,
			r.CustomerPhone,
			r.LocationType,
			r.CustomerAddress,
			r.PaymentMethod,
			r.PaymentStatus,
			r.Status,
		}
		if err := f.SetSheetRow(exportSheet, cell, &line); err != nil {
			return nil, errs.Wrapf(err, "write row %d", i+2)
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "L", 18)

	return f.WriteToBuffer()
}
