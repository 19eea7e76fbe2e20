package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
)

const exportSheet = "Clients"

type clientColumn struct {
	Header string
	Value  func(c *domain.Client) any
}

var clientColumns = []clientColumn{
	{Header: "Name", Value: func(c *domain.Client) any { return c.Name }},
	{Header: "Contact", Value: func(c *domain.Client) any { return c.Contact }},
	{Header: "Email", Value: func(c *domain.Client) any { return c.Email }},
	{Header: "Phone", Value: func(c *domain.Client) any { return c.Phone }},
	{Header: "GST", Value: func(c *domain.Client) any { return c.GST }},
	{Header: "Address", Value: func(c *domain.Client) any { return c.Address }},
	{Header: "Deadline", Value: func(c *domain.Client) any { return c.Deadline }},
	{Header: "Payment", Value: func(c *domain.Client) any { return string(c.Payment) }},
	{Header: "Invoice", Value: func(c *domain.Client) any { return yesNo(c.Invoice != "") }},
	{Header: "LR", Value: func(c *domain.Client) any { return yesNo(c.LR != "") }},
}

// ExportClients renders the filtered client list as an XLSX workbook.
func (s *ClientService) ExportClients(ctx context.Context, input ports.ListClientsInput) (*ports.Export, error) {
	clients, err := s.ListClients(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("export clients: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("export clients: %w", err)
	}

	for i, col := range clientColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, col.Header)
	}
	for rowIdx, c := range clients {
		for colIdx, col := range clientColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(exportSheet, cell, col.Value(c))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export clients: write workbook: %w", err)
	}

	s.logger.Info().Int("rows", len(clients)).Msg("clients exported")
	return &ports.Export{
		Filename: fmt.Sprintf("clients_%s.xlsx", s.now().Format("20060102_150405")),
		Data:     buf.Bytes(),
	}, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
