package quotation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kleinsmith/orthobill/internal/quotation"
)

type lineItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ICD10Code    string          `json:"icd10Code"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	NAPPICode    string          `json:"nappiCode,omitempty"`
	SAOPACode    string          `json:"saopaCode,omitempty"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Total        decimal.Decimal `json:"total"`
}

type quotationResponse struct {
	ID           uuid.UUID          `json:"id"`
	LinkNo       string             `json:"linkNo"`
	Date         time.Time          `json:"date"`
	ClaimantName string             `json:"claimantName"`
	Title        string             `json:"title,omitempty"`
	LineItems    []lineItemResponse `json:"lineItems"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	VATAmount    decimal.Decimal    `json:"vatAmount"`
	Total        decimal.Decimal    `json:"total"`
	VATEnabled   bool               `json:"vatEnabled"`
	Status       quotation.Status   `json:"status"`
	Version      int64              `json:"version"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

func toResponse(q *quotation.Quotation) quotationResponse {
	items := make([]lineItemResponse, len(q.LineItems))
	for i, item := range q.LineItems {
		items[i] = lineItemResponse{
			ID:           item.ID,
			ICD10Code:    item.ICD10Code,
			Description:  item.Description,
			Quantity:     item.Quantity,
			NAPPICode:    item.NAPPICode,
			SAOPACode:    item.SAOPACode,
			PricePerUnit: item.PricePerUnit,
			Total:        item.Total,
		}
	}

	return quotationResponse{
		ID:           q.ID,
		LinkNo:       q.LinkNo,
		Date:         q.Date,
		ClaimantName: q.ClaimantName,
		Title:        q.Title,
		LineItems:    items,
		Subtotal:     q.Subtotal,
		VATAmount:    q.VATAmount,
		Total:        q.Total,
		VATEnabled:   q.VATEnabled,
		Status:       q.Status,
		Version:      q.Version,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

func toResponseList(qs []*quotation.Quotation) []quotationResponse {
	resp := make([]quotationResponse, len(qs))
	for i, q := range qs {
		resp[i] = toResponse(q)
	}

	return resp
}
