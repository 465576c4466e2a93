package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/andy/invoicepro/internal/domain"
)

// dueDateLayout is how date-only fields are submitted
const dueDateLayout = "2006-01-02"

type clientDTO struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *clientDTO) toDomain() *domain.Client {
	return &domain.Client{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// clientPayload is what create/update sends; ids and timestamps are
// backend-owned and never submitted
type clientPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// clientRef is an invoice's client reference on the wire: a bare id
// string on writes, an expanded client object on reads, or null when
// the client was deleted by another session.
type clientRef struct {
	ID     string
	Client *clientDTO
}

func (r *clientRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = clientRef{}
		return nil
	}

	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.Client = nil
		return nil
	}

	var dto clientDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return fmt.Errorf("invalid client reference: %w", err)
	}
	r.ID = dto.ID
	r.Client = &dto
	return nil
}

type lineItemDTO struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type invoiceDTO struct {
	ID            string        `json:"_id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Client        clientRef     `json:"clientId"`
	Items         []lineItemDTO `json:"items"`
	Tax           float64       `json:"tax"`
	Discount      float64       `json:"discount"`
	Total         float64       `json:"total"`
	Status        string        `json:"status"`
	InvoiceDate   time.Time     `json:"invoiceDate"`
	DueDate       time.Time     `json:"dueDate"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (d *invoiceDTO) toDomain() (*domain.Invoice, error) {
	status, err := domain.ParseStatus(d.Status)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", d.InvoiceNumber, err)
	}

	items := make([]domain.LineItem, len(d.Items))
	for i, li := range d.Items {
		items[i] = domain.LineItem{Name: li.Name, Quantity: li.Quantity, Price: li.Price}
	}

	inv := &domain.Invoice{
		ID:            d.ID,
		InvoiceNumber: d.InvoiceNumber,
		ClientID:      d.Client.ID,
		Items:         items,
		Tax:           d.Tax,
		Discount:      d.Discount,
		Total:         d.Total,
		Status:        status,
		InvoiceDate:   d.InvoiceDate,
		DueDate:       d.DueDate,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.Client.Client != nil {
		inv.Client = d.Client.Client.toDomain()
	}
	return inv, nil
}

// invoicePayload is the submitted draft. The computed total is never
// part of it; the backend derives totals from items/tax/discount.
type invoicePayload struct {
	ClientID string        `json:"clientId,omitempty"`
	Items    []lineItemDTO `json:"items"`
	Tax      float64       `json:"tax"`
	Discount float64       `json:"discount"`
	DueDate  string        `json:"dueDate"`
	Notes    string        `json:"notes"`
}

func invoicePayloadFrom(draft *domain.InvoiceDraft, items []domain.LineItem, includeClient bool) invoicePayload {
	dtos := make([]lineItemDTO, len(items))
	for i, li := range items {
		dtos[i] = lineItemDTO{Name: li.Name, Quantity: li.Quantity, Price: li.Price}
	}

	p := invoicePayload{
		Items:    dtos,
		Tax:      draft.Tax,
		Discount: draft.Discount,
		DueDate:  draft.DueDate.Format(dueDateLayout),
		Notes:    draft.Notes,
	}
	if includeClient {
		p.ClientID = draft.ClientID
	}
	return p
}

type companyDTO struct {
	BusinessName string `json:"businessName"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Logo         string `json:"logo"`
}

func (d *companyDTO) toDomain() *domain.CompanyProfile {
	return &domain.CompanyProfile{
		BusinessName: d.BusinessName,
		Address:      d.Address,
		Phone:        d.Phone,
		Logo:         d.Logo,
	}
}
