package repository

import (
	"context"
	"fmt"

	"github.com/andy/invoicepro/internal/api"
	"github.com/andy/invoicepro/internal/domain"
)

// ClientRepo is a REST implementation of ClientRepository
type ClientRepo struct {
	api *api.Client
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(apiClient *api.Client) *ClientRepo {
	return &ClientRepo{api: apiClient}
}

// List retrieves all clients in server order
func (r *ClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	var dtos []clientDTO
	if err := r.api.Get(ctx, "/clients", &dtos); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*domain.Client, len(dtos))
	for i := range dtos {
		clients[i] = dtos[i].toDomain()
	}
	return clients, nil
}

// Create validates the client locally, then submits it
func (r *ClientRepo) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := client.Validate(); err != nil {
		return nil, err
	}

	var dto clientDTO
	payload := clientPayload{
		Name:    client.Name,
		Email:   client.Email,
		Phone:   client.Phone,
		Address: client.Address,
	}
	if err := r.api.Post(ctx, "/clients", payload, &dto); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return dto.toDomain(), nil
}

// Update validates and submits changed fields for an existing client
func (r *ClientRepo) Update(ctx context.Context, id string, client *domain.Client) (*domain.Client, error) {
	if err := client.Validate(); err != nil {
		return nil, err
	}

	var dto clientDTO
	payload := clientPayload{
		Name:    client.Name,
		Email:   client.Email,
		Phone:   client.Phone,
		Address: client.Address,
	}
	if err := r.api.Put(ctx, "/clients/"+id, payload, &dto); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return dto.toDomain(), nil
}

// Delete removes a client. Invoices referencing the client are left
// untouched; their client reference simply dangles.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, "/clients/"+id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
