package service

import (
	"context"
	"testing"

	"github.com/baikov/orders-backend/internal/dto"
	"github.com/baikov/orders-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomerRequiresRegisteredParser(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo(), newStubOrderRepo())

	_, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "New Chain", Code: "newchain",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parser")
}

func TestCreateCustomerRejectsDuplicateCode(t *testing.T) {
	existing := &model.Customer{ID: uuid.New(), Name: "Old", Code: "oseni"}
	svc := NewCustomerService(newStubCustomerRepo(existing), newStubOrderRepo())

	_, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Another", Code: "oseni",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")
}

func TestCreateCustomerHappyPath(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo(), newStubOrderRepo())

	resp, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "Осень", Code: "oseni", OrderInPacks: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Осень", resp.Name)
	assert.Equal(t, "oseni", resp.Code)
	assert.True(t, resp.OrderInPacks)
	assert.Nil(t, resp.LastOrder)
}

func TestUpdateCustomerKeepsCodeImmutable(t *testing.T) {
	existing := &model.Customer{ID: uuid.New(), Name: "Осень", Code: "oseni"}
	repo := newStubCustomerRepo(existing)
	svc := NewCustomerService(repo, newStubOrderRepo())

	newName := "Осень Retail"
	resp, err := svc.Update(context.Background(), existing.ID, dto.UpdateCustomerRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Осень Retail", resp.Name)
	assert.Equal(t, "oseni", resp.Code)
}
