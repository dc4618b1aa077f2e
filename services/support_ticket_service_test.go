package services

import (
	"context"
	"testing"

	"salonbook-backend/apperrors"
	"salonbook-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportTicketLifecycle(t *testing.T) {
	db := setupSQLiteTestDB(t)
	actor := createTenant(t, db, "Acme")
	store := newMemoryImageStore()
	svc := NewSupportTicketService(db, store)
	ctx := context.Background()

	ticket, err := svc.Create(ctx, actor, TicketInput{
		Subject:     "Receipt printer",
		Description: "Prints blank pages",
		Images:      []ImageUpload{upload("one.png"), upload("two.png")},
	})
	require.NoError(t, err)
	assert.Equal(t, models.TicketOpen, ticket.Status)
	assert.Equal(t, actor.UserID, ticket.CreatedByID)
	assert.Len(t, ticket.Images, 2)

	status := models.TicketResolved
	ticket, err = svc.Update(ctx, actor, ticket.ID, TicketPatch{Status: &status, Images: []ImageUpload{upload("three.png")}})
	require.NoError(t, err)
	assert.Equal(t, models.TicketResolved, ticket.Status)
	require.Len(t, ticket.Images, 1)
	assert.Equal(t, []string{"three.png"}, store.names())

	bogus := models.TicketStatus("LOST")
	_, err = svc.Update(ctx, actor, ticket.ID, TicketPatch{Status: &bogus})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	open, err := svc.List(ctx, actor, models.TicketOpen)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestSupportTicket_ImageLimit(t *testing.T) {
	db := setupSQLiteTestDB(t)
	actor := createTenant(t, db, "Acme")
	svc := NewSupportTicketService(db, newMemoryImageStore())

	_, err := svc.Create(context.Background(), actor, TicketInput{
		Subject: "Too many",
		Images:  []ImageUpload{upload("1.png"), upload("2.png"), upload("3.png"), upload("4.png")},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
