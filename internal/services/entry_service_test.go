package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"studio-backend/internal/models"
)

// Validation happens before the repository is touched, so a nil repo is safe
// for the rejection paths.
func TestCreateEntryValidation(t *testing.T) {
	svc := NewEntryService(nil)
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, 1, &models.CreateEntryRequest{
		ChannelName: "", ServiceType: models.ServiceVideo, Price: 100,
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = svc.CreateEntry(ctx, 1, &models.CreateEntryRequest{
		ChannelName: "Acme", ServiceType: models.ServiceVideo, Price: -1,
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = svc.CreateEntry(ctx, 1, &models.CreateEntryRequest{
		ChannelName: "Acme", ServiceType: "podcast", Price: 100,
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = svc.CreateEntry(ctx, 1, &models.CreateEntryRequest{
		ChannelName: "Acme", ServiceType: models.ServiceVideo, Price: 100,
		ServiceDate: "01-02-2026",
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestChannelSummaryRequiresChannelName(t *testing.T) {
	svc := NewEntryService(nil)

	_, err := svc.ChannelSummary(context.Background(), 1, "")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestValidServiceType(t *testing.T) {
	assert.True(t, validServiceType(models.ServiceVideo))
	assert.True(t, validServiceType(models.ServicePoster))
	assert.True(t, validServiceType(models.ServiceAudio))
	assert.False(t, validServiceType(""))
	assert.False(t, validServiceType("Video"))
}
