package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"studio-backend/internal/models"
	"studio-backend/internal/repositories"
	"studio-backend/internal/timeutil"
)

// EntryService covers the plain CRUD surface for service entries plus the
// channel summary lookup. Edits here are simple field mapping and do not
// touch the ledger.
type EntryService struct {
	Repo *repositories.EntryRepository
}

func NewEntryService(repo *repositories.EntryRepository) *EntryService {
	return &EntryService{Repo: repo}
}

func validServiceType(t string) bool {
	switch t {
	case models.ServiceVideo, models.ServicePoster, models.ServiceAudio:
		return true
	}
	return false
}

func (s *EntryService) CreateEntry(ctx context.Context, ownerID int, req *models.CreateEntryRequest) (*models.ServiceEntry, error) {
	if req.ChannelName == "" {
		return nil, fmt.Errorf("channel name is required: %w", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", ErrInvalidInput)
	}
	if !validServiceType(req.ServiceType) {
		return nil, fmt.Errorf("service type must be video, poster or audio: %w", ErrInvalidInput)
	}

	serviceDate := timeutil.Now()
	if req.ServiceDate != "" {
		parsed, err := time.ParseInLocation(timeutil.DateLayout, req.ServiceDate, timeutil.IST)
		if err != nil {
			return nil, fmt.Errorf("service date must be YYYY-MM-DD: %w", ErrInvalidInput)
		}
		serviceDate = parsed
	}

	entry := &models.ServiceEntry{
		OwnerID:       ownerID,
		ChannelName:   req.ChannelName,
		ClientName:    req.ClientName,
		Title:         req.Title,
		ServiceType:   req.ServiceType,
		SubType:       req.SubType,
		Price:         req.Price,
		AmountDue:     req.Price,
		PaymentStatus: models.StatusUnpaid,
		ServiceDate:   serviceDate,
	}

	if err := s.Repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *EntryService) GetEntry(ctx context.Context, ownerID, id int) (*models.ServiceEntry, error) {
	entry, err := s.Repo.Get(ctx, ownerID, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	return entry, err
}

func (s *EntryService) ListEntries(ctx context.Context, ownerID int) ([]*models.ServiceEntry, error) {
	return s.Repo.List(ctx, ownerID)
}

func (s *EntryService) UpdateEntry(ctx context.Context, ownerID, id int, req *models.UpdateEntryRequest) (*models.ServiceEntry, error) {
	entry, err := s.GetEntry(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.ChannelName == "" {
		return nil, fmt.Errorf("channel name is required: %w", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", ErrInvalidInput)
	}
	if !validServiceType(req.ServiceType) {
		return nil, fmt.Errorf("service type must be video, poster or audio: %w", ErrInvalidInput)
	}

	entry.ChannelName = req.ChannelName
	entry.ClientName = req.ClientName
	entry.Title = req.Title
	entry.ServiceType = req.ServiceType
	entry.SubType = req.SubType
	entry.Price = req.Price

	if err := s.Repo.Update(ctx, entry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("entry %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return s.GetEntry(ctx, ownerID, id)
}

func (s *EntryService) DeleteEntry(ctx context.Context, ownerID, id int) error {
	err := s.Repo.Delete(ctx, ownerID, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	return err
}

// ChannelSummary recomputes the channel's money position from its
// nonzero-price entries.
func (s *EntryService) ChannelSummary(ctx context.Context, ownerID int, channelName string) (*models.ChannelSummary, error) {
	if channelName == "" {
		return nil, fmt.Errorf("channel name is required: %w", ErrInvalidInput)
	}
	entries, err := s.Repo.FindAllForChannel(ctx, ownerID, channelName)
	if err != nil {
		return nil, err
	}
	summary := models.Summarize(channelName, entries)
	return &summary, nil
}
