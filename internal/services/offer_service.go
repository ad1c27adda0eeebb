package services

import (
	"context"
	"encoding/json"
	"fmt"

	"wardrobe-backend/internal/cache"
	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/repositories"
)

type OfferService struct {
	OfferRepo *repositories.OfferRepository
}

func NewOfferService(offerRepo *repositories.OfferRepository) *OfferService {
	return &OfferService{OfferRepo: offerRepo}
}

// ActiveOffers returns the serialized active-offers list, served from
// Redis when warm. Offers change rarely, so a short TTL is enough.
func (s *OfferService) ActiveOffers(ctx context.Context) ([]byte, error) {
	if data, ok := cache.GetCachedActiveOffers(ctx); ok {
		return data, nil
	}

	offers, err := s.OfferRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %w", err)
	}

	data, err := json.Marshal(offers)
	if err != nil {
		return nil, err
	}

	cache.CacheActiveOffers(ctx, data)
	return data, nil
}

// RefreshCache drops the cached active-offers list so the next read picks
// up out-of-band offer changes before the TTL lapses.
func (s *OfferService) RefreshCache(ctx context.Context) {
	cache.InvalidateOffers(ctx)
}

// Offer returns one offer by id, nil when it does not exist
func (s *OfferService) Offer(ctx context.Context, id int) (*models.Offer, error) {
	if data, ok := cache.GetCachedOffer(ctx, id); ok {
		var offer models.Offer
		if err := json.Unmarshal(data, &offer); err == nil {
			return &offer, nil
		}
	}

	offer, err := s.OfferRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offer: %w", err)
	}
	if offer == nil {
		return nil, nil
	}

	if data, err := json.Marshal(offer); err == nil {
		cache.CacheOffer(ctx, id, data)
	}

	return offer, nil
}
