package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"home_card/internal/domain"
)

// restaurantFacility marks a linked facility as the home's restaurant.
const restaurantFacility = "Restaurant"

// facilities builds categories from the live facilities linked to the home.
// A facility whose category did not survive is dropped from the categories
// but still lands in Important when flagged. Empty categories are kept.
func (s *CardService) facilities(ctx context.Context, homeID uuid.UUID) (domain.Facilities, error) {
	out := domain.Facilities{Categories: []domain.FacilityCategory{}, Important: []domain.Facility{}}

	rows, err := s.store.LinkedFacilities(ctx, homeID)
	if err != nil {
		return domain.Facilities{}, err
	}
	if len(rows) == 0 {
		return out, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.CategoryID]; ok {
			continue
		}
		seen[r.CategoryID] = struct{}{}
		ids = append(ids, r.CategoryID)
	}

	cats, err := s.store.FacilityCategories(ctx, ids)
	if err != nil {
		return domain.Facilities{}, err
	}
	index := make(map[uuid.UUID]int, len(cats))
	for _, c := range cats {
		index[c.ID] = len(out.Categories)
		out.Categories = append(out.Categories, domain.FacilityCategory{
			ID:         c.ID,
			Name:       c.Name,
			Facilities: []domain.Facility{},
		})
	}

	for _, r := range rows {
		f := domain.Facility{ID: r.ID, Name: r.Name, Icon: r.Icon}
		if r.Important {
			out.Important = append(out.Important, f)
		}
		pos, ok := index[r.CategoryID]
		if !ok {
			continue
		}
		out.Categories[pos].Facilities = append(out.Categories[pos].Facilities, f)
	}
	return out, nil
}

func (s *CardService) hasRestaurant(ctx context.Context, homeID uuid.UUID) (bool, error) {
	n, err := s.store.CountLinkedFacilitiesLike(ctx, homeID, restaurantFacility)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *CardService) creditCards(ctx context.Context, homeID uuid.UUID) ([]domain.CreditCard, error) {
	cards, err := s.store.AcceptedCreditCards(ctx, homeID)
	if err != nil {
		return nil, err
	}
	return orEmpty(cards), nil
}

func (s *CardService) documents(ctx context.Context, homeID uuid.UUID) (domain.RequiredDocuments, error) {
	var out domain.RequiredDocuments
	lists := []struct {
		kind domain.DocumentKind
		dst  *[]string
	}{
		{domain.AdultForLiving, &out.AdultForLiving},
		{domain.AdultForTreatment, &out.AdultForTreatment},
		{domain.ChildForTreatment, &out.ChildForTreatment},
		{domain.ChildForLiving, &out.ChildForLiving},
	}
	for _, l := range lists {
		names, err := s.store.DocumentNames(ctx, homeID, l.kind)
		if err != nil {
			return domain.RequiredDocuments{}, fmt.Errorf("%s: %w", l.kind, err)
		}
		*l.dst = orEmpty(names)
	}
	return out, nil
}

func (s *CardService) childrenRules(ctx context.Context, homeID uuid.UUID) ([]domain.ChildrenRule, error) {
	rows, err := s.store.ChildrenRules(ctx, homeID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ChildrenRule, 0, len(rows))
	for _, r := range rows {
		unit, err := discountUnit(r.DiscountMeasure)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ChildrenRule{
			AgeFrom:        r.AgeFrom,
			AgeTo:          r.AgeTo,
			DiscountAmount: r.DiscountAmount,
			DiscountUnit:   unit,
		})
	}
	return out, nil
}

func (s *CardService) branches(ctx context.Context, homeID uuid.UUID) ([]domain.Branch, error) {
	bs, err := s.store.Branches(ctx, homeID)
	if err != nil {
		return nil, err
	}
	return orEmpty(bs), nil
}

// weather keeps every row the store returns (month asc, newest update first).
// A home without a resolved city has no weather by construction.
func (s *CardService) weather(ctx context.Context, cityID uuid.UUID) ([]domain.WeatherRecord, error) {
	if cityID == uuid.Nil {
		return []domain.WeatherRecord{}, nil
	}
	rows, err := s.store.MonthlyTemperatures(ctx, cityID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.WeatherRecord, 0, len(rows))
	for _, r := range rows {
		label, err := monthLabel(r.Month)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.WeatherRecord{
			Month: label,
			Air:   domain.Temperature{Min: r.AirMin, Avg: r.AirAvg, Max: r.AirMax},
			Water: domain.Temperature{Min: r.WaterMin, Avg: r.WaterAvg, Max: r.WaterMax},
		})
	}
	return out, nil
}

func (s *CardService) paidFacilities(ctx context.Context, homeID uuid.UUID) ([]domain.PaidFacility, error) {
	rows, err := s.store.PaidFacilities(ctx, homeID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PaidFacility, 0, len(rows))
	for _, r := range rows {
		refs, err := s.gallery.Images(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		images := urls(refs)
		out = append(out, domain.PaidFacility{
			ID:          r.ID,
			Name:        r.Name,
			Short:       r.Short,
			Description: r.Description,
			Price:       r.PriceAmount,
			Unit:        r.PriceUnit,
			Image:       first(images),
			Images:      images,
		})
	}
	return out, nil
}

func (s *CardService) programs(ctx context.Context, homeID uuid.UUID) ([]domain.TreatmentProgram, error) {
	rows, err := s.store.TreatmentPrograms(ctx, homeID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TreatmentProgram, 0, len(rows))
	for _, r := range rows {
		refs, err := s.gallery.Images(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		images := sizedURLs(refs, domain.DisplaySize)
		out = append(out, domain.TreatmentProgram{
			ID:                r.ID,
			Title:             r.NamePublic,
			Description:       r.Description,
			MinStay:           r.MinBookingDays,
			MinAge:            r.MinAge,
			MaxAge:            r.MaxAge,
			NeedHealthCard:    r.RequireHealthCard,
			Purpose:           r.WhatGivesProgram,
			Audience:          r.Whom,
			Goal:              r.Goal,
			Contraindications: r.Contraindications,
			RecommendedDays:   r.RecommendedBookingDays,
			MaxDays:           r.MaxBookingDays,
			AnalysisAge:       r.RequireAnalysisAge,
			MinPregnancyWeek:  r.MinPregnantStage,
			Price:             r.Price,
			Images:            images,
			MainImage:         first(images),
		})
	}
	return out, nil
}

func (s *CardService) therapy(ctx context.Context, homeID uuid.UUID) (domain.TherapyBase, error) {
	rows, err := s.store.TherapyProcedures(ctx, homeID)
	if err != nil {
		return domain.TherapyBase{}, err
	}
	procedures := make([]domain.TherapyProcedure, 0, len(rows))
	for _, r := range rows {
		procedures = append(procedures, domain.TherapyProcedure{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Image:       domain.ImageRef{BaseURL: r.ImageBaseURL, Path: r.ImagePath}.URL(),
		})
	}
	profiles, err := s.store.TherapyProfiles(ctx, homeID)
	if err != nil {
		return domain.TherapyBase{}, err
	}
	return domain.TherapyBase{Procedures: procedures, Profiles: orEmpty(profiles)}, nil
}
