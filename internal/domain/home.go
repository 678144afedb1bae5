package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NeverDeleted is the delete_stamp carried by live rows.
var NeverDeleted = time.Time{}

// Live reports whether a row with the given delete stamp is visible.
func Live(deleteStamp time.Time) bool { return deleteStamp.Equal(NeverDeleted) }

// Home is the venue row as loaded for a single request.
type Home struct {
	ID            uuid.UUID
	Name          string
	Serial        string
	Slug          string
	CityID        uuid.UUID
	Lat, Lon      *float64
	Address       string
	Description   string
	Restaurant    string
	BeachDistance int // metres
	RoomsCount    int
	CheckInFrom   string // HH:MM:SS
	CheckInTo     string
	CheckOutFrom  string
	CheckOutTo    string
	InternetPrice *decimal.Decimal // nil when the home has no internet info
	HasParking    bool
	ParkingPrice  *decimal.Decimal // nil or zero means free parking
	DeleteStamp   time.Time
}

type FacilityRow struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Icon        string
	Important   bool
	DeleteStamp time.Time
}

type FacilityCategoryRow struct {
	ID          uuid.UUID
	Name        string
	DeleteStamp time.Time
}

type ChildrenRuleRow struct {
	AgeFrom         int
	AgeTo           int
	DiscountAmount  decimal.Decimal
	DiscountMeasure int
	DeleteStamp     time.Time
}

type TemperatureRow struct {
	Month                        int
	AirMin, AirAvg, AirMax       decimal.Decimal
	WaterMin, WaterAvg, WaterMax decimal.Decimal
	UpdateStamp                  time.Time
	DeleteStamp                  time.Time
}

type PaidFacilityRow struct {
	ID          uuid.UUID
	Name        string
	Short       string
	Description string
	PriceAmount decimal.Decimal
	PriceUnit   string
	DeleteStamp time.Time
}

type ProgramRow struct {
	ID                     uuid.UUID
	NamePublic             string
	Description            string
	MinBookingDays         int
	RecommendedBookingDays int
	MaxBookingDays         int
	MinAge, MaxAge         int
	RequireHealthCard      bool
	RequireAnalysisAge     int
	MinPregnantStage       int
	WhatGivesProgram       string
	Whom                   string
	Goal                   string
	Contraindications      string
	Price                  decimal.Decimal
	DeleteStamp            time.Time
}

type TherapyRow struct {
	ID           uuid.UUID
	Name         string
	Description  string
	ImageBaseURL string
	ImagePath    string
	DeleteStamp  time.Time
}

// DocumentKind selects one of the four required-document lists.
type DocumentKind int

const (
	AdultForLiving DocumentKind = iota
	AdultForTreatment
	ChildForTreatment
	ChildForLiving
)

func (k DocumentKind) String() string {
	switch k {
	case AdultForLiving:
		return "adult_living"
	case AdultForTreatment:
		return "adult_treatment"
	case ChildForTreatment:
		return "child_treatment"
	case ChildForLiving:
		return "child_living"
	}
	return "unknown"
}
