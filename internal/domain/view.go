package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyView is the denormalized card of a home. It is built once per
// request and never mutated afterwards.
type PropertyView struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	Serial          string             `json:"serial"`
	Address         string             `json:"address"`
	Coords          *Coords            `json:"coords,omitempty"`
	Description     string             `json:"description"`
	RestaurantText  string             `json:"restaurant_text"`
	DistanceToBeach string             `json:"distance_to_beach"`
	RoomsCount      int                `json:"rooms_count"`
	Images          []string           `json:"images"`
	Treatment       bool               `json:"treatment"`
	CreditCards     []CreditCard       `json:"credit_cards"`
	Rules           Rules              `json:"rules"`
	Documents       RequiredDocuments  `json:"documents"`
	Facilities      Facilities         `json:"facilities"`
	PaidFacilities  []PaidFacility     `json:"paid_facilities"`
	HasFreeInternet bool               `json:"has_free_internet"`
	Parking         *Parking           `json:"parking,omitempty"`
	HasRestaurant   bool               `json:"has_restaurant"`
	Grade           GradeSummary       `json:"grade"`
	Therapy         TherapyBase        `json:"therapy"`
	Programs        []TreatmentProgram `json:"programs"`
	Branches        []Branch           `json:"branches"`
	Weather         []WeatherRecord    `json:"weather"`
	Rooms           []Room             `json:"rooms"`
	MaxOccupancy    int                `json:"max_occupancy"`
	MinPrice        decimal.Decimal    `json:"min_price"`
}

type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Parking is absent from the view when the home has none.
type Parking struct {
	Free  bool            `json:"free"`
	Price decimal.Decimal `json:"price"`
}

type Rules struct {
	CheckInFrom  string         `json:"check_in_from"`
	CheckInTo    string         `json:"check_in_to"`
	CheckOutFrom string         `json:"check_out_from"`
	CheckOutTo   string         `json:"check_out_to"`
	Children     []ChildrenRule `json:"children"`
}

type Facilities struct {
	Categories []FacilityCategory `json:"categories"`
	Important  []Facility         `json:"important"`
}

type FacilityCategory struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Facilities []Facility `json:"facilities"`
}

type Facility struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Icon string    `json:"icon"`
}

type PaidFacility struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Short       string          `json:"short"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
}

type ChildrenRule struct {
	AgeFrom        int             `json:"age_from"`
	AgeTo          int             `json:"age_to"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	DiscountUnit   string          `json:"discount_unit"`
}

type CreditCard struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type RequiredDocuments struct {
	AdultForLiving    []string `json:"adult_for_living"`
	AdultForTreatment []string `json:"adult_for_treatment"`
	ChildForTreatment []string `json:"child_for_treatment"`
	ChildForLiving    []string `json:"child_for_living"`
}

// Branch deliberately carries no coordinates.
type Branch struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type WeatherRecord struct {
	Month string      `json:"month"`
	Air   Temperature `json:"air"`
	Water Temperature `json:"water"`
}

type Temperature struct {
	Min decimal.Decimal `json:"min"`
	Avg decimal.Decimal `json:"avg"`
	Max decimal.Decimal `json:"max"`
}

type TreatmentProgram struct {
	ID                uuid.UUID       `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	MinStay           int             `json:"min_stay"`
	MinAge            int             `json:"min_age"`
	MaxAge            int             `json:"max_age"`
	NeedHealthCard    bool            `json:"need_health_card"`
	Purpose           string          `json:"purpose"`
	Audience          string          `json:"audience"`
	Goal              string          `json:"goal"`
	Contraindications string          `json:"contraindications"`
	RecommendedDays   int             `json:"recommended_days"`
	MaxDays           int             `json:"max_days"`
	AnalysisAge       int             `json:"analysis_age"`
	MinPregnancyWeek  int             `json:"min_pregnancy_week"`
	Price             decimal.Decimal `json:"price"`
	Images            []string        `json:"images"`
	MainImage         string          `json:"main_image"`
}

type TherapyBase struct {
	Procedures []TherapyProcedure `json:"procedures"`
	Profiles   []TherapyProfile   `json:"profiles"`
}

type TherapyProcedure struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
}

type TherapyProfile struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Room and Tariff come from the booking provider and are consumed read-only.
type Room struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Occupancy int       `json:"occupancy"`
	Tariffs   []Tariff  `json:"tariffs"`
}

type Tariff struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// GradeSummary is merged into the view verbatim.
type GradeSummary struct {
	Score   decimal.Decimal `json:"score"`
	Reviews int             `json:"reviews"`
}

// DisplaySize is the canonical width tag used for card images.
const DisplaySize = "735"

type ImageRef struct {
	BaseURL string
	Path    string
}

func (i ImageRef) URL() string {
	return strings.TrimRight(i.BaseURL, "/") + "/" + strings.TrimLeft(i.Path, "/")
}

// Sized returns the URL of the pre-rendered copy for the given width tag.
func (i ImageRef) Sized(size string) string {
	return strings.TrimRight(i.BaseURL, "/") + "/" + size + "/" + strings.TrimLeft(i.Path, "/")
}
