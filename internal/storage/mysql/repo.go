package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"home_card/internal/domain"
)

// unavailable marks a driver failure so callers can match
// domain.ErrStoreUnavailable while keeping the cause.
func unavailable(op string, err error) error {
	return fmt.Errorf("mysql %s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

// inList renders "(?,?,...)" for n placeholders.
func inList(n int) string {
	return "(" + strings.TrimSuffix(strings.Repeat("?,", n), ",") + ")"
}

func ids(in []uuid.UUID) []any {
	out := make([]any, 0, len(in))
	for _, id := range in {
		out = append(out, id.String())
	}
	return out
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// query runs q and hands every row to scan, wrapping driver failures.
func (r *Repo) query(ctx context.Context, op, q string, scan func(*sql.Rows) error, args ...any) error {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return unavailable(op, err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return unavailable(op, err)
		}
	}
	if err := rows.Err(); err != nil {
		return unavailable(op, err)
	}
	return nil
}

func (r *Repo) GetHome(ctx context.Context, id uuid.UUID) (domain.Home, error) {
	return r.getHome(ctx, "home", getHomeSQL, id.String())
}

func (r *Repo) GetHomeBySerial(ctx context.Context, serial string) (domain.Home, error) {
	return r.getHome(ctx, "home by serial", getHomeBySerialSQL, serial)
}

func (r *Repo) GetHomeBySlug(ctx context.Context, slug string) (domain.Home, error) {
	return r.getHome(ctx, "home by slug", getHomeBySlugSQL, slug)
}

func (r *Repo) getHome(ctx context.Context, op, q string, arg any) (domain.Home, error) {
	var (
		h                 domain.Home
		slug              sql.NullString
		lat, lon          sql.NullFloat64
		addr, desc, rest  sql.NullString
		inFrom, inTo      sql.NullString
		outFrom, outTo    sql.NullString
		beach, roomsCount sql.NullInt64
		internet, parking decimal.NullDecimal
	)
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&h.ID,
		&h.Name,
		&h.Serial,
		&slug,
		&h.CityID,
		&lat, &lon,
		&addr, &desc, &rest,
		&beach,
		&roomsCount,
		&inFrom, &inTo,
		&outFrom, &outTo,
		&internet,
		&h.HasParking,
		&parking,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Home{}, fmt.Errorf("home %v: %w", arg, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Home{}, unavailable(op, err)
	}

	h.Slug = slug.String
	if lat.Valid && lon.Valid {
		la, lo := lat.Float64, lon.Float64
		h.Lat, h.Lon = &la, &lo
	}
	h.Address = addr.String
	h.Description = desc.String
	h.Restaurant = rest.String
	h.BeachDistance = int(beach.Int64)
	h.RoomsCount = int(roomsCount.Int64)
	h.CheckInFrom, h.CheckInTo = inFrom.String, inTo.String
	h.CheckOutFrom, h.CheckOutTo = outFrom.String, outTo.String
	if internet.Valid {
		p := internet.Decimal
		h.InternetPrice = &p
	}
	if parking.Valid {
		p := parking.Decimal
		h.ParkingPrice = &p
	}
	h.DeleteStamp = domain.NeverDeleted
	return h, nil
}

func (r *Repo) LinkedFacilities(ctx context.Context, homeID uuid.UUID) ([]domain.FacilityRow, error) {
	var out []domain.FacilityRow
	err := r.query(ctx, "facilities", linkedFacilitiesSQL, func(rows *sql.Rows) error {
		var f domain.FacilityRow
		var icon sql.NullString
		if err := rows.Scan(&f.ID, &f.CategoryID, &f.Name, &icon, &f.Important); err != nil {
			return err
		}
		f.Icon = icon.String
		out = append(out, f)
		return nil
	}, homeID.String())
	return out, err
}

func (r *Repo) FacilityCategories(ctx context.Context, catIDs []uuid.UUID) ([]domain.FacilityCategoryRow, error) {
	if len(catIDs) == 0 {
		return nil, nil
	}
	var out []domain.FacilityCategoryRow
	q := facilityCategoriesSQL + inList(len(catIDs)) + facilityCategoriesOrder
	err := r.query(ctx, "facility categories", q, func(rows *sql.Rows) error {
		var c domain.FacilityCategoryRow
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	}, ids(catIDs)...)
	return out, err
}

func (r *Repo) CountLinkedFacilitiesLike(ctx context.Context, homeID uuid.UUID, namePart string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countLinkedFacilitiesLikeSQL, homeID.String(), namePart).Scan(&n); err != nil {
		return 0, unavailable("facility count", err)
	}
	return n, nil
}

func (r *Repo) AcceptedCreditCards(ctx context.Context, homeID uuid.UUID) ([]domain.CreditCard, error) {
	var out []domain.CreditCard
	err := r.query(ctx, "credit cards", acceptedCreditCardsSQL, func(rows *sql.Rows) error {
		var c domain.CreditCard
		var icon sql.NullString
		if err := rows.Scan(&c.Name, &icon); err != nil {
			return err
		}
		c.Icon = icon.String
		out = append(out, c)
		return nil
	}, homeID.String())
	return out, err
}

// documentFlags selects the link rows of each required-document list.
var documentFlags = map[domain.DocumentKind]string{
	domain.AdultForLiving:    "l.adult = 1 AND l.necessary_for_living = 1",
	domain.AdultForTreatment: "l.adult = 1 AND l.required_for_treatment = 1",
	domain.ChildForTreatment: "l.child = 1 AND l.required_for_treatment = 1",
	domain.ChildForLiving:    "l.child = 1 AND l.necessary_for_living = 1",
}

func (r *Repo) DocumentNames(ctx context.Context, homeID uuid.UUID, kind domain.DocumentKind) ([]string, error) {
	flags, ok := documentFlags[kind]
	if !ok {
		return nil, fmt.Errorf("document kind %d: %w", kind, domain.ErrDataIntegrity)
	}
	var out []string
	err := r.query(ctx, "documents", fmt.Sprintf(documentNamesSQL, flags), func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		out = append(out, name)
		return nil
	}, homeID.String())
	return out, err
}

func (r *Repo) ChildrenRules(ctx context.Context, homeID uuid.UUID) ([]domain.ChildrenRuleRow, error) {
	var out []domain.ChildrenRuleRow
	err := r.query(ctx, "children rules", childrenRulesSQL, func(rows *sql.Rows) error {
		var c domain.ChildrenRuleRow
		if err := rows.Scan(&c.AgeFrom, &c.AgeTo, &c.DiscountAmount, &c.DiscountMeasure); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	}, homeID.String())
	return out, err
}

func (r *Repo) Branches(ctx context.Context, homeID uuid.UUID) ([]domain.Branch, error) {
	var out []domain.Branch
	err := r.query(ctx, "branches", branchesSQL, func(rows *sql.Rows) error {
		var b domain.Branch
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return err
		}
		out = append(out, b)
		return nil
	}, homeID.String())
	return out, err
}

func (r *Repo) MonthlyTemperatures(ctx context.Context, cityID uuid.UUID) ([]domain.TemperatureRow, error) {
	var out []domain.TemperatureRow
	err := r.query(ctx, "temperatures", monthlyTemperaturesSQL, func(rows *sql.Rows) error {
		var t domain.TemperatureRow
		if err := rows.Scan(
			&t.Month,
			&t.AirMin, &t.AirAvg, &t.AirMax,
			&t.WaterMin, &t.WaterAvg, &t.WaterMax,
			&t.UpdateStamp,
		); err != nil {
			return err
		}
		out = append(out, t)
		return nil
	}, cityID.String())
	return out, err
}

func (r *Repo) PaidFacilities(ctx context.Context, homeID uuid.UUID) ([]domain.PaidFacilityRow, error) {
	var out []domain.PaidFacilityRow
	err := r.query(ctx, "paid facilities", paidFacilitiesSQL, func(rows *sql.Rows) error {
		var p domain.PaidFacilityRow
		var short, desc, unit sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &short, &desc, &p.PriceAmount, &unit); err != nil {
			return err
		}
		p.Short, p.Description, p.PriceUnit = short.String, desc.String, unit.String
		out = append(out, p)
		return nil
	}, homeID.String())
	return out, err
}

func (r *Repo) TreatmentPrograms(ctx context.Context, homeID uuid.UUID) ([]domain.ProgramRow, error) {
	var out []domain.ProgramRow
	err := r.query(ctx, "programs", treatmentProgramsSQL, func(rows *sql.Rows) error {
		var (
			p                          domain.ProgramRow
			desc, gives, whom          sql.NullString
			goal, contraindications    sql.NullString
			analysisAge, pregnantStage sql.NullInt64
		)
		if err := rows.Scan(
			&p.ID,
			&p.NamePublic,
			&desc,
			&p.MinBookingDays,
			&p.RecommendedBookingDays,
			&p.MaxBookingDays,
			&p.MinAge,
			&p.MaxAge,
			&p.RequireHealthCard,
			&analysisAge,
			&pregnantStage,
			&gives,
			&whom,
			&goal,
			&contraindications,
			&p.Price,
		); err != nil {
			return err
		}
		p.Description = desc.String
		p.WhatGivesProgram = gives.String
		p.Whom = whom.String
		p.Goal = goal.String
		p.Contraindications = contraindications.String
		p.RequireAnalysisAge = int(analysisAge.Int64)
		p.MinPregnantStage = int(pregnantStage.Int64)
		out = append(out, p)
		return nil
	}, homeID.String())
	return out, err
}

func (r *Repo) TherapyProcedures(ctx context.Context, homeID uuid.UUID) ([]domain.TherapyRow, error) {
	var out []domain.TherapyRow
	err := r.query(ctx, "therapy procedures", therapyProceduresSQL, func(rows *sql.Rows) error {
		var t domain.TherapyRow
		var desc sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &desc, &t.ImageBaseURL, &t.ImagePath); err != nil {
			return err
		}
		t.Description = desc.String
		out = append(out, t)
		return nil
	}, homeID.String())
	return out, err
}

func (r *Repo) TherapyProfiles(ctx context.Context, homeID uuid.UUID) ([]domain.TherapyProfile, error) {
	var out []domain.TherapyProfile
	err := r.query(ctx, "therapy profiles", therapyProfilesSQL, func(rows *sql.Rows) error {
		var p domain.TherapyProfile
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	}, homeID.String())
	return out, err
}
