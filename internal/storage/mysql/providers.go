package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"home_card/internal/domain"
)

// Images implements domain.Gallery over the photo tables.
func (r *Repo) Images(ctx context.Context, entityID uuid.UUID) ([]domain.ImageRef, error) {
	var out []domain.ImageRef
	err := r.query(ctx, "images", imagesSQL, func(rows *sql.Rows) error {
		var i domain.ImageRef
		if err := rows.Scan(&i.BaseURL, &i.Path); err != nil {
			return err
		}
		out = append(out, i)
		return nil
	}, entityID.String())
	return out, err
}

// Grade implements domain.GradeProvider from live opinions.
func (r *Repo) Grade(ctx context.Context, homeID uuid.UUID) (domain.GradeSummary, error) {
	var g domain.GradeSummary
	if err := r.db.QueryRowContext(ctx, gradeSQL, homeID.String()).Scan(&g.Score, &g.Reviews); err != nil {
		return domain.GradeSummary{}, unavailable("grade", err)
	}
	return g, nil
}

func (r *Repo) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRowContext(ctx, getProductSQL, id.String()).Scan(&p.ID, &p.PriceGroupID, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, unavailable("product", err)
	}
	return p, nil
}

func (r *Repo) GuestPrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := r.db.QueryRowContext(ctx, guestPriceSQL, productID.String()).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Decimal{}, domain.ErrNotFound
	}
	if err != nil {
		return decimal.Decimal{}, unavailable("guest price", err)
	}
	return price, nil
}

func (r *Repo) PartnerDiscount(ctx context.Context, priceGroupID, partnerID uuid.UUID) (domain.DiscountRecord, bool, error) {
	d := domain.DiscountRecord{PriceGroupID: priceGroupID, PartnerID: partnerID}
	err := r.db.QueryRowContext(ctx, partnerDiscountSQL, priceGroupID.String(), partnerID.String()).Scan(&d.Percent)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DiscountRecord{}, false, nil
	}
	if err != nil {
		return domain.DiscountRecord{}, false, unavailable("partner discount", err)
	}
	return d, true, nil
}

// ViewerBySession maps a session to its viewer. Unknown or expired sessions
// are guests.
func (r *Repo) ViewerBySession(ctx context.Context, sessionID string) (domain.Viewer, error) {
	var (
		partnerID uuid.NullUUID
		percent   decimal.NullDecimal
	)
	err := r.db.QueryRowContext(ctx, viewerBySessionSQL, sessionID).Scan(&partnerID, &percent)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Guest{}, nil
	}
	if err != nil {
		return nil, unavailable("viewer", err)
	}
	if !partnerID.Valid {
		return domain.Member{SessionKey: sessionID}, nil
	}
	if !percent.Valid {
		return nil, fmt.Errorf("partner %s has no price type: %w", partnerID.UUID, domain.ErrDataIntegrity)
	}
	return domain.PartnerMember{
		SessionKey: sessionID,
		Partner:    domain.Partner{ID: partnerID.UUID, PriceTypePercent: percent.Decimal},
	}, nil
}
