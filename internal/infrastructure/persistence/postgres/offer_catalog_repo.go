package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bibbank/consolidation-service/internal/domain/model"
	"github.com/bibbank/consolidation-service/internal/domain/valueobject"
)

// OfferCatalogRepo loads the offer catalog from PostgreSQL. The catalog is
// read once at startup; requests never touch the database.
type OfferCatalogRepo struct {
	pool     *pgxpool.Pool
	scoreMin int
	scoreMax int
}

// NewOfferCatalogRepo creates a repository that validates loaded offers
// against the given credit-score bounds.
func NewOfferCatalogRepo(pool *pgxpool.Pool, scoreMin, scoreMax int) *OfferCatalogRepo {
	return &OfferCatalogRepo{pool: pool, scoreMin: scoreMin, scoreMax: scoreMax}
}

// LoadCatalog reads all offers and their ordered rule rows, then builds a
// validated catalog. A broken rule set fails the load, so no customer is
// ever evaluated against an inconsistent offer.
func (r *OfferCatalogRepo) LoadCatalog(ctx context.Context) (model.Catalog, error) {
	offers, err := r.loadOffers(ctx)
	if err != nil {
		return model.Catalog{}, err
	}

	for i := range offers {
		rules, err := r.loadRules(ctx, offers[i].ID)
		if err != nil {
			return model.Catalog{}, err
		}
		offers[i].Rules = rules
	}

	catalog, err := model.NewCatalog(offers, r.scoreMin, r.scoreMax)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("build catalog: %w", err)
	}
	return catalog, nil
}

func (r *OfferCatalogRepo) loadOffers(ctx context.Context) ([]model.Offer, error) {
	query := `
		SELECT id, annual_rate, term_months, priority
		FROM offers
		ORDER BY priority, id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}
	defer rows.Close()

	var offers []model.Offer
	for rows.Next() {
		var (
			o    model.Offer
			rate decimal.Decimal
		)
		if err := rows.Scan(&o.ID, &rate, &o.TermMonths, &o.Priority); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		o.AnnualRate = rate
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate offers: %w", err)
	}
	return offers, nil
}

func (r *OfferCatalogRepo) loadRules(ctx context.Context, offerID string) ([]model.Rule, error) {
	query := `
		SELECT kind, ceiling, min_score, max_score, allowed_types, max_delinquency
		FROM offer_rules
		WHERE offer_id = $1
		ORDER BY position
	`
	rows, err := r.pool.Query(ctx, query, offerID)
	if err != nil {
		return nil, fmt.Errorf("query rules for offer %s: %w", offerID, err)
	}
	defer rows.Close()

	var rules []model.Rule
	for rows.Next() {
		var (
			kind           string
			ceiling        *decimal.Decimal
			minScore       *int
			maxScore       *int
			allowedTypes   []string
			maxDelinquency *string
		)
		if err := rows.Scan(&kind, &ceiling, &minScore, &maxScore, &allowedTypes, &maxDelinquency); err != nil {
			return nil, fmt.Errorf("scan rule for offer %s: %w", offerID, err)
		}

		rule := model.Rule{Kind: valueobject.RuleKind(kind)}
		if ceiling != nil {
			rule.Ceiling = *ceiling
		}
		rule.MinScore = minScore
		rule.MaxScore = maxScore
		for _, t := range allowedTypes {
			rule.AllowedTypes = append(rule.AllowedTypes, valueobject.ProductType(t))
		}
		if maxDelinquency != nil {
			rule.MaxDelinquency = valueobject.Delinquency(*maxDelinquency)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules for offer %s: %w", offerID, err)
	}
	return rules, nil
}
