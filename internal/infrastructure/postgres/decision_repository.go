package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nexuscommerce/decision-service/internal/domain/model"
	"github.com/nexuscommerce/decision-service/internal/domain/port"
	"github.com/nexuscommerce/decision-service/internal/domain/valueobject"
)

// Annotation kinds stored in the decision_annotations child table. Flags,
// actions, conditions and the escalation path are all ordered string lists;
// they share one table keyed by kind and position.
const (
	annotationFlag       = "flag"
	annotationAction     = "required_action"
	annotationCondition  = "condition"
	annotationEscalation = "escalation"
)

// DecisionRepository implements port.DecisionRepository using PostgreSQL.
type DecisionRepository struct {
	pool *pgxpool.Pool
}

// NewDecisionRepository creates a new PostgreSQL-backed decision repository.
func NewDecisionRepository(pool *pgxpool.Pool) *DecisionRepository {
	return &DecisionRepository{pool: pool}
}

// Save persists an order decision and its annotations.
func (r *DecisionRepository) Save(ctx context.Context, decision *model.OrderDecision) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Upsert the decision.
	query := `
		INSERT INTO order_decisions (
			id, tenant_id, order_id, customer_id,
			order_total, currency,
			risk_score, risk_level, recommendation,
			approval_status, approver_level, reason,
			decided_at, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (tenant_id, order_id) DO UPDATE SET
			risk_score = EXCLUDED.risk_score,
			risk_level = EXCLUDED.risk_level,
			recommendation = EXCLUDED.recommendation,
			approval_status = EXCLUDED.approval_status,
			approver_level = EXCLUDED.approver_level,
			reason = EXCLUDED.reason,
			decided_at = EXCLUDED.decided_at,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`

	_, err = tx.Exec(ctx, query,
		decision.ID(),
		decision.TenantID(),
		decision.OrderID(),
		decision.CustomerID(),
		decision.OrderTotal(),
		decision.Currency(),
		decision.RiskScore(),
		decision.RiskLevel().String(),
		decision.Recommendation().String(),
		decision.ApprovalStatus().String(),
		decision.ApproverLevel(),
		decision.Reason(),
		nullableTime(decision.DecidedAt()),
		decision.Version(),
		decision.CreatedAt(),
		decision.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save decision: %w", err)
	}

	// Delete existing annotations and insert fresh ones.
	_, err = tx.Exec(ctx, `DELETE FROM decision_annotations WHERE decision_id = $1`, decision.ID())
	if err != nil {
		return fmt.Errorf("failed to delete old annotations: %w", err)
	}

	annotations := map[string][]string{
		annotationFlag:       decision.Flags(),
		annotationAction:     decision.RequiredActions(),
		annotationCondition:  decision.Conditions(),
		annotationEscalation: decision.EscalationPath(),
	}
	for kind, values := range annotations {
		for position, value := range values {
			_, err = tx.Exec(ctx,
				`INSERT INTO decision_annotations (decision_id, tenant_id, kind, position, value) VALUES ($1, $2, $3, $4, $5)`,
				decision.ID(), decision.TenantID(), kind, position, value,
			)
			if err != nil {
				return fmt.Errorf("failed to save annotation: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// FindByID retrieves a decision by its unique identifier.
func (r *DecisionRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.OrderDecision, error) {
	query := selectDecision + ` WHERE tenant_id = $1 AND id = $2`
	return r.scanDecision(ctx, r.pool.QueryRow(ctx, query, tenantID, id))
}

// FindByOrderID retrieves a decision by the order it was made for.
func (r *DecisionRepository) FindByOrderID(ctx context.Context, tenantID, orderID uuid.UUID) (*model.OrderDecision, error) {
	query := selectDecision + ` WHERE tenant_id = $1 AND order_id = $2`
	return r.scanDecision(ctx, r.pool.QueryRow(ctx, query, tenantID, orderID))
}

const selectDecision = `
	SELECT id, tenant_id, order_id, customer_id,
		order_total, currency,
		risk_score, risk_level, recommendation,
		approval_status, approver_level, reason,
		decided_at, version, created_at, updated_at
	FROM order_decisions`

func (r *DecisionRepository) scanDecision(ctx context.Context, row pgx.Row) (*model.OrderDecision, error) {
	var (
		id                uuid.UUID
		tenantID          uuid.UUID
		orderID           uuid.UUID
		customerID        uuid.UUID
		orderTotal        decimal.Decimal
		currency          string
		riskScore         int
		riskLevelStr      string
		recommendationStr string
		statusStr         string
		approverLevel     string
		reason            string
		decidedAt         *time.Time
		version           int
		createdAt         time.Time
		updatedAt         time.Time
	)

	err := row.Scan(
		&id, &tenantID, &orderID, &customerID,
		&orderTotal, &currency,
		&riskScore, &riskLevelStr, &recommendationStr,
		&statusStr, &approverLevel, &reason,
		&decidedAt, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrDecisionNotFound
		}
		return nil, fmt.Errorf("failed to scan decision: %w", err)
	}

	riskLevel, err := valueobject.RiskLevelFromString(riskLevelStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse risk level: %w", err)
	}

	recommendation, err := valueobject.RecommendationFromString(recommendationStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recommendation: %w", err)
	}

	status, err := valueobject.ApprovalStatusFromString(statusStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse approval status: %w", err)
	}

	annotations, err := r.loadAnnotations(ctx, id)
	if err != nil {
		return nil, err
	}

	var decidedAtVal time.Time
	if decidedAt != nil {
		decidedAtVal = *decidedAt
	}

	return model.Reconstruct(
		id, tenantID, orderID, customerID,
		orderTotal, currency,
		riskScore, riskLevel, recommendation,
		annotations[annotationFlag], annotations[annotationAction],
		status, approverLevel, reason,
		annotations[annotationCondition], annotations[annotationEscalation],
		decidedAtVal, version, createdAt, updatedAt,
	), nil
}

func (r *DecisionRepository) loadAnnotations(ctx context.Context, decisionID uuid.UUID) (map[string][]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT kind, value FROM decision_annotations WHERE decision_id = $1 ORDER BY kind, position`,
		decisionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query annotations: %w", err)
	}
	defer rows.Close()

	annotations := map[string][]string{
		annotationFlag:       {},
		annotationAction:     {},
		annotationCondition:  {},
		annotationEscalation: {},
	}
	for rows.Next() {
		var kind, value string
		if err := rows.Scan(&kind, &value); err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}
		annotations[kind] = append(annotations[kind], value)
	}

	return annotations, rows.Err()
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
