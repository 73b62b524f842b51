package service

// Assessor is the interface for risk scoring strategies. Both RiskScorer
// (rules only) and the brain override adapter implement this.
type Assessor interface {
	Assess(factors RiskFactors) RiskAssessment
}

// Router is the interface for approval routing strategies.
type Router interface {
	Route(ctx ApprovalContext) ApprovalResult
}
