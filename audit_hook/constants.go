package audithook

// Action constants for audit events.
const (
	// Token movement actions
	ActionTransfer   = "token.transfer"
	ActionBurn       = "token.burn"
	ActionDistribute = "token.distribute"
	ActionSeed       = "token.seed"

	// Supply actions
	ActionDenomination = "supply.denominated"

	// Administration actions
	ActionRoleGranted     = "role.granted"
	ActionRoleRevoked     = "role.revoked"
	ActionPaused          = "ledger.paused"
	ActionUnpaused        = "ledger.unpaused"
	ActionExemptionSet    = "exemption.granted"
	ActionExemptionLifted = "exemption.revoked"
	ActionFeeChanged      = "fee.changed"
	ActionRescue          = "funds.rescued"
)

// Resource constants for audit events.
const (
	ResourceAccount = "account"
	ResourceSupply  = "supply"
	ResourceRole    = "role"
	ResourceLedger  = "ledger"
	ResourceFee     = "fee"
)

// Category constants for audit events.
const (
	CategoryMovement = "movement"
	CategorySupply   = "supply"
	CategoryAccess   = "access"
	CategoryConfig   = "config"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
