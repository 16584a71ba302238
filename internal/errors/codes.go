// Package errors provides structured error handling for the game engine.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Illegal action errors: the action exists but the session state or
	// acting player does not allow it right now.
	CodeNotYourTurn        Code = "ACTION_NOT_YOUR_TURN"
	CodeWrongPhase         Code = "ACTION_WRONG_PHASE"
	CodeAlreadyRolled      Code = "ACTION_ALREADY_ROLLED"
	CodeRollRequired       Code = "ACTION_ROLL_REQUIRED"
	CodeNegotiationActive  Code = "ACTION_NEGOTIATION_ACTIVE"
	CodeNoNegotiation      Code = "ACTION_NO_NEGOTIATION"
	CodePurchasePending    Code = "ACTION_PURCHASE_PENDING"
	CodeNoPurchasePending  Code = "ACTION_NO_PURCHASE_PENDING"
	CodeExtensionUsed      Code = "ACTION_TURN_EXTENSION_USED"
	CodeTimerInactive      Code = "ACTION_TURN_TIMER_INACTIVE"
	CodeNotTradeParty      Code = "ACTION_NOT_TRADE_PARTY"
	CodeTradeAwaitsOther   Code = "ACTION_TRADE_AWAITS_OTHER_PARTY"
	CodeNotEligibleBidder  Code = "ACTION_NOT_ELIGIBLE_BIDDER"
	CodeAlreadyPassed      Code = "ACTION_ALREADY_PASSED"
	CodeNotDebtor          Code = "ACTION_NOT_DEBTOR"
	CodeNotInJail          Code = "ACTION_NOT_IN_JAIL"
	CodePlayerBankrupt     Code = "ACTION_PLAYER_BANKRUPT"

	// Funds errors.
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"

	// Invalid target errors: the action names an entity it cannot apply to.
	CodeSelfTrade        Code = "TARGET_SELF_TRADE"
	CodeSpaceNotProperty Code = "TARGET_SPACE_NOT_PROPERTY"
	CodeSpaceNotOwned    Code = "TARGET_SPACE_NOT_OWNED"
	CodeSpaceOwned       Code = "TARGET_SPACE_ALREADY_OWNED"
	CodeSpaceMortgaged   Code = "TARGET_SPACE_MORTGAGED"
	CodeSpaceNotMortgaged Code = "TARGET_SPACE_NOT_MORTGAGED"
	CodeNoMonopoly       Code = "TARGET_NO_MONOPOLY"
	CodeUnevenBuild      Code = "TARGET_UNEVEN_BUILD"
	CodeBuildLimit       Code = "TARGET_BUILD_LIMIT"
	CodeNoBuildings      Code = "TARGET_NO_BUILDINGS"
	CodeBidTooLow        Code = "TARGET_BID_TOO_LOW"
	CodeNoJailCard       Code = "TARGET_NO_JAIL_CARD"
	CodeInvalidAmount    Code = "TARGET_INVALID_AMOUNT"
	CodeUnknownCosmetic  Code = "TARGET_UNKNOWN_COSMETIC"

	// Lobby errors.
	CodeSessionFull    Code = "SESSION_FULL"
	CodeSessionStarted Code = "SESSION_ALREADY_STARTED"
	CodeNotHost        Code = "SESSION_NOT_HOST"
	CodeTooFewPlayers  Code = "SESSION_TOO_FEW_PLAYERS"

	// Lookup errors.
	CodeNotFound       Code = "NOT_FOUND"
	CodePlayerNotFound Code = "PLAYER_NOT_FOUND"
	CodeSpaceNotFound  Code = "SPACE_NOT_FOUND"

	// Transport errors.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnknownAction   Code = "UNKNOWN_ACTION"
)

// HTTPStatus maps domain codes to HTTP status codes for the transport layer.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - the action names an invalid target or amount
	case CodeSelfTrade,
		CodeSpaceNotProperty,
		CodeSpaceNotOwned,
		CodeSpaceOwned,
		CodeSpaceMortgaged,
		CodeSpaceNotMortgaged,
		CodeNoMonopoly,
		CodeUnevenBuild,
		CodeBuildLimit,
		CodeNoBuildings,
		CodeBidTooLow,
		CodeNoJailCard,
		CodeInvalidAmount,
		CodeUnknownCosmetic,
		CodeInvalidArgument,
		CodeUnknownAction:
		return http.StatusBadRequest

	// Conflict - state does not allow the action right now
	case CodeNotYourTurn,
		CodeWrongPhase,
		CodeAlreadyRolled,
		CodeRollRequired,
		CodeNegotiationActive,
		CodeNoNegotiation,
		CodePurchasePending,
		CodeNoPurchasePending,
		CodeExtensionUsed,
		CodeTimerInactive,
		CodeNotTradeParty,
		CodeTradeAwaitsOther,
		CodeNotEligibleBidder,
		CodeAlreadyPassed,
		CodeNotDebtor,
		CodeNotInJail,
		CodePlayerBankrupt,
		CodeInsufficientFunds,
		CodeSessionFull,
		CodeSessionStarted,
		CodeNotHost,
		CodeTooFewPlayers:
		return http.StatusConflict

	// Not found
	case CodeNotFound,
		CodePlayerNotFound,
		CodeSpaceNotFound:
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// IsIllegalAction reports whether the code describes a state-mismatched
// action that was rejected without mutation.
func (c Code) IsIllegalAction() bool {
	return c.HTTPStatus() == http.StatusConflict && c != CodeInsufficientFunds
}
