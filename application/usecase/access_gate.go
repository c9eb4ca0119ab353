package usecase

import (
	"fmt"

	"github.com/learnhub/learnhub/application/port/outbound"
	domainerr "github.com/learnhub/learnhub/domain/error"
	"github.com/learnhub/learnhub/domain/valueobject"
)

// GateInput carries the two optional credentials read from the request.
type GateInput struct {
	AccessToken  string
	RefreshToken string
}

// GateOutcome names the transition taken, for logs and metrics.
type GateOutcome string

const (
	OutcomeAdmitted  GateOutcome = "admitted"
	OutcomeRefreshed GateOutcome = "refreshed"
	OutcomeRejected  GateOutcome = "rejected"
)

// GateDecision is the result of one evaluation. Identity is set iff Admit is true.
// Reissued is set when a new access token was minted and must be handed back to the caller.
type GateDecision struct {
	Admit    bool
	Outcome  GateOutcome
	Identity *outbound.TokenClaims
	Reissued *valueobject.IssuedToken
	Err      error
}

// AccessGate decides admission from token contents and the current time only.
type AccessGate struct {
	tokens *SessionIssuer
	codec  outbound.TokenService
}

func NewAccessGate(codec outbound.TokenService) *AccessGate {
	return &AccessGate{
		tokens: NewSessionIssuer(codec),
		codec:  codec,
	}
}

// Evaluate runs the admission state machine:
//
//	no access, no refresh             -> reject
//	no access, refresh                -> repair from refresh
//	access valid                      -> admit
//	access expired, no refresh        -> reject
//	access expired, refresh           -> repair from refresh
//	access invalid for any other kind -> reject
//
// repair verifies the refresh token and mints a new access token; any failure rejects.
func (g *AccessGate) Evaluate(in GateInput) (decision GateDecision) {
	defer func() {
		if r := recover(); r != nil {
			decision = reject(domainerr.ErrMalformedPayload("panic during token evaluation", fmt.Errorf("%v", r)))
		}
	}()

	if in.AccessToken == "" {
		if in.RefreshToken == "" {
			return reject(domainerr.ErrMissingToken("access and refresh"))
		}
		return g.repair(in.RefreshToken)
	}

	claims, err := g.codec.Verify(in.AccessToken, outbound.AccessToken)
	if err == nil {
		return GateDecision{Admit: true, Outcome: OutcomeAdmitted, Identity: claims}
	}
	if domainerr.CodeOf(err) != domainerr.ErrCodeTokenExpired {
		return reject(err)
	}
	if in.RefreshToken == "" {
		return reject(domainerr.ErrMissingToken("refresh"))
	}
	return g.repair(in.RefreshToken)
}

func (g *AccessGate) repair(refreshToken string) GateDecision {
	refreshClaims, err := g.codec.Verify(refreshToken, outbound.RefreshToken)
	if err != nil {
		return reject(err)
	}
	issued, minted, err := g.tokens.Reissue(refreshClaims)
	if err != nil {
		return reject(domainerr.ErrMalformedPayload("refresh claims cannot be re-signed", err))
	}
	return GateDecision{
		Admit:    true,
		Outcome:  OutcomeRefreshed,
		Identity: minted,
		Reissued: issued,
	}
}

func reject(err error) GateDecision {
	return GateDecision{Outcome: OutcomeRejected, Err: err}
}
