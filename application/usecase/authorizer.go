package usecase

import (
	"fmt"

	"github.com/learnhub/learnhub/application/port/outbound"
	domainerr "github.com/learnhub/learnhub/domain/error"
	"github.com/learnhub/learnhub/domain/valueobject"
)

// Authorize checks the role already present in the identity context. A nil identity means the
// access gate did not run and is refused.
func Authorize(identity *outbound.TokenClaims, required valueobject.Role) error {
	if identity == nil {
		return domainerr.ErrForbidden("identity context missing")
	}
	if !identity.Role.Satisfies(required) {
		return domainerr.ErrForbidden(fmt.Sprintf("role %s does not satisfy %s", identity.Role, required))
	}
	return nil
}
