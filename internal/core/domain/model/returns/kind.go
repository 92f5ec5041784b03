package returns

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Kind distinguishes a refund (Return) from a swap for a new unit (Replace).
type Kind int

const (
	KindUnknown Kind = iota
	KindReturn
	KindReplace
)

var kindNames = map[Kind]string{
	KindReturn:  "return",
	KindReplace: "replace",
}

func ParseKind(s string) (Kind, error) {
	for kind, name := range kindNames {
		if name == s {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid request kind", s))
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k Kind) Validate() error {
	if _, ok := kindNames[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid request kind", k))
	}
	return nil
}
