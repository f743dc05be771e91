//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=app
package app

import (
	"context"

	"github.com/ecetin/boza/internal/codegen"
)

type Discoverer interface {
	Discover(context.Context, string) (*codegen.Output, error)
}
