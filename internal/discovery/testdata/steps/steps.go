package steps

import "github.com/ecetin/boza/pkg/engine"

// @given `the user has {int} credits`
// @tags smoke billing
func UserHasCredits(count int) {}

// @when `the user buys {string}`
func UserBuys(item string) {}

// @then
func TheOrderIsConfirmed() {}

// @given `a cart`
// @given `an empty cart`
func Cart() {}

// @then `the list has {int} items`
func ListHas[T any](n int) {}

func Defaults() *engine.Config {
	return &engine.Config{FailFast: true}
}

func Lifecycle() *engine.Hooks {
	return &engine.Hooks{}
}

func helper() {}
