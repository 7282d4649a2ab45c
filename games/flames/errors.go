/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package flames

import "errors"

var (
	ErrEmptyName        = errors.New("name must not be empty")
	ErrNamesCancelOut   = errors.New("names cancel out completely")
	ErrNonPositiveCount = errors.New("count must be a positive integer")
	ErrNoCategories     = errors.New("category sequence must not be empty")
	ErrStartOutOfRange  = errors.New("start index out of range")
)
