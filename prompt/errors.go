// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"fmt"
)

// InvalidArgumentError is returned when a caller-supplied prompt input violates a precondition.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid prompt argument %s: %s", e.Field, e.Reason)
}
