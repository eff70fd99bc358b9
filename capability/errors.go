// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package capability

import (
	"fmt"
)

// UnregisteredBackendError is returned when no backend is registered for a [Key].
type UnregisteredBackendError struct {
	Key Key
}

func (e *UnregisteredBackendError) Error() string {
	return fmt.Sprintf("no %s registered for service %q and backend %q", e.Key.Domain, e.Key.Service, e.Key.Backend)
}
