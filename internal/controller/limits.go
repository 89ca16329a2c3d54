// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package controller implements the document and chat lifecycle rules.
package controller

import "context"

// =============================================================================
// LIMITS SYNC
// =============================================================================

// SyncLimits pulls the authoritative question counter from the backend
// and overwrites the local one. The server's numbers always win; any
// optimistic local increment is replaced wholesale. Failures are
// swallowed so a dead limits endpoint can never disturb the chat: the
// local counter simply keeps counting until a later sync lands.
//
// Called after sign-in and after every answered question.
func (c *Controller) SyncLimits(ctx context.Context) {
	quota, err := c.backend.Limits(ctx)
	if err != nil || quota == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.quota = *quota
}
