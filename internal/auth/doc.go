// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the HTTP client for the hosted identity provider.
//
// The provider speaks the GoTrue REST dialect: password and refresh-token
// grants, sign-up with optional email verification, provider-hosted OAuth
// authorize URLs, and bearer-token user/logout endpoints. This package
// implements only the narrow Provider contract the application needs —
// it is deliberately not a full SDK.
//
// # Usage
//
//	client := auth.NewClient(auth.ClientConfig{
//	    BaseURL: cfg.Auth.URL,
//	    AnonKey: cfg.Auth.AnonKey,
//	})
//	sess, err := client.SignInWithPassword(ctx, email, password)
//
// Errors carry the provider's message verbatim so the UI can surface it
// unchanged.
package auth
