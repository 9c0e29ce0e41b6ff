// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	a := GenerateRequestID()
	b := GenerateRequestID()

	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("GenerateRequestID() = %q, not a UUID: %v", a, err)
	}
	if a == b {
		t.Error("expected unique request IDs")
	}
}

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("empty context request ID = %q, want empty", got)
	}

	ctx = ContextWithRequestID(ctx, "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("RequestIDFromContext() = %q, want req-123", got)
	}

	fresh := RequestIDFromContext(ContextWithNewRequestID(context.Background()))
	if fresh == "" {
		t.Error("ContextWithNewRequestID should set an ID")
	}
}

func TestCtx_AddsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-abc")

	Ctx(ctx).Info().Msg("served")

	output := buf.String()
	if !strings.Contains(output, `"request_id":"req-abc"`) {
		t.Errorf("expected request_id field: %s", output)
	}
}

func TestCtxWith_ExtraFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))

	logger := CtxWith(ctx).Str("restaurant_id", "r9").Logger()
	logger.Info().Msg("refreshed")

	output := buf.String()
	if !strings.Contains(output, `"restaurant_id":"r9"`) {
		t.Errorf("expected restaurant_id field: %s", output)
	}
	if strings.Contains(output, "request_id") {
		t.Errorf("no request ID in context, none expected: %s", output)
	}
}

func TestLoggerFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	logger := LoggerFromContext(context.Background())
	if logger.GetLevel() != Logger().GetLevel() {
		t.Error("expected the global logger when none is stored")
	}
}
