// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/rollcall/internal/session"
	"github.com/olegiv/rollcall/internal/testutil"
)

// testSessionContext returns a session manager and a context carrying a
// fresh, loaded session.
func testSessionContext(t *testing.T, db *sql.DB) (*scs.SessionManager, context.Context) {
	t.Helper()

	sm := session.New(db, true)
	t.Cleanup(func() { session.StopCleanup(sm) })

	ctx, err := sm.Load(context.Background(), "")
	require.NoError(t, err)
	return sm, ctx
}

func newAccountTestService(t *testing.T) (*AccountService, *scs.SessionManager, context.Context, *sql.DB) {
	t.Helper()

	db := testutil.TestMemoryDB(t)
	sm, ctx := testSessionContext(t, db)
	return NewAccountService(db, sm), sm, ctx, db
}
