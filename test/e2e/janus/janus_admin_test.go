package janus_test

import (
	"testing"

	"github.com/aussiebroadwan/janus/pkg/janussdk"
	"github.com/stretchr/testify/require"
)

func TestAdminLogsAndStats(t *testing.T) {
	client := setupJanusContainer(t, nil)
	ctx := t.Context()

	ana := enrolUser(t, client, "Ana", "ana@example.com")
	ben := enrolUser(t, client, "Ben", "ben@example.com")

	approved := raiseRequest(t, client, ana, "login")
	rejected := raiseRequest(t, client, ben, "payment")
	pending := raiseRequest(t, client, ana, "login")

	_, err := client.Approve(ctx, approved.ID)
	require.NoError(t, err)
	_, err = client.Reject(ctx, rejected.ID)
	require.NoError(t, err)

	logs, err := client.Logs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	require.Equal(t, pending.ID, logs[0].ID, "logs are newest first")
	require.Equal(t, "Ana", logs[0].UserDisplayName)
	require.Equal(t, "ana@example.com", logs[0].UserEmail)

	logs, err = client.Logs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	stats, err := client.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, janussdk.StatsResponse{
		TotalUsers:    2,
		TotalRequests: 3,
		Approved:      1,
		Rejected:      1,
		Pending:       1,
		SuccessRate:   33.3,
	}, *stats)
}
