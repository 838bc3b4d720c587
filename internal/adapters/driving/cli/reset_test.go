package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetCmd_ForceSkipsConfirmation(t *testing.T) {
	admin := &mockAdminService{}
	cleanup := setupTestServices(&mockQueryService{}, &mockIngestService{}, admin)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"reset", "--force"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetForce = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 1, admin.resets)
	assert.Contains(t, buf.String(), "All ingested data deleted.")
}
