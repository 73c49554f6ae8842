package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMCPCmd_Registered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"mcp", "serve"})

	assert.NoError(t, err)
	assert.Equal(t, "serve", cmd.Name())
	assert.NotNil(t, cmd.Flags().Lookup("port"))
}

func TestMCPPorts(t *testing.T) {
	ts := setupTestServices(t)

	ports := mcpPorts()

	assert.Equal(t, ts.query, ports.Query)
	assert.Equal(t, ts.catalog, ports.Catalog)
	assert.Equal(t, ts.ingest, ports.Ingest)
	assert.Equal(t, ts.corpus, ports.Corpus)
	assert.NotNil(t, ports.Records)
	assert.NoError(t, ports.Validate())
}

func TestMCPPorts_MissingQuery(t *testing.T) {
	SetServices(nil)

	assert.Error(t, mcpPorts().Validate())
}
