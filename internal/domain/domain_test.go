package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDBKind(t *testing.T) {
	assert.Equal(t, DBPostgres, ParseDBKind("postgres"))
	assert.Equal(t, DBPostgres, ParseDBKind(" Postgres "))
	assert.Equal(t, DBCassandra, ParseDBKind("cassandra"))
	assert.Equal(t, DBCassandra, ParseDBKind("anything-else"))
	assert.Equal(t, DBCassandra, ParseDBKind(""))
}

func TestParseDNSTargets_KeepsOrderAndDropsBlanks(t *testing.T) {
	got := ParseDNSTargets("a.example.com, b.example.com,,c.example.com ")
	require.Len(t, got, 3)
	assert.Equal(t, "a.example.com", got[0].Hostname)
	assert.Equal(t, "b.example.com", got[1].Hostname)
	assert.Equal(t, "c.example.com", got[2].Hostname)
}

func TestName(t *testing.T) {
	assert.Equal(t, "postgres", Name(BackupTarget{Kind: DBPostgres}))
	assert.Equal(t, "example.com", Name(DNSTarget{Hostname: "example.com"}))
	assert.Equal(t, "", Name(nil))
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("P1")
	require.NoError(t, err)
	assert.Equal(t, P1, p)

	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}
