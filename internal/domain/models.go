package domain

import (
	"strings"
	"time"
)

type DBKind string

const (
	DBPostgres  DBKind = "postgres"
	DBCassandra DBKind = "cassandra"
)

// ParseDBKind maps "postgres" to DBPostgres. Every other value selects
// DBCassandra, matching how the backup job has always been invoked.
func ParseDBKind(s string) DBKind {
	if strings.EqualFold(strings.TrimSpace(s), string(DBPostgres)) {
		return DBPostgres
	}
	return DBCassandra
}

// CheckTarget is either a BackupTarget or a DNSTarget.
type CheckTarget interface {
	targetName() string
}

type BackupTarget struct {
	Kind         DBKind        `json:"kind"`
	Prefix       string        `json:"storage_prefix"`
	MaxStaleness time.Duration `json:"max_allowed_staleness"`
}

func (b BackupTarget) targetName() string { return string(b.Kind) }

type DNSTarget struct {
	Hostname string `json:"hostname"`
}

func (d DNSTarget) targetName() string { return d.Hostname }

// Name returns a printable label for any target.
func Name(t CheckTarget) string {
	if t == nil {
		return ""
	}
	return t.targetName()
}

// ParseDNSTargets splits a comma separated host list. Blank entries are dropped.
func ParseDNSTargets(list string) []DNSTarget {
	parts := strings.Split(list, ",")
	out := make([]DNSTarget, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, DNSTarget{Hostname: p})
	}
	return out
}

// ObjectRecord is one object found under a storage prefix.
type ObjectRecord struct {
	Key          string    `json:"key"`
	LastModified time.Time `json:"last_modified"`
}
