// Package credentials resolves the single admin credential record.
//
// Resolution order: an environment-injected username/hash pair wins over the
// local credentials file, so deployments never have to commit secrets. A
// missing or malformed file degrades to an empty hash, which rejects every
// login attempt instead of crashing.
package credentials

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog"

	"github.com/yonyossef/yiftach-sign/internal/core/domain"
)

const fallbackUsername = "admin"

// Source loads the admin credential record on demand. It re-reads the file
// on every Load so an operator can rotate the hash without a restart.
type Source struct {
	envUsername string
	envHash     string
	filePath    string
	log         zerolog.Logger
}

func NewSource(envUsername, envHash, filePath string, log zerolog.Logger) *Source {
	return &Source{
		envUsername: envUsername,
		envHash:     envHash,
		filePath:    filePath,
		log:         log,
	}
}

// Load resolves the credential record. It never fails; the worst case is a
// record with an empty hash.
func (s *Source) Load() domain.Credentials {
	if s.envUsername != "" && s.envHash != "" {
		return domain.Credentials{Username: s.envUsername, PasswordHash: s.envHash}
	}

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.filePath).Msg("credentials file unreadable, logins will fail")
		return domain.Credentials{Username: fallbackUsername}
	}

	var rec domain.Credentials
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.log.Warn().Err(err).Str("path", s.filePath).Msg("credentials file malformed, logins will fail")
		return domain.Credentials{Username: fallbackUsername}
	}
	if rec.Username == "" {
		rec.Username = fallbackUsername
	}
	return rec
}
