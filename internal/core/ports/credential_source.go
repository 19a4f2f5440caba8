package ports

import "github.com/yonyossef/yiftach-sign/internal/core/domain"

// CredentialSource resolves the deployment's single admin credential record.
// Resolution never fails: a source with nothing usable returns a record with
// an empty hash, which every verify attempt then rejects.
type CredentialSource interface {
	Load() domain.Credentials
}
