package ports

// TokenIssuer mints and verifies the two token classes. Access and
// refresh tokens are signed with distinct secrets so compromising one
// class cannot forge the other. Issuing is pure: persistence of the
// refresh token is the caller's job via UserRepository.SetRefreshToken.
type TokenIssuer interface {
	IssueAccess(userID string) (string, error)
	IssueRefresh(userID string) (string, error)

	// VerifyAccess / VerifyRefresh check signature and expiry and return
	// the embedded user id, or domain.ErrInvalidToken.
	VerifyAccess(token string) (string, error)
	VerifyRefresh(token string) (string, error)
}
