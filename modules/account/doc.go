// Package account serves the registration, login and TOTP management JSON API.
//
// Routes, relative to the mount point (usually /api):
//
//	POST /auth/register     {email, password}
//	POST /auth/login        {email, password, totpCode?}
//	POST /mfa/totp/setup    bearer token
//	POST /mfa/totp/verify   bearer token, {code}
//	GET  /mfa/totp/status   bearer token
//	POST /mfa/totp/disable  bearer token
//	GET  /user/me           bearer token
//
// Protected routes answer 401 without a token and 403 with an invalid one.
// Login for an account with an active second factor and no code answers 200
// with requiresTOTP set and no token.
package account
