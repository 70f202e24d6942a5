// Package auth wires password authentication, the TOTP second factor and
// token issuance into the register and login flows.
//
// Login is a two-step exchange when the account has an active second factor:
// the first call without a code returns a LoginResult with
// SecondFactorRequired set and no token; the client repeats the call with a
// TOTP code or one of its backup codes.
//
//	res, err := svc.Login(ctx, auth.LoginInput{Email: email, Password: pw})
//	if err == nil && res.SecondFactorRequired {
//		res, err = svc.Login(ctx, auth.LoginInput{Email: email, Password: pw, Code: code})
//	}
package auth
