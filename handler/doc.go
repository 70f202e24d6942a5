// Package handler turns typed request handlers into http.HandlerFunc values.
//
// A handler receives a Context and a request value already populated by the
// configured binders, and returns a Response. Errors from binding, from the
// handler via JSONError, or from rendering are classified by ClassifyError:
// validation errors become 400 with per-field details, HTTPError values keep
// their status, and anything else is reported as a generic 500 so internal
// details never reach the client.
//
//	type verifyRequest struct {
//		Code string `json:"code"`
//	}
//
//	r.Post("/verify", handler.Wrap(func(ctx handler.Context, req verifyRequest) handler.Response {
//		if err := svc.Verify(ctx, id, req.Code); err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(map[string]any{"success": true})
//	}, handler.WithBinders[verifyRequest](binder.JSON())))
package handler
