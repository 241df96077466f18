// Errors wrap the package sentinels, so callers classify them with
// errors.Is:
//
//	if err := security.ValidateInput("input", in, cfg.Serve.MaxInputLength); err != nil {
//		if errors.Is(err, security.ErrInputTooLong) {
//			// 400
//		}
//	}
package security
